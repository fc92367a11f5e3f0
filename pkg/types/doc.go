// Package types contains the value types shared across the hook engine:
// hook sets, environment pair sets, commands, command results, and the
// classified Outcome of a hook invocation.
//
// Everything in this package is immutable once constructed and safe to share
// across concurrently running chains without locking.
package types
