// Package runner executes ordered hook chains.
//
// A chain is the sequence of hooks in a HookSet, executed strictly in order
// with a single merged environment. Each hook's exit code is classified into
// an Outcome; the first stop variant (ScriptError, Interrupt, SystemError)
// short-circuits the chain. Warnings are logged and the chain continues.
//
// The whole chain is bounded by Options.KillAfter. Known limitation: when the
// deadline fires the fold is abandoned and a SystemError is returned, but the
// in-flight child OS process is not killed. Callers that need hard process
// termination must layer it on top.
package runner
