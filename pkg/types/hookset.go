package types

import "path/filepath"

// HookSet is a resolved, ordered list of executable hook names relative to a
// base directory. It is produced by the discovery layer (or assembled by the
// caller) and consumed read-only by the runner; the runner trusts the ordering
// and never re-sorts.
type HookSet struct {
	BasePath  string
	HookNames []string
}

// NewHookSet creates a HookSet from a base directory and ordered hook names.
func NewHookSet(basePath string, hookNames ...string) HookSet {
	names := make([]string, len(hookNames))
	copy(names, hookNames)
	return HookSet{BasePath: basePath, HookNames: names}
}

// Len returns the number of hooks in the set.
func (h HookSet) Len() int {
	return len(h.HookNames)
}

// PathFor returns the full path of the named hook.
func (h HookSet) PathFor(name string) string {
	return filepath.Join(h.BasePath, name)
}
