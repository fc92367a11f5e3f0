// Package discovery resolves a hook directory into an ordered HookSet.
//
// It is the collaborator in front of the runner: the runner trusts any
// HookSet it is given and never re-checks or re-sorts. Scan keeps regular,
// executable files, applies an optional name-suffix filter, and sorts
// lexicographically so numeric prefixes ("10-", "20-") give a stable order.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"hookchain/hook-engine/pkg/types"
)

// Options filters the scan.
type Options struct {
	// Suffix keeps only hooks whose name ends with it. Empty keeps all.
	Suffix string
}

// Scan builds a HookSet from the executable files directly under dir.
// Subdirectories are not descended into.
func Scan(dir string, opts Options) (types.HookSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.HookSet{}, fmt.Errorf("scanning hook directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if opts.Suffix != "" && !strings.HasSuffix(entry.Name(), opts.Suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return types.HookSet{}, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() || !isExecutable(info.Mode()) {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return types.NewHookSet(dir, names...), nil
}

func isExecutable(mode fs.FileMode) bool {
	return mode.Perm()&0o111 != 0
}
