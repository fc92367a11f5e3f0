package types

import (
	"fmt"
	"strings"
)

// EnvPair is a single name/value environment entry.
type EnvPair struct {
	Name  string
	Value string
}

// EnvPairSet is an ordered collection of environment pairs. Order is preserved
// for display and audit purposes; lookup is last-write-wins when names repeat
// after a merge.
type EnvPairSet struct {
	pairs []EnvPair
}

// NewEnvPairSet creates an EnvPairSet from the given pairs, in order.
func NewEnvPairSet(pairs ...EnvPair) EnvPairSet {
	copied := make([]EnvPair, len(pairs))
	copy(copied, pairs)
	return EnvPairSet{pairs: copied}
}

// ParseEnviron builds an EnvPairSet from "NAME=value" entries, the form
// returned by os.Environ. Entries without '=' are kept with an empty value.
func ParseEnviron(environ []string) EnvPairSet {
	pairs := make([]EnvPair, 0, len(environ))
	for _, entry := range environ {
		name, value, _ := strings.Cut(entry, "=")
		pairs = append(pairs, EnvPair{Name: name, Value: value})
	}
	return EnvPairSet{pairs: pairs}
}

// Pairs returns a copy of the pairs in order.
func (s EnvPairSet) Pairs() []EnvPair {
	copied := make([]EnvPair, len(s.pairs))
	copy(copied, s.pairs)
	return copied
}

// Len returns the number of pairs, counting repeated names once per entry.
func (s EnvPairSet) Len() int {
	return len(s.pairs)
}

// Merge concatenates the two sets. The receiver's pairs come first, so on a
// name collision the other set wins once the result is projected with ToMap.
func (s EnvPairSet) Merge(other EnvPairSet) EnvPairSet {
	merged := make([]EnvPair, 0, len(s.pairs)+len(other.pairs))
	merged = append(merged, s.pairs...)
	merged = append(merged, other.pairs...)
	return EnvPairSet{pairs: merged}
}

// ToMap projects the set to a deduplicated name→value mapping. Later entries
// override earlier ones with the same name.
func (s EnvPairSet) ToMap() map[string]string {
	m := make(map[string]string, len(s.pairs))
	for _, p := range s.pairs {
		m[p.Name] = p.Value
	}
	return m
}

// Describe renders the set as a human-readable "[name:value]..." string in
// insertion order, including repeated names.
func (s EnvPairSet) Describe() string {
	var b strings.Builder
	for _, p := range s.pairs {
		fmt.Fprintf(&b, "[%s:%s]", p.Name, p.Value)
	}
	return b.String()
}

// Environ converts a name→value mapping to the "NAME=value" slice form
// expected by os/exec.
func Environ(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for name, value := range env {
		entries = append(entries, name+"="+value)
	}
	return entries
}
