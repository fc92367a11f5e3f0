package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvPairSetMerge(t *testing.T) {
	t.Run("parameters override system variables on collision", func(t *testing.T) {
		systemEnv := NewEnvPairSet(EnvPair{Name: "A", Value: "1"})
		hookParams := NewEnvPairSet(
			EnvPair{Name: "A", Value: "2"},
			EnvPair{Name: "B", Value: "3"},
		)

		merged := systemEnv.Merge(hookParams).ToMap()
		assert.Equal(t, map[string]string{"A": "2", "B": "3"}, merged)
	})

	t.Run("merge preserves insertion order", func(t *testing.T) {
		a := NewEnvPairSet(EnvPair{Name: "X", Value: "1"})
		b := NewEnvPairSet(EnvPair{Name: "Y", Value: "2"})

		pairs := a.Merge(b).Pairs()
		assert.Equal(t, []EnvPair{{Name: "X", Value: "1"}, {Name: "Y", Value: "2"}}, pairs)
	})

	t.Run("merge does not mutate the operands", func(t *testing.T) {
		a := NewEnvPairSet(EnvPair{Name: "X", Value: "1"})
		b := NewEnvPairSet(EnvPair{Name: "Y", Value: "2"})
		_ = a.Merge(b)

		assert.Equal(t, 1, a.Len())
		assert.Equal(t, 1, b.Len())
	})
}

func TestEnvPairSetToMap(t *testing.T) {
	t.Run("later entries win", func(t *testing.T) {
		s := NewEnvPairSet(
			EnvPair{Name: "A", Value: "first"},
			EnvPair{Name: "A", Value: "second"},
		)
		assert.Equal(t, map[string]string{"A": "second"}, s.ToMap())
	})

	t.Run("empty set projects to empty map", func(t *testing.T) {
		assert.Empty(t, EnvPairSet{}.ToMap())
	})
}

func TestEnvPairSetDescribe(t *testing.T) {
	s := NewEnvPairSet(
		EnvPair{Name: "A", Value: "1"},
		EnvPair{Name: "B", Value: "2"},
	)
	assert.Equal(t, "[A:1][B:2]", s.Describe())
	assert.Equal(t, "", EnvPairSet{}.Describe())
}

func TestParseEnviron(t *testing.T) {
	s := ParseEnviron([]string{"A=1", "B=x=y", "EMPTY=", "BARE"})

	assert.Equal(t, []EnvPair{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "x=y"},
		{Name: "EMPTY", Value: ""},
		{Name: "BARE", Value: ""},
	}, s.Pairs())
}

func TestEnviron(t *testing.T) {
	entries := Environ(map[string]string{"A": "1"})
	assert.Equal(t, []string{"A=1"}, entries)

	// A nil map still yields a non-nil slice so os/exec never falls back to
	// inheriting the parent environment.
	assert.NotNil(t, Environ(nil))
	assert.Empty(t, Environ(nil))
}
