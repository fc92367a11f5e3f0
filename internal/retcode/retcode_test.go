package retcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"hookchain/hook-engine/pkg/types"
)

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		code int
		kind types.OutcomeKind
	}{
		{0, types.OutcomeOk},
		{1, types.OutcomeScriptError},
		{31, types.OutcomeScriptError},
		{32, types.OutcomeWarning},
		{64, types.OutcomeWarning},
		{65, types.OutcomeScriptError},
		{99, types.OutcomeScriptError},
		{100, types.OutcomeInterrupt},
		{101, types.OutcomeScriptError},
		{255, types.OutcomeScriptError},
		{-1, types.OutcomeScriptError},
		{types.SentinelExitCode, types.OutcomeScriptError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code %d", tt.code), func(t *testing.T) {
			out := Classify("/hooks/10-test", types.CommandResult{ExitCode: tt.code})
			assert.Equal(t, tt.kind, out.Kind)
			if out.Kind != types.OutcomeOk && out.Kind != types.OutcomeInterrupt {
				assert.Equal(t, tt.code, out.Code)
			}
		})
	}
}

func TestClassifyCarriesOutput(t *testing.T) {
	res := types.CommandResult{ExitCode: 7, Stdout: "partial", Stderr: "boom"}
	out := Classify("/hooks/20-fail", res)

	assert.Equal(t, types.OutcomeScriptError, out.Kind)
	assert.Equal(t, "partial", out.Stdout)
	assert.Equal(t, "boom", out.Stderr)
}

func TestClassifyMessage(t *testing.T) {
	t.Run("plain exit code", func(t *testing.T) {
		out := Classify("/hooks/20-fail", types.CommandResult{ExitCode: 7})
		assert.Equal(t, "Exit code=7 for hook: '/hooks/20-fail'.", out.Message)
	})

	t.Run("sentinel appends the executable hint", func(t *testing.T) {
		out := Classify("/hooks/missing", types.CommandResult{ExitCode: types.SentinelExitCode})
		assert.Equal(t,
			fmt.Sprintf("Exit code=%d (check that file exists and is executable) for hook: '/hooks/missing'.", types.SentinelExitCode),
			out.Message)
	})

	t.Run("ok has no message", func(t *testing.T) {
		out := Classify("/hooks/10-ok", types.CommandResult{ExitCode: 0})
		assert.Empty(t, out.Message)
	})
}
