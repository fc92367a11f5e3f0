// Property tests for exit-code classification.
// Property: Classify is total and deterministic, and the variant depends on
// the exit code alone: for every int32 code exactly one band applies.
package retcode

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"hookchain/hook-engine/pkg/types"
)

func TestProperty_ClassifyBands(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := int(rapid.Int32Range(math.MinInt32, math.MaxInt32).Draw(t, "code"))
		res := types.CommandResult{
			ExitCode: code,
			Stdout:   rapid.String().Draw(t, "stdout"),
			Stderr:   rapid.String().Draw(t, "stderr"),
		}

		out := Classify("/hooks/any", res)

		var want types.OutcomeKind
		switch {
		case code == 0:
			want = types.OutcomeOk
		case code == 100:
			want = types.OutcomeInterrupt
		case code < 0:
			want = types.OutcomeScriptError
		case code <= 31:
			want = types.OutcomeScriptError
		case code <= 64:
			want = types.OutcomeWarning
		default:
			want = types.OutcomeScriptError
		}
		if out.Kind != want {
			t.Fatalf("code %d classified as %s, want %s", code, out.Kind, want)
		}

		// Continue/stop partition matches the variant.
		continues := out.Kind == types.OutcomeOk || out.Kind == types.OutcomeWarning
		if out.IsSuccess() != continues {
			t.Fatalf("code %d: IsSuccess=%v inconsistent with kind %s", code, out.IsSuccess(), out.Kind)
		}

		// Captured output is carried through untouched.
		if out.Stdout != res.Stdout || out.Stderr != res.Stderr {
			t.Fatalf("code %d: output not preserved", code)
		}
	})
}

func TestProperty_ClassifyDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := int(rapid.Int32Range(math.MinInt32, math.MaxInt32).Draw(t, "code"))
		res := types.CommandResult{ExitCode: code}

		first := Classify("/hooks/any", res)
		second := Classify("/hooks/any", res)
		if first != second {
			t.Fatalf("code %d: classification not deterministic", code)
		}
	})
}
