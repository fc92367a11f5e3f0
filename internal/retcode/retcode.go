// Package retcode classifies raw hook exit codes into Outcome variants.
//
// The exit-code contract with hook scripts:
//
//	0        success
//	1..31    error, stops the chain
//	32..64   warning, chain continues
//	100      deliberate interrupt, stops the chain
//	65..255  reserved, treated as error
//
// Negative codes (a child killed by a signal, or the spawn-failure sentinel)
// are errors. Code 100 is checked before the numeric bands.
package retcode

import (
	"fmt"

	"hookchain/hook-engine/pkg/types"
)

// Band boundaries of the exit-code contract.
const (
	errorBandMax   = 31
	warningBandMin = 32
	warningBandMax = 64
)

// Classify maps one command result to its Outcome. It is a pure, total
// function of the exit code; path, stdout and stderr only feed the diagnostic
// message and never affect the variant chosen.
func Classify(path string, res types.CommandResult) types.Outcome {
	code := res.ExitCode
	msg := message(path, code)

	switch {
	case code == 0:
		return types.Ok(res.Stdout, res.Stderr)
	case code == types.InterruptExitCode:
		return types.Interrupt(msg, res.Stdout, res.Stderr)
	case code < 0:
		return types.ScriptError(code, res.Stdout, res.Stderr, msg)
	case code <= errorBandMax:
		return types.ScriptError(code, res.Stdout, res.Stderr, msg)
	case code <= warningBandMax:
		return types.Warning(code, res.Stdout, res.Stderr, msg)
	default:
		// Reserved band above the warnings, treated as error.
		return types.ScriptError(code, res.Stdout, res.Stderr, msg)
	}
}

func message(path string, code int) string {
	hint := ""
	if code == types.SentinelExitCode {
		// The sentinel almost always means the file is missing or not
		// executable, so spell that out for the operator.
		hint = " (check that file exists and is executable)"
	}
	return fmt.Sprintf("Exit code=%d%s for hook: '%s'.", code, hint, path)
}
