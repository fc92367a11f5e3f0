package types

import "math"

// OutcomeKind identifies the variant of an Outcome.
type OutcomeKind string

const (
	// OutcomeOk indicates the hook exited 0.
	OutcomeOk OutcomeKind = "ok"
	// OutcomeWarning indicates a non-fatal exit code in the warning band.
	// The chain continues.
	OutcomeWarning OutcomeKind = "warning"
	// OutcomeScriptError indicates a script-reported failure. The chain stops.
	OutcomeScriptError OutcomeKind = "script_error"
	// OutcomeInterrupt indicates the hook asked for a deliberate stop.
	OutcomeInterrupt OutcomeKind = "interrupt"
	// OutcomeSystemError indicates an infrastructure failure (spawn failure,
	// timeout, internal fault) rather than a script-reported exit code.
	OutcomeSystemError OutcomeKind = "system_error"
)

// SentinelExitCode marks results that never came from a real script exit.
// It is far outside the 0..255 range a process can report, so it cannot
// collide with the reserved error band. The invoker uses it for spawn
// failures and SystemError outcomes carry it as their code.
const SentinelExitCode = math.MinInt32

// Outcome is the classified result of one hook invocation. It is a closed set
// of five variants sharing the same fields, so any Outcome can be logged or
// inspected uniformly regardless of its kind.
//
// Ok and Warning are the only "continue" variants; ScriptError, Interrupt,
// and SystemError stop the chain.
type Outcome struct {
	Kind    OutcomeKind
	Code    int
	Stdout  string
	Stderr  string
	Message string
}

// Ok creates the success variant for exit code 0.
func Ok(stdout, stderr string) Outcome {
	return Outcome{Kind: OutcomeOk, Stdout: stdout, Stderr: stderr}
}

// Warning creates the non-fatal variant for codes in the warning band.
func Warning(code int, stdout, stderr, message string) Outcome {
	return Outcome{Kind: OutcomeWarning, Code: code, Stdout: stdout, Stderr: stderr, Message: message}
}

// ScriptError creates the stop variant for script-reported failures.
func ScriptError(code int, stdout, stderr, message string) Outcome {
	return Outcome{Kind: OutcomeScriptError, Code: code, Stdout: stdout, Stderr: stderr, Message: message}
}

// Interrupt creates the deliberate-stop variant for exit code 100.
func Interrupt(message, stdout, stderr string) Outcome {
	return Outcome{Kind: OutcomeInterrupt, Code: InterruptExitCode, Stdout: stdout, Stderr: stderr, Message: message}
}

// SystemError creates the infrastructure-failure variant. Its code is always
// the sentinel, never a legitimate script code.
func SystemError(message string) Outcome {
	return Outcome{Kind: OutcomeSystemError, Code: SentinelExitCode, Message: message}
}

// InterruptExitCode is the reserved exit code for a deliberate chain stop.
const InterruptExitCode = 100

// IsSuccess reports whether the outcome lets the chain continue.
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeOk || o.Kind == OutcomeWarning
}

// IsError reports whether the outcome stops the chain.
func (o Outcome) IsError() bool {
	return !o.IsSuccess()
}
