package diagnose

import "context"

// RunStatus classifies the outcome of one external command invocation.
type RunStatus int

const (
	RunOK RunStatus = iota
	RunToolMissing
	RunNonZeroExit
	RunTimedOut
)

// RunResult is the uniform result of a single external command invocation.
// Output is combined stdout+stderr, trimmed.
type RunResult struct {
	Status RunStatus
	Output string
	Err    error
}

// CommandRunner is the boundary to external tools (wg, ping). Timeouts are
// enforced caller-side through ctx; expiry must surface as RunTimedOut.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) RunResult
	LookPath(name string) bool
}

// Presenter owns all user-facing output and questions. The engine never
// prints directly.
type Presenter interface {
	StepResult(description string, succeeded bool, message string)
	Info(message string)
	Warn(message string)
	Error(message string)
	Section(title string)
	Advice(text string)
	AskChoice(prompt string, choices []string, def string) (string, error)
	AskYesNo(prompt string, def bool) (bool, error)
}

// StepOutcome is the atomic reported unit of one diagnostic step.
type StepOutcome struct {
	Description string
	Succeeded   bool
	Message     string
}
