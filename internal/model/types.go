package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ProcessHandle identifies the process whose environment is read.
// It is the numeric PID as seen from the procfs root in use.
type ProcessHandle int

// String returns the decimal PID.
func (h ProcessHandle) String() string {
	return strconv.Itoa(int(h))
}

// OutputFormat selects how the stolen environment is emitted.
// The values are mutually exclusive; exactly one is in effect per run.
type OutputFormat string

const (
	// FormatShell emits NAME="VALUE" lines for sh-compatible shells.
	FormatShell OutputFormat = "sh"

	// FormatCShell emits set/setenv lines for csh-compatible shells.
	FormatCShell OutputFormat = "csh"

	// FormatJSON emits a single JSON object.
	FormatJSON OutputFormat = "json"

	// FormatNull emits NAME\0VALUE\0 pairs and one trailing NUL.
	FormatNull OutputFormat = "null"

	// FormatYAML emits a single YAML mapping document.
	FormatYAML OutputFormat = "yaml"

	// FormatExec produces no text. The environment is merged into the
	// current process and a command replaces the process image.
	FormatExec OutputFormat = "exec"
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid reports whether f is one of the predefined formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatShell, FormatCShell, FormatJSON, FormatNull, FormatYAML, FormatExec:
		return true
	default:
		return false
	}
}

// IsShell reports whether the format is one of the shell dialects, the only
// formats on which the export modifier has an effect.
func (f OutputFormat) IsShell() bool {
	return f == FormatShell || f == FormatCShell
}

// ParseOutputFormat converts a string to a text OutputFormat.
// FormatExec is not accepted here because it is selected by supplying a
// command line, never by name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == FormatExec || !f.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: sh, csh, json, null, yaml)", s)
	}
	return f, nil
}

// DefaultFormatForShell picks the text format matching the user's login
// shell: cshell when the shell name ends in "csh", shell otherwise.
func DefaultFormatForShell(shell string) OutputFormat {
	if strings.HasSuffix(shell, "csh") {
		return FormatCShell
	}
	return FormatShell
}

// Sentinel error kinds. Domain packages wrap these so the CLI layer can use
// errors.Is to pick an exit code without inspecting message text.
var (
	// ErrNotFound means no process matched the requested target.
	ErrNotFound = errors.New("process not running")

	// ErrProcessNotFound means the PID does not map to a live process.
	ErrProcessNotFound = errors.New("no such process")

	// ErrPermissionDenied means the OS refused to expose the environment.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrExecFailed means the replacement command could not be launched.
	ErrExecFailed = errors.New("exec failed")

	// ErrUsage marks invalid flag or argument combinations.
	ErrUsage = errors.New("usage error")
)

// ExitCode defines the process exit statuses used by stealenv.
// Scripts can rely on these to tell "gone" from "not allowed".
type ExitCode int

const (
	// ExitSuccess indicates the environment was printed.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitUsage indicates a bad flag combination or a missing argument.
	ExitUsage ExitCode = 2

	// ExitNotFound indicates no process matched the target.
	ExitNotFound ExitCode = 3

	// ExitProcessGone indicates the PID vanished before its environment
	// could be read.
	ExitProcessGone ExitCode = 4

	// ExitPermissionDenied indicates the environment is not readable by
	// the invoking user.
	ExitPermissionDenied ExitCode = 5

	// ExitExecFailed indicates the command line could not be executed.
	ExitExecFailed ExitCode = 6

	// ExitDockerNotRunning indicates the Docker daemon is not accessible
	// while resolving a container target.
	ExitDockerNotRunning ExitCode = 7
)

// ExitCodeFor maps an error to the exit code of its kind. A CLIError keeps
// its own code; otherwise the wrapped sentinel decides.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrProcessNotFound):
		return ExitProcessGone
	case errors.Is(err, ErrPermissionDenied):
		return ExitPermissionDenied
	case errors.Is(err, ErrExecFailed):
		return ExitExecFailed
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
