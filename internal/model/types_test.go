package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat_IsValid(t *testing.T) {
	for _, f := range []OutputFormat{FormatShell, FormatCShell, FormatJSON, FormatNull, FormatYAML, FormatExec} {
		assert.True(t, f.IsValid(), "format %q should be valid", f)
	}
	assert.False(t, OutputFormat("xml").IsValid())
	assert.False(t, OutputFormat("").IsValid())
}

func TestOutputFormat_IsShell(t *testing.T) {
	assert.True(t, FormatShell.IsShell())
	assert.True(t, FormatCShell.IsShell())
	assert.False(t, FormatJSON.IsShell())
	assert.False(t, FormatNull.IsShell())
	assert.False(t, FormatYAML.IsShell())
	assert.False(t, FormatExec.IsShell())
}

// TestParseOutputFormat verifies name-to-format conversion, including case
// normalization and the rule that exec cannot be selected by name.
func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		hasError bool
	}{
		{"sh", FormatShell, false},
		{"csh", FormatCShell, false},
		{"json", FormatJSON, false},
		{"null", FormatNull, false},
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{" csh ", FormatCShell, false},
		{"exec", "", true},
		{"bash", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDefaultFormatForShell(t *testing.T) {
	tests := []struct {
		shell string
		want  OutputFormat
	}{
		{"/bin/csh", FormatCShell},
		{"/usr/bin/tcsh", FormatCShell},
		{"/bin/bash", FormatShell},
		{"/usr/bin/zsh", FormatShell},
		{"/bin/cshell-wrapper", FormatShell},
		{"", FormatShell},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultFormatForShell(tt.shell))
		})
	}
}

func TestProcessHandle_String(t *testing.T) {
	assert.Equal(t, "4242", ProcessHandle(4242).String())
}

// TestExitCodeFor verifies that wrapped sentinel kinds map to distinct codes
// and that an explicit CLIError code takes precedence.
func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"usage", fmt.Errorf("two formats: %w", ErrUsage), ExitUsage},
		{"not found", fmt.Errorf("target /bin/x: %w", ErrNotFound), ExitNotFound},
		{"process gone", fmt.Errorf("pid 7: %w", ErrProcessNotFound), ExitProcessGone},
		{"permission", fmt.Errorf("pid 1: %w", ErrPermissionDenied), ExitPermissionDenied},
		{"exec", fmt.Errorf("nope: %w", ErrExecFailed), ExitExecFailed},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"cli error wins", WrapCLIError(ExitDockerNotRunning, "docker", ErrNotFound), ExitDockerNotRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

// TestCLIError verifies the CLIError type's Error() and Unwrap() methods.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitNotFound, "process /bin/true not running")
		assert.Equal(t, "process /bin/true not running", err.Error())
		assert.Equal(t, ExitNotFound, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		err := WrapCLIError(ExitPermissionDenied, "cannot read environment of pid 1", ErrPermissionDenied)
		assert.Equal(t, "cannot read environment of pid 1: permission denied", err.Error())
		assert.True(t, errors.Is(err, ErrPermissionDenied))
	})
}
