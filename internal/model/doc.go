// Package model defines the value types and error model shared by the
// stealenv CLI.
//
// This package contains plain data structures with no external dependencies:
// the OutputFormat selector, the ProcessHandle that flows from the resolver
// to the reader, and the exit codes (ExitCode) and error type (CLIError)
// the cli package translates into an OS exit status.
//
// Nothing in this package outlives one invocation. A run resolves one
// process, reads its environment once, and formats it.
package model
