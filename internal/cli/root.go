// Package cli implements the cobra-based command line of stealenv.
//
// stealenv has a single command. This file defines the root command, its
// flags and the error-to-exit-code handling; steal.go holds the
// resolve → read → format pipeline the command runs.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stealenv/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the flag values of the root command.
// These are bound to cobra flags in NewRootCommand.
type rootFlags struct {
	sh     bool // --sh: sh-style assignments
	csh    bool // --csh: csh-style assignments
	json   bool // --json: one JSON object
	null   bool // --null: NUL-delimited pairs
	yaml   bool // --yaml: one YAML mapping
	export bool // --export: export/setenv declarations for sh/csh

	container bool   // --container: the target is a Docker container
	config    string // --config: explicit config file
	procRoot  string // --proc-root: procfs mount point
	verbose   bool   // --verbose: debug logging on stderr
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "stealenv [flags] <pid|executable> [--] [command [args...]]",
		Short: "Print or reuse the environment of another process",
		Long: `Output the environment of the process with the specified pid in a variety of
formats, usable by shells and other languages.

The target is either a numeric process id or the absolute path of a running
executable; the first process (lowest pid) running that executable is used.
When a command line follows the target, the stolen environment is merged into
the current one and the command is executed in place of stealenv.

Without a format flag, csh syntax is printed if $SHELL ends in "csh" and sh
syntax otherwise. Flags are accepted anywhere on the command line; put the
command after "--" when it takes flags of its own. The command name is looked
up in $PATH, so use "./name" for a program in the current directory.

Examples:
  stealenv 4242
  stealenv -e /usr/sbin/nginx
  stealenv --json 4242 | jq .PATH
  stealenv -0 4242 | xargs -0 -n2 printf '%s=%s\n'
  stealenv --container web
  stealenv 4242 env | sort
  stealenv 4242 -- env -0`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || args[0] == "" {
				return model.WrapCLIError(model.ExitUsage,
					"must specify a pid or application to steal from", model.ErrUsage)
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteal(cmd, flags, args[0], args[1:])
		},
	}

	rootCmd.Flags().BoolVarP(&flags.sh, "sh", "s", false, "Output sh style commands")
	rootCmd.Flags().BoolVarP(&flags.csh, "csh", "c", false, "Output csh style commands")
	rootCmd.Flags().BoolVarP(&flags.json, "json", "j", false, "Output json")
	rootCmd.Flags().BoolVarP(&flags.null, "null", "0", false, "Output null-terminated strings and a trailing null")
	rootCmd.Flags().BoolVarP(&flags.yaml, "yaml", "y", false, "Output yaml")
	rootCmd.Flags().BoolVarP(&flags.export, "export", "e", false, "sh/csh commands will export variables")
	rootCmd.Flags().BoolVarP(&flags.container, "container", "C", false, "Treat the target as a Docker container name or ID")
	rootCmd.Flags().StringVar(&flags.config, "config", "", "Config file (default: $XDG_CONFIG_HOME/stealenv/config.yaml)")
	rootCmd.Flags().StringVar(&flags.procRoot, "proc-root", "", "procfs mount point (default: /proc)")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitUsage, err.Error(), model.ErrUsage)
	})

	return rootCmd
}

// Execute runs the root command and exits with the code matching the
// outcome. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(execute(rootCmd, os.Stderr)))
}

// execute runs rootCmd and reports any error on stderr, returning the exit
// code instead of exiting so tests can observe it.
func execute(rootCmd *cobra.Command, stderr io.Writer) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Code == model.ExitUsage {
			printError(stderr, cliErr.Message, nil)
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
			return cliErr.Code
		}
		printError(stderr, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(stderr, err.Error(), nil)
	return model.ExitCodeFor(err)
}

// errorPrefix colours the "Error:" label when the terminal supports it.
var errorPrefix = color.New(color.FgRed, color.Bold)

// printError writes "Error: <message>[: <detail>]" to w.
func printError(w io.Writer, message string, underlying error) {
	errorPrefix.Fprint(w, "Error:")
	if underlying != nil {
		fmt.Fprintf(w, " %s: %v\n", message, underlying)
		return
	}
	fmt.Fprintf(w, " %s\n", message)
}
