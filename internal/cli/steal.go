package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/stealenv/internal/config"
	"github.com/shinji-kodama/stealenv/internal/docker"
	"github.com/shinji-kodama/stealenv/internal/environ"
	"github.com/shinji-kodama/stealenv/internal/format"
	"github.com/shinji-kodama/stealenv/internal/launch"
	"github.com/shinji-kodama/stealenv/internal/model"
	"github.com/shinji-kodama/stealenv/internal/proc"
)

// commandRunner replaces the process image with a command. Tests swap it
// for a recorder.
type commandRunner interface {
	Run(argv []string, env *environ.Map) error
}

// newLauncher builds the runner used in exec mode.
var newLauncher = func() commandRunner { return launch.New() }

// runSteal is the main logic of the command: select the output mode,
// resolve the target, read its environment, then print it or exec.
func runSteal(cmd *cobra.Command, flags *rootFlags, target string, command []string) error {
	// Step 1: Validate the output mode. No I/O happens before this.
	selected, err := selectFormat(flags, len(command) > 0)
	if err != nil {
		return err
	}

	// Step 2: Load configuration and logging.
	cfg, err := config.Load(flags.config, cmd.Flags())
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}
	log, err := setupLogger(cfg.Verbose)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to set up logging", err)
	}
	defer func() { _ = log.Sync() }()
	if cfg.File != "" {
		VerboseLog("Loaded configuration from %s", cfg.File)
	}

	if selected == "" {
		selected, err = cfg.DefaultFormat()
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
		}
		VerboseLog("No format selected, using %s (shell %q)", selected, cfg.Shell)
	}

	// Step 3: Resolve the target to a PID.
	fs, err := proc.Open(cfg.ProcRoot, log)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot access process information", err)
	}
	pid, err := resolveTarget(cmd.Context(), fs, target, flags.container)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewCLIError(model.ExitNotFound, notFoundMessage(target, flags.container))
		}
		return asCLIError(err, fmt.Sprintf("cannot resolve %s", target))
	}
	VerboseLog("Resolved %q to pid %s", target, pid)

	// Step 4: Read and parse its environment.
	env, err := fs.ReadEnviron(pid)
	if err != nil {
		return asCLIError(err, fmt.Sprintf("cannot read environment of pid %s", pid))
	}
	VerboseLog("Read %d variables from pid %s", env.Len(), pid)

	// Step 5: Exec or print.
	if selected == model.FormatExec {
		VerboseLog("Executing %q with the stolen environment", command[0])
		if err := newLauncher().Run(command, env); err != nil {
			return asCLIError(err, fmt.Sprintf("cannot execute %s", command[0]))
		}
		return nil
	}

	return writeOutput(cmd.OutOrStdout(), env, selected, cfg.Export)
}

// selectFormat validates the output mode flags. At most one of the format
// flags or a command line may be given; none means "use the default",
// reported as "".
func selectFormat(flags *rootFlags, hasCommand bool) (model.OutputFormat, error) {
	candidates := []struct {
		set    bool
		format model.OutputFormat
	}{
		{flags.sh, model.FormatShell},
		{flags.csh, model.FormatCShell},
		{flags.json, model.FormatJSON},
		{flags.null, model.FormatNull},
		{flags.yaml, model.FormatYAML},
		{hasCommand, model.FormatExec},
	}

	var selected model.OutputFormat
	count := 0
	for _, c := range candidates {
		if c.set {
			count++
			selected = c.format
		}
	}
	if count > 1 {
		return "", model.WrapCLIError(model.ExitUsage,
			"must specify exactly one output format or specify a command line", model.ErrUsage)
	}
	return selected, nil
}

// resolveTarget maps the positional target to a PID, through Docker when
// the target names a container.
func resolveTarget(ctx context.Context, fs *proc.FS, target string, isContainer bool) (model.ProcessHandle, error) {
	if !isContainer {
		return fs.Resolve(target)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cli, err := docker.NewClient()
	if err != nil {
		return 0, err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return 0, err
	}
	VerboseLog("Connected to Docker daemon")
	return cli.ContainerPID(ctx, target)
}

// asCLIError attaches an exit code to a domain error. A CLIError passes
// through unchanged.
func asCLIError(err error, message string) error {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return err
	}
	return model.WrapCLIError(model.ExitCodeFor(err), message, err)
}

// notFoundMessage names the original target the way the user typed it.
func notFoundMessage(target string, isContainer bool) string {
	if isContainer {
		return fmt.Sprintf("container %s not found or not running", target)
	}
	return fmt.Sprintf("process %s not running", target)
}

// writeOutput formats env onto w. Write errors such as a closed pipe are
// reported as general errors.
func writeOutput(w io.Writer, env *environ.Map, f model.OutputFormat, export bool) error {
	if err := format.Write(w, env, f, export); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write output", err)
	}
	return nil
}
