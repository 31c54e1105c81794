package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/robert-malhotra/asdf-fixtures/asdf"
	"github.com/robert-malhotra/asdf-fixtures/internal/config"
	"github.com/robert-malhotra/asdf-fixtures/internal/fixture"
)

const appName = "asdf-fixtures"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks command line mistakes, they exit with exitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	cfg     *config.Config
	log     *zap.Logger
	release func() error
	handled bool
}

// run executes the program with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	err := a.command().Run(ctx, args)
	if err == nil {
		return exitOK
	}

	var ue *usageError
	if errors.As(err, &ue) || errors.Is(err, fixture.ErrUnknownFixture) {
		fmt.Fprintf(stderr, "Incorrect usage: %v\nRun '%s --help' for usage, '%s' alone lists fixtures.\n", err, appName, appName)
		return exitUsage
	}
	// log may not be ready yet, report directly
	if !a.handled {
		fmt.Fprintf(stderr, "Program ended with error: %v\n", err)
	}
	return exitError
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "writes deterministic ASDF files used as test fixtures",
		Version:         asdf.Version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Writer:          a.stdout,
		ErrWriter:       a.stderr,
		Before:          a.initialize,
		After:           a.destroy,
		Action:          a.generate,
		OnUsageError:    a.usageErrorHandler,
		ExitErrHandler:  a.exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fixtures-dir", Aliases: []string{"o"}, Usage: "write fixtures to `DIR` (overrides configuration)"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "generate every registered fixture"},
			&cli.BoolFlag{Name: "dump-config", Usage: "print the effective configuration (YAML) and exit"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level to stderr"},
		},
		ArgsUsage: "[FIXTURE]",
		CustomRootCommandHelpTemplate: fmt.Sprintf(`%s
FIXTURE:
    name of the file to generate, one of:
        %s
    when absent (and --all is not given) registered names are listed
`, cli.RootCommandHelpTemplate, strings.Join(fixture.Names(), "\n        ")),
	}
}

// initialize prepares configuration and logging after the command line has
// been parsed.
func (a *app) initialize(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if a.cfg, err = config.LoadConfiguration(cmd.String("config")); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("fixtures-dir") {
		a.cfg.FixturesDir = cmd.String("fixtures-dir")
	}
	if cmd.Bool("debug") {
		a.cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if a.log, a.release, err = a.cfg.Logging.Prepare(a.stderr); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	a.log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("ver", asdf.Version), zap.String("runtime", runtime.Version()))
	if len(cmd.String("config")) == 0 {
		a.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func (a *app) destroy(_ context.Context, cmd *cli.Command) error {
	if a.log != nil {
		a.log.Debug("Program ended", zap.Strings("parsed args", cmd.Args().Slice()))
		// syncing a terminal fails on some platforms, nothing to do about it
		_ = a.log.Sync()
	}
	if a.release != nil {
		if err := a.release(); err != nil {
			return fmt.Errorf("unable to close log file: %w", err)
		}
	}
	return nil
}

func (a *app) exitErrHandler(_ context.Context, _ *cli.Command, err error) {
	var ue *usageError
	if a.log == nil || errors.As(err, &ue) || errors.Is(err, fixture.ErrUnknownFixture) {
		return
	}
	a.log.Error("Program ended with error", zap.Error(err))
	a.handled = a.cfg.Logging.ConsoleLogger.Level != "none"
}

func (a *app) usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

func (a *app) generate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("dump-config") {
		return a.dumpConfig()
	}

	if cmd.NArg() > 1 {
		return &usageError{err: fmt.Errorf("too many fixtures: %s", strings.Join(cmd.Args().Slice(), " "))}
	}
	name := cmd.Args().First()
	if cmd.Bool("all") && len(name) > 0 {
		return &usageError{err: fmt.Errorf("--all conflicts with fixture %q", name)}
	}

	d := fixture.NewDispatcher(asdf.NewFileWriter(a.cfg.WriterOptions()...), a.log)
	switch {
	case cmd.Bool("all"):
		paths, err := d.GenerateAll(a.cfg.FixturesDir)
		a.log.Info("Fixtures generated", zap.Int("written", len(paths)), zap.Int("registered", len(fixture.Names())))
		return err
	case len(name) == 0:
		for _, n := range fixture.Names() {
			if _, err := fmt.Fprintln(a.stdout, n); err != nil {
				return fmt.Errorf("unable to list fixtures: %w", err)
			}
		}
		return nil
	default:
		_, err := d.Generate(name, a.cfg.FixturesDir)
		return err
	}
}

func (a *app) dumpConfig() error {
	data, err := config.Dump(a.cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err := a.stdout.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
