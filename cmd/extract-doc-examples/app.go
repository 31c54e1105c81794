package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/robert-malhotra/asdf-fixtures/internal/docex"
)

const appName = "extract-doc-examples"

var errNoInput = errors.New("no input files")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var usage bool

	cmd := &cli.Command{
		Name:            appName,
		Usage:           "extracts named code examples from reStructuredText files",
		HideHelpCommand: true,
		HideVersion:     true,
		Writer:          stdout,
		ErrWriter:       stderr,
		ArgsUsage:       "FILE...",
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			usage = true
			return err
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Value: "doc_examples", Usage: "write extracted examples to `DIR`"},
			&cli.StringFlag{Name: "language", Value: docex.DefaultOptions.Language, Usage: "extract `LANG` code directives"},
			&cli.StringFlag{Name: "prefix", Value: docex.DefaultOptions.Prefix, Usage: "extract only examples whose name starts with `PREFIX`"},
			&cli.StringFlag{Name: "ext", Value: ".c", Usage: "extension of written files"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log skipped inputs and per-file counts"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				usage = true
				return errNoInput
			}
			return extract(cmd, stdout, newLogger(stderr, cmd.Bool("debug")))
		},
	}

	err := cmd.Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case usage:
		fmt.Fprintf(stderr, "Incorrect usage: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "Program ended with error: %v\n", err)
		return 1
	}
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = zapcore.OmitKey
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel))
}

func extract(cmd *cli.Command, stdout io.Writer, log *zap.Logger) error {
	ex, err := docex.NewExtractor(docex.Options{Language: cmd.String("language"), Prefix: cmd.String("prefix")})
	if err != nil {
		return err
	}

	var examples []docex.Example
	for _, path := range cmd.Args().Slice() {
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			log.Debug("Skipping input, not a file", zap.String("path", path))
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", path, err)
		}
		found := ex.Extract(string(data))
		log.Debug("Scanned input", zap.String("path", path), zap.Int("examples", len(found)))
		examples = append(examples, found...)
	}

	paths, err := docex.WriteAll(cmd.String("out-dir"), cmd.String("ext"), examples)
	for _, p := range paths {
		if _, er := fmt.Fprintf(stdout, "Wrote %s\n", p); er != nil {
			err = multierr.Append(err, er)
			break
		}
	}
	return err
}
