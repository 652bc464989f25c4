// Package cli provides the command-line interface for scriptutils.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/scriptutils/internal/config"
	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/report"
	"github.com/klauern/scriptutils/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// app holds what every command needs for one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	fs     *fsutil.FS
	cfg    *config.Config
}

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr, fs: fsutil.OS()}
	return a.command().Run(ctx, args)
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "scriptutils",
		Usage:     "Copy and patch files for build scripts without clobbering anything",
		Version:   Version,
		Reader:    a.in,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Read configuration from `FILE` (.yaml or .toml)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := a.loadConfig(cmd); err != nil {
				return ctx, err
			}
			a.configureColors(cmd)
			return ctx, a.configureLogging(cmd)
		},
		Commands: []*cli.Command{
			a.versionCommand(),
			a.configCommand(),
			a.copyCommand(),
			a.copyDirCommand(),
			a.replaceCommand(),
			a.diffCommand(),
			a.isEmptyCommand(),
			a.ensureEmptyCommand(),
			a.emptyDirCommand(),
			a.removeCommand(),
		},
	}
}

// loadConfig reads --config when given, otherwise the default config file.
func (a *app) loadConfig(cmd *cli.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// configureColors sets up color output based on CLI flags and config.
func (a *app) configureColors(cmd *cli.Command) {
	switch {
	case cmd.Bool("no-color"), a.cfg.Output.Color == "never":
		ui.DisableColors()
	case a.cfg.Output.Color == "always":
		ui.EnableColors()
	case !ui.IsTerminal(a.out):
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level based on CLI flags and config.
func (a *app) configureLogging(cmd *cli.Command) error {
	opts := logging.DefaultOptions()
	opts.Output = a.errOut
	opts.JSON = a.cfg.Log.JSON
	opts.File = a.cfg.LogFile()
	opts.MaxSizeMB = a.cfg.Log.MaxSizeMB
	opts.MaxBackups = a.cfg.Log.MaxBackups

	if a.cfg.Log.Level != "" {
		if err := opts.Level.UnmarshalText([]byte(a.cfg.Log.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", a.cfg.Log.Level, err)
		}
	}

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") || a.cfg.Output.Verbose {
		opts.Level = min(opts.Level, slog.LevelInfo)
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}

// reporter returns the console reporter commands write task lines to.
func (a *app) reporter() report.Reporter {
	return report.NewConsole(a.out)
}
