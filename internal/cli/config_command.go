package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/scriptutils/internal/config"
	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/ui"
	"github.com/klauern/scriptutils/internal/util"
)

func (a *app) configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or create the scriptutils configuration",
		Commands: []*cli.Command{
			a.configShowCommand(),
			a.configPathCommand(),
			a.configInitCommand(),
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			return a.showConfig("yaml")
		},
	}
}

func (a *app) configShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Display the effective configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "Output format (yaml, toml)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return a.showConfig(cmd.String("format"))
		},
	}
}

func (a *app) showConfig(format string) error {
	var out string
	switch format {
	case "yaml":
		data, err := yaml.Marshal(a.cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		out = string(data)
	case "toml":
		data, err := toml.Marshal(a.cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		out = string(data)
	default:
		return fmt.Errorf("unsupported format %q (valid: yaml, toml)", format)
	}

	_, _ = fmt.Fprintln(a.out, ui.Heading("scriptutils configuration"))
	_, _ = fmt.Fprint(a.out, out)
	return nil
}

func (a *app) configPathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Display configuration and log paths",
		Action: func(_ context.Context, _ *cli.Command) error {
			_, _ = fmt.Fprintln(a.out, "Configuration paths:")
			_, _ = fmt.Fprintf(a.out, "  config dir:  %s\n", util.ConfigDir())
			_, _ = fmt.Fprintf(a.out, "  config file: %s\n", config.FilePath())
			_, _ = fmt.Fprintf(a.out, "  default log: %s\n", util.LogPath())
			return nil
		},
	}
}

func (a *app) configInitCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default configuration file",
		UsageText: "scriptutils config init [path]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := config.FilePath()
			if cmd.Args().Len() > 0 {
				path = cmd.Args().Get(0)
			}

			exists, err := a.fs.Exists(path)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("config file %s: %w", path, fsutil.ErrDestinationExists)
			}

			if err := config.Default().SaveToPath(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			abs, _ := filepath.Abs(path)
			_, _ = fmt.Fprintln(a.out, ui.StatusSuccess("Wrote "+abs))
			return nil
		},
	}
}
