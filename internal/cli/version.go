package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"
)

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version and build information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, _ = fmt.Fprintf(a.out, "scriptutils version %s\n", Version)
			_, _ = fmt.Fprintf(a.out, "  commit: %s\n", Commit)
			_, _ = fmt.Fprintf(a.out, "  built: %s\n", BuildDate)
			_, _ = fmt.Fprintf(a.out, "  go: %s\n", runtime.Version())
			return nil
		},
	}
}
