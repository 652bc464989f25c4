package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/scriptutils/internal/diff"
	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/patch"
	"github.com/klauern/scriptutils/internal/prompt"
	"github.com/klauern/scriptutils/internal/sync"
	"github.com/klauern/scriptutils/internal/ui"
)

// requireArgs returns the first n positional arguments or a usage error.
func requireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	args := cmd.Args()
	if args.Len() != len(names) {
		return nil, fmt.Errorf("%s requires exactly %d argument(s): <%s>",
			cmd.Name, len(names), strings.Join(names, "> <"))
	}
	out := make([]string, len(names))
	for i := range names {
		out[i] = args.Get(i)
	}
	return out, nil
}

func (a *app) syncEngine(withProgress bool) *sync.Engine {
	opts := []sync.Option{
		sync.WithPrompt(prompt.Stdin(a.in, a.out)),
		sync.WithDiffOptions(diff.Options{Context: a.cfg.Diff.Context}),
	}
	if withProgress {
		opts = append(opts, sync.WithProgress(a.errOut))
	}
	return sync.NewEngine(a.fs, a.reporter(), opts...)
}

func (a *app) copyCommand() *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "Copy a file, deciding what to do if the destination exists",
		UsageText: "scriptutils copy [options] <src> <dest>",
		Description: `Copy src to dest, creating dest's parent directories.

   When dest already exists, --exists decides what happens:
     fail       stop with an error (default)
     skip       leave dest alone
     overwrite  replace dest
     ask        show a diff and ask; identical files are left alone

   Examples:
     scriptutils copy templates/.env .env
     scriptutils copy --exists ask templates/tsconfig.json tsconfig.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "exists",
				Aliases: []string{"e"},
				Usage:   "What to do when dest exists (fail, skip, overwrite, ask)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "src", "dest")
			if err != nil {
				return err
			}

			decision := a.cfg.GetDecision()
			if cmd.IsSet("exists") {
				if decision, err = sync.ParseDecision(cmd.String("exists")); err != nil {
					return err
				}
			}

			_, err = a.syncEngine(false).CopyFile(args[0], args[1], sync.WithDecision(decision))
			return err
		},
	}
}

func (a *app) copyDirCommand() *cli.Command {
	return &cli.Command{
		Name:      "copy-dir",
		Usage:     "Copy a directory tree, failing if any destination file exists",
		UsageText: "scriptutils copy-dir <src> <dest>",
		Description: `Copy every file under src into dest. Existing directories are merged
   into; an existing file stops the copy. Files copied before the conflict are
   left in place.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "src", "dest")
			if err != nil {
				return err
			}
			return a.syncEngine(true).CopyDir(args[0], args[1])
		},
	}
}

func (a *app) replaceCommand() *cli.Command {
	return &cli.Command{
		Name:      "replace",
		Usage:     "Write a patched copy of a file, verifying the number of matches",
		UsageText: "scriptutils replace [options] <src> <dest>",
		Description: `Replace every match in src and write the result to dest, which must not
   exist. Nothing is written unless the number of matches equals --count.

   Examples:
     scriptutils replace --find 'name: app' --replace 'name: web' app.yaml web.yaml
     scriptutils replace --regex '(?<=version: )\d+' --replace 2 --count 3 a.yaml b.yaml
     scriptutils replace --regex '^name' --case upper --any-count a.yaml b.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "find",
				Usage: "Literal text to find",
			},
			&cli.StringFlag{
				Name:  "regex",
				Usage: "JavaScript-style regular expression to find",
			},
			&cli.StringFlag{
				Name:  "replace",
				Usage: "Replacement text, used literally",
			},
			&cli.StringFlag{
				Name:  "case",
				Usage: "Replace each match with itself in `CASE` (upper, lower, title)",
			},
			&cli.IntFlag{
				Name:  "count",
				Value: patch.DefaultCount,
				Usage: "Number of matches required before anything is written",
			},
			&cli.BoolFlag{
				Name:  "any-count",
				Usage: "Accept any number of matches",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "src", "dest")
			if err != nil {
				return err
			}

			matcher, err := findMatcher(cmd)
			if err != nil {
				return err
			}

			var replacer patch.Replacer
			switch {
			case cmd.IsSet("case") && cmd.IsSet("replace"):
				return errors.New("--case and --replace cannot be used together")
			case cmd.IsSet("case"):
				if replacer, err = patch.CaseReplacer(cmd.String("case")); err != nil {
					return err
				}
			default:
				replacer = patch.With(cmd.String("replace"))
			}

			count := patch.Count(cmd.Int("count"))
			if cmd.Bool("any-count") {
				if cmd.IsSet("count") {
					return errors.New("--count and --any-count cannot be used together")
				}
				count = patch.AnyCount()
			}
			if err := count.Validate(); err != nil {
				return err
			}

			return patch.NewEngine(a.fs, a.reporter()).ReplaceInFile(patch.ReplaceOptions{
				Src:     args[0],
				Dest:    args[1],
				Find:    matcher,
				Replace: replacer,
				Count:   count,
			})
		},
	}
}

func findMatcher(cmd *cli.Command) (patch.Matcher, error) {
	find, regex := cmd.IsSet("find"), cmd.IsSet("regex")
	switch {
	case find && regex:
		return nil, errors.New("--find and --regex cannot be used together")
	case find:
		return patch.Literal(cmd.String("find")), nil
	case regex:
		return patch.ECMAScript(cmd.String("regex"))
	default:
		return nil, errors.New("one of --find or --regex is required")
	}
}

func (a *app) diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Show a unified diff between two files",
		UsageText: "scriptutils diff [options] <a> <b>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "context",
				Aliases: []string{"U"},
				Usage:   "Lines of context around each change",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "a", "b")
			if err != nil {
				return err
			}

			opts := diff.Options{Context: a.cfg.Diff.Context}
			if cmd.IsSet("context") {
				opts.Context = cmd.Int("context")
			}

			result, err := diff.Files(a.fs, args[0], args[1], opts)
			if err != nil {
				return err
			}
			if result.Identical {
				_, _ = fmt.Fprintln(a.out, ui.StatusSuccess("Files are identical"))
				return nil
			}
			_, _ = fmt.Fprint(a.out, diff.Colorize(result.Text))
			_, _ = fmt.Fprintln(a.out, ui.Dim(result.Summary()))
			return nil
		},
	}
}

func (a *app) isEmptyCommand() *cli.Command {
	return &cli.Command{
		Name:      "is-empty",
		Usage:     "Print whether a path is missing or an empty directory",
		UsageText: "scriptutils is-empty <path>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "path")
			if err != nil {
				return err
			}
			empty, err := a.fs.IsEmpty(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.out, empty)
			return nil
		},
	}
}

func (a *app) tasks() *fsutil.Tasks {
	return fsutil.NewTasks(a.fs, a.reporter())
}

func (a *app) ensureEmptyCommand() *cli.Command {
	return &cli.Command{
		Name:      "ensure-empty",
		Usage:     "Fail unless a path is missing or an empty directory",
		UsageText: "scriptutils ensure-empty <path>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "path")
			if err != nil {
				return err
			}
			return a.tasks().EnsureEmpty(args[0])
		},
	}
}

func (a *app) emptyDirCommand() *cli.Command {
	return &cli.Command{
		Name:      "empty-dir",
		Usage:     "Remove everything inside a directory, creating it if missing",
		UsageText: "scriptutils empty-dir <dir>",
		Description: `Remove every entry inside dir. Home, root, absolute and current-directory
   paths are refused.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "dir")
			if err != nil {
				return err
			}
			return a.tasks().EmptyDir(args[0])
		},
	}
}

func (a *app) removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove a file if it exists",
		UsageText: "scriptutils remove <path>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "path")
			if err != nil {
				return err
			}
			return a.tasks().RemoveFileIfExists(args[0])
		},
	}
}
