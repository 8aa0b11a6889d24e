package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/repotidy/internal/integration"
	"github.com/idelchi/repotidy/internal/scanner"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
	out     io.Writer
	errOut  io.Writer
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version, out: os.Stdout, errOut: os.Stderr}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Run(os.Args[1:])
}

// Run runs the CLI with the provided arguments. Errors are reported on the
// error stream before being returned, so callers only need to set the exit code.
func (c CLI) Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := c.newRootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		c.reportError(err)
	}

	return err
}

// reportError prints err the way a user should see it.
func (c CLI) reportError(err error) {
	var (
		pathErr   *scanner.PathError
		accessErr *scanner.AccessError
	)

	switch {
	case errors.As(err, &pathErr):
		fmt.Fprintf(c.errOut, "Error: %v\n", pathErr)
	case errors.As(err, &accessErr):
		fmt.Fprintf(c.errOut, "Permission Error: Cannot access %s\n", accessErr.Path)
		fmt.Fprintf(c.errOut, "%v\n", accessErr.Err)
	default:
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
	}
}

func (c CLI) newRootCommand() *cobra.Command {
	// The config file has to be known before settings can be loaded, so it is
	// the only flag read directly instead of through viper.
	var configFile string

	root := &cobra.Command{
		Use:   "repotidy",
		Short: "Report file-size and file-type statistics for a directory tree",
		Long: heredoc.Doc(`
			repotidy scans a directory tree and reports file-size and file-type statistics.

			Paths containing an excluded component (by default .git, .venv, __pycache__,
			node_modules, .pytest_cache and .mypy_cache) are skipped. Unreadable files and
			broken links are skipped silently; use --debug to see them.

			Flags can also be set in a config file (config.yaml in the user config
			directory under repotidy/, or the working directory) and through
			REPOTIDY_* environment variables, e.g. REPOTIDY_SORT_BY=name.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: <user config dir>/repotidy/config.yaml)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output")

	root.AddCommand(
		c.newSummaryCommand(&configFile),
		c.newTypesCommand(&configFile),
		c.newInitCommand(),
	)

	return root
}

func (c CLI) newSummaryCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary PATH",
		Short: "Summarize sizes and list the entries of a directory tree",
		Long: heredoc.Doc(`
			summary scans PATH and prints the totals, the largest file, the most common
			file types and a listing of every entry found.

			Statistics always reflect the full scan; --limit only shortens the listing.
		`),
		Example: heredoc.Doc(`
			repotidy summary .
			repotidy summary --files-only -x .go -x .md --limit 20 ./src
			repotidy summary --sort-by name --reverse=false -o json .
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.summary(cmd, args[0], *configFile)
		},
	}

	flags := cmd.Flags()
	addExcludeFlags(cmd)
	flags.Bool("files-only", false, "Show only files, exclude directories")
	flags.StringSliceP("ext", "x", []string{}, "File extensions to include (e.g., .py,.js)")
	flags.String("min-size", "0B", "Minimum file size (e.g., 1KB)")
	flags.String("sort-by", string(scanner.SortSize), "Sort by 'size', 'name' or 'none'")
	flags.Bool("reverse", true, "Sort in reverse order (largest first for size, Z-A for name)")
	flags.IntP("limit", "n", 0, "Limit number of results shown (0 = all)")
	flags.StringP("output", "o", "table", "Output format: table, json or paths")
	flags.SortFlags = false

	return cmd
}

func (c CLI) newTypesCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types PATH",
		Short: "Show unique file extensions and their counts",
		Example: heredoc.Doc(`
			repotidy types .
			repotidy types --top 5 ~/src/project
			repotidy types --summary .
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.types(cmd, args[0], *configFile)
		},
	}

	flags := cmd.Flags()
	addExcludeFlags(cmd)
	flags.Int("top", 0, "Show only the top N file types (0 = all)")
	flags.Bool("summary", false, "Show only the count of unique file types")
	flags.StringP("output", "o", "table", "Output format: table or json")
	flags.SortFlags = false

	return cmd
}

func (c CLI) newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Output the zsh integration script",
		Long: heredoc.Doc(`
			init prints a zsh snippet defining 'rtf', which lists the files of a tree
			largest first through fzf and opens the selection in $EDITOR.

			Add it to your shell with:

				eval "$(repotidy init)"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bin, err := os.Executable()
			if err != nil {
				bin = "repotidy"
			}

			rendered, err := integration.Render(bin)
			if err != nil {
				return fmt.Errorf("rendering integration script: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), rendered)

			return nil
		},
	}
}

// addExcludeFlags registers the exclusion flags shared by summary and types.
func addExcludeFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("exclude", "e", slices.Clone(scanner.DefaultExcludes), "Path components to exclude (replaces the defaults)")
	cmd.Flags().Bool("no-excludes", false, "Disable all exclusions")
	cmd.Flags().Bool("gitignore", false, "Also skip paths matched by PATH/.gitignore")
}
