package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idelchi/repotidy/internal/config"
	"github.com/idelchi/repotidy/internal/scanner"
)

// scanOptions translates the shared scan settings into scanner options.
func scanOptions(settings *config.Settings) (scanner.Options, error) {
	options := scanner.Options{
		Excludes:  settings.Exclude,
		OnlyFiles: settings.FilesOnly,
		Gitignore: settings.Gitignore,
		Reverse:   settings.Reverse,
	}

	if settings.NoExcludes {
		options.Excludes = []string{}
	}

	for _, e := range settings.Ext { //nolint:varnamelen // e is standard for element in range
		e = strings.TrimSpace(strings.Trim(e, "'\"")) // Strip quotes first
		if e == "" {
			continue
		}

		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}

		options.Extensions = append(options.Extensions, e)
	}

	if settings.MinSize != "" {
		size, err := humanize.ParseBytes(settings.MinSize)
		if err != nil {
			return options, fmt.Errorf("invalid min-size: %w", err)
		}

		options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	sortBy, err := scanner.ParseSortKey(settings.SortBy)
	if err != nil {
		return options, err
	}

	options.SortBy = sortBy

	return options, nil
}

// load resolves the settings for cmd and builds the logger they ask for.
func (c CLI) load(cmd *cobra.Command, configFile string) (*config.Settings, zerolog.Logger, error) {
	settings, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := newLogger(c.errOut, settings.Debug)
	if settings.Source != "" {
		log.Debug().Str("file", settings.Source).Msg("using config file")
	}

	return settings, log, nil
}

// scan runs the scanner with logging and, on a terminal, a progress line.
func (c CLI) scan(ctx context.Context, root string, options scanner.Options, log zerolog.Logger, progress bool) ([]scanner.Entry, error) {
	log.Debug().
		Str("root", root).
		Strs("exclude", options.Excludes).
		Strs("ext", options.Extensions).
		Bool("files_only", options.OnlyFiles).
		Int64("min_size", options.MinSize).
		Bool("gitignore", options.Gitignore).
		Str("sort_by", string(options.SortBy)).
		Bool("reverse", options.Reverse).
		Msg("scanning")

	options.OnSkip = func(path string, err error) {
		log.Debug().Err(err).Str("path", path).Msg("skipped")
	}

	reporter := newProgressReporter(c.errOut, progress && isTerminal(c.errOut))
	options.OnProgress = reporter.update

	start := time.Now()

	entries, err := scanner.Scan(ctx, root, options)

	reporter.clear()

	if err != nil {
		return nil, err
	}

	log.Debug().Int("entries", len(entries)).Dur("elapsed", time.Since(start)).Msg("scan finished")

	return entries, nil
}

func (c CLI) summary(cmd *cobra.Command, root string, configFile string) error {
	settings, log, err := c.load(cmd, configFile)
	if err != nil {
		return err
	}

	allowedOutputs := []string{"table", "json", "paths"}
	output := strings.ToLower(settings.Output)

	if !slices.Contains(allowedOutputs, output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", settings.Output, allowedOutputs)
	}

	if settings.Limit < 0 {
		return errors.New("limit cannot be negative")
	}

	options, err := scanOptions(settings)
	if err != nil {
		return err
	}

	entries, err := c.scan(cmd.Context(), root, options, log, output != "json" && !settings.Debug)
	if err != nil {
		return err
	}

	// Statistics cover the full scan; the limit only applies to the listing.
	report := newSummaryReport(root, entries, settings.Limit, scanner.Aggregate(entries))

	switch output {
	case "json":
		return PrintJSON(report, c.out)
	case "paths":
		return PrintPaths(report.Entries, c.out)
	default:
		return PrintSummary(report, c.out)
	}
}

func (c CLI) types(cmd *cobra.Command, root string, configFile string) error {
	settings, log, err := c.load(cmd, configFile)
	if err != nil {
		return err
	}

	allowedOutputs := []string{"table", "json"}
	output := strings.ToLower(settings.Output)

	if !slices.Contains(allowedOutputs, output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", settings.Output, allowedOutputs)
	}

	if settings.Top < 0 {
		return errors.New("top cannot be negative")
	}

	// File types only make sense for files; extensions and ordering are irrelevant.
	options := scanner.Options{
		Excludes:  settings.Exclude,
		OnlyFiles: true,
		Gitignore: settings.Gitignore,
	}

	if settings.NoExcludes {
		options.Excludes = []string{}
	}

	entries, err := c.scan(cmd.Context(), root, options, log, output != "json" && !settings.Debug)
	if err != nil {
		return err
	}

	report := newTypesReport(root, scanner.Aggregate(entries), settings.Top)

	if output == "json" {
		return PrintJSON(report, c.out)
	}

	return PrintTypes(report, settings.Summary, c.out)
}
