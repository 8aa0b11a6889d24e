package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/repotidy/internal/scanner"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// SummaryTypes is the number of file types listed by the summary.
	SummaryTypes = 5
)

// FormatSize renders bytes with binary scaling and one decimal, e.g. "1.5 KB".
func FormatSize(bytes int64) string {
	size := float64(bytes)

	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}

		size /= 1024.0
	}

	return fmt.Sprintf("%.1f PB", size)
}

// EntryRow is a listed entry.
type EntryRow struct {
	// Path is the entry path.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
	// Dir marks directories.
	Dir bool `json:"dir"`
}

// SummaryReport is the result of the summary command.
type SummaryReport struct {
	// Root is the scanned path as given.
	Root string `json:"root"`
	// Total is the number of entries found, before the display limit.
	Total int `json:"total"`
	// Limit is the display limit, 0 for all.
	Limit int `json:"limit"`
	// Entries are the listed entries.
	Entries []EntryRow `json:"entries"`
	// Statistics summarize every file found.
	Statistics scanner.Statistics `json:"statistics"`
}

func newSummaryReport(root string, entries []scanner.Entry, limit int, stats scanner.Statistics) SummaryReport {
	display := entries
	if limit > 0 && len(display) > limit {
		display = display[:limit]
	}

	rows := make([]EntryRow, 0, len(display))
	for _, e := range display {
		rows = append(rows, EntryRow{Path: e.Path, Size: e.Size, Dir: e.IsDir()})
	}

	return SummaryReport{Root: root, Total: len(entries), Limit: limit, Entries: rows, Statistics: stats}
}

// limited reports whether the listing was cut short by the display limit.
func (r SummaryReport) limited() bool {
	return r.Limit > 0 && r.Total > r.Limit
}

// TypesReport is the result of the types command.
type TypesReport struct {
	// Root is the scanned path as given.
	Root string `json:"root"`
	// Total is the number of unique file types.
	Total int `json:"total"`
	// Top is the requested limit, 0 for all.
	Top int `json:"top"`
	// Types are the listed file types, most common first.
	Types []scanner.ExtensionCount `json:"types"`
}

func newTypesReport(root string, stats scanner.Statistics, top int) TypesReport {
	return TypesReport{
		Root:  root,
		Total: len(stats.FilesByExtension),
		Top:   top,
		Types: stats.TopExtensions(top),
	}
}

// PrintJSON outputs a report in JSON format.
func PrintJSON(report any, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintPaths outputs one entry path per line.
func PrintPaths(rows []EntryRow, writer io.Writer) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, row.Path); err != nil {
			return err
		}
	}

	return nil
}

// PrintSummary outputs the summary report in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintSummary(report SummaryReport, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)
	stats := report.Statistics

	noun := "entries"
	if report.Total == 1 {
		noun = "entry"
	}

	header := fmt.Sprintf("Found %d %s in %s", report.Total, noun, report.Root)
	if report.limited() {
		header += fmt.Sprintf(" (showing first %d)", report.Limit)
	}

	fmt.Fprintln(w, "Summary:\t\t")
	fmt.Fprintf(w, "  %s\n", header)
	fmt.Fprintf(w, "  Total size:\t%s (%s bytes)\n", FormatSize(stats.TotalSize), humanize.Comma(stats.TotalSize))
	fmt.Fprintf(w, "  Files:\t%d | Avg size: %s\n", stats.TotalFiles, FormatSize(int64(stats.AverageSize)))

	if stats.Largest != nil {
		fmt.Fprintf(w, "  Largest:\t%s (%s)\n", stats.Largest.Name(), FormatSize(stats.Largest.Size))
	}

	if len(stats.FilesByExtension) > 0 {
		fmt.Fprintln(w, "\nFile types:\t\t")

		for _, ext := range stats.TopExtensions(SummaryTypes) {
			fmt.Fprintf(w, "  %s:\t%d\n", ext.Extension, ext.Count)
		}

		if more := len(stats.FilesByExtension) - SummaryTypes; more > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", more)
		}
	}

	fmt.Fprintln(w, "\nPath\tSize\t")

	for _, row := range report.Entries {
		fmt.Fprintf(w, "%s\t%s\t\n", row.Path, FormatSize(row.Size))
	}

	return w.Flush()
}

// PrintTypes outputs the types report in human-readable table format.
// With summaryOnly set, only the number of unique types is printed.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTypes(report TypesReport, summaryOnly bool, writer io.Writer) error {
	if report.Total == 0 {
		_, err := fmt.Fprintf(writer, "No file types found in %s\n", report.Root)

		return err
	}

	if summaryOnly {
		_, err := fmt.Fprintf(writer, "%d unique file types\n", report.Total)

		return err
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	header := fmt.Sprintf("Found %d file type%s in %s", report.Total, plural(report.Total), report.Root)
	if report.Top > 0 && report.Top < report.Total {
		header += fmt.Sprintf(" (showing top %d)", report.Top)
	}

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "\nExtension\tCount\tSize\t")

	for _, ext := range report.Types {
		fmt.Fprintf(w, "%s\t%d file%s\t%s\t\n", ext.Extension, ext.Count, plural(ext.Count), FormatSize(ext.Size))
	}

	return w.Flush()
}

// plural returns the suffix for a count of n.
func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}
