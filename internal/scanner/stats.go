package scanner

import (
	"cmp"
	"slices"
)

// ExtensionCount is one row of the extension histogram.
type ExtensionCount struct {
	// Extension is the lower-cased suffix or NoExtension.
	Extension string `json:"extension"`
	// Count is the number of files with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// Statistics holds the reduction of a scan result. Directories never
// contribute to any field.
type Statistics struct {
	// TotalFiles is the number of files.
	TotalFiles int `json:"total_files"`
	// TotalSize is the cumulative size of all files.
	TotalSize int64 `json:"total_size"`
	// Largest is the first file with the maximum size, nil without files.
	Largest *Entry `json:"largest_file"`
	// Smallest is the first file with the minimum size, nil without files.
	Smallest *Entry `json:"smallest_file"`
	// AverageSize is TotalSize / TotalFiles, 0 without files.
	AverageSize float64 `json:"average_size"`
	// FilesByExtension maps lower-cased suffixes to file counts.
	FilesByExtension map[string]int `json:"files_by_extension"`
	// BytesByExtension maps lower-cased suffixes to cumulative sizes.
	BytesByExtension map[string]int64 `json:"bytes_by_extension"`
}

// extensionKey returns the histogram key for e.
func extensionKey(e Entry) string {
	if ext := e.Suffix(); ext != "" {
		return ext
	}

	return NoExtension
}

// Aggregate reduces entries to statistics. Each entry is re-checked against
// its filesystem; entries that are not regular files at this point, including
// ones that have since disappeared, are ignored.
func Aggregate(entries []Entry) Statistics {
	stats := Statistics{
		FilesByExtension: make(map[string]int),
		BytesByExtension: make(map[string]int64),
	}

	for i := range entries {
		e := entries[i] //nolint:varnamelen // e is standard for element in range
		if !e.IsFile() {
			continue
		}

		stats.TotalFiles++
		stats.TotalSize += e.Size

		// Strict comparisons keep the first entry on ties.
		if stats.Largest == nil || e.Size > stats.Largest.Size {
			stats.Largest = &e
		}

		if stats.Smallest == nil || e.Size < stats.Smallest.Size {
			stats.Smallest = &e
		}

		key := extensionKey(e)
		stats.FilesByExtension[key]++
		stats.BytesByExtension[key] += e.Size
	}

	if stats.TotalFiles > 0 {
		stats.AverageSize = float64(stats.TotalSize) / float64(stats.TotalFiles)
	}

	return stats
}

// TopExtensions returns the histogram ordered by count, largest first, with
// ties broken by extension. n <= 0 returns every extension.
func (s Statistics) TopExtensions(n int) []ExtensionCount {
	list := make([]ExtensionCount, 0, len(s.FilesByExtension))
	for ext, count := range s.FilesByExtension {
		list = append(list, ExtensionCount{Extension: ext, Count: count, Size: s.BytesByExtension[ext]})
	}

	slices.SortFunc(list, func(a, b ExtensionCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Extension, b.Extension)
	})

	if n > 0 && len(list) > n {
		list = list[:n]
	}

	return list
}
