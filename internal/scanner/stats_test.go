package scanner

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memEntries creates files on an in-memory filesystem and returns entries for
// them in the given order, with sizes taken from the caller rather than disk.
func memEntries(t *testing.T, fsys afero.Fs, files map[string]int64, order ...string) []Entry {
	t.Helper()

	entries := make([]Entry, 0, len(order))
	for _, path := range order {
		size, ok := files[path]
		require.True(t, ok, path)
		require.NoError(t, afero.WriteFile(fsys, path, []byte("x"), 0o644))

		entries = append(entries, NewEntry(fsys, path, size))
	}

	return entries
}

func TestAggregateEmpty(t *testing.T) {
	for name, entries := range map[string][]Entry{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			stats := Aggregate(entries)

			assert.Zero(t, stats.TotalFiles)
			assert.Zero(t, stats.TotalSize)
			assert.Nil(t, stats.Largest)
			assert.Nil(t, stats.Smallest)
			assert.Zero(t, stats.AverageSize)
			assert.NotNil(t, stats.FilesByExtension)
			assert.Empty(t, stats.FilesByExtension)
			assert.Empty(t, stats.TopExtensions(0))
		})
	}
}

func TestAggregateIgnoresDirectoriesAndVanishedEntries(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/repo/src", 0o755))

	entries := memEntries(t, fsys, map[string]int64{"/repo/src/main.go": 120}, "/repo/src/main.go")
	entries = append(entries,
		NewEntry(fsys, "/repo/src", 4096),
		NewEntry(fsys, "/repo/gone.txt", 999),
	)

	stats := Aggregate(entries)
	assert.Equal(t, 1, stats.TotalFiles)
	assert.EqualValues(t, 120, stats.TotalSize)
	assert.Equal(t, "/repo/src/main.go", stats.Largest.Path)
	assert.Equal(t, map[string]int{".go": 1}, stats.FilesByExtension)

	assert.True(t, entries[1].IsDir())
	assert.False(t, entries[2].IsDir())
	assert.False(t, entries[2].IsFile())
}

func TestAggregateTiesFirstWins(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sizes := map[string]int64{"/b.txt": 10, "/a.txt": 10, "/c.txt": 50, "/d.txt": 50}

	stats := Aggregate(memEntries(t, fsys, sizes, "/b.txt", "/c.txt", "/a.txt", "/d.txt"))
	assert.Equal(t, "/c.txt", stats.Largest.Path)
	assert.Equal(t, "/b.txt", stats.Smallest.Path)

	stats = Aggregate(memEntries(t, fsys, sizes, "/d.txt", "/a.txt", "/c.txt", "/b.txt"))
	assert.Equal(t, "/d.txt", stats.Largest.Path)
	assert.Equal(t, "/a.txt", stats.Smallest.Path)
}

func TestAggregateTotals(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sizes := map[string]int64{"/x/one.py": 1, "/x/two.PY": 2, "/x/Makefile": 4, "/x/.bashrc": 8, "/x/archive.tar.GZ": 16}

	stats := Aggregate(memEntries(t, fsys, sizes, "/x/one.py", "/x/two.PY", "/x/Makefile", "/x/.bashrc", "/x/archive.tar.GZ"))

	assert.Equal(t, 5, stats.TotalFiles)
	assert.EqualValues(t, 31, stats.TotalSize)
	assert.InDelta(t, 31.0/5.0, stats.AverageSize, 1e-9)
	assert.Equal(t, map[string]int{".py": 2, NoExtension: 2, ".gz": 1}, stats.FilesByExtension)
	assert.Equal(t, map[string]int64{".py": 3, NoExtension: 12, ".gz": 16}, stats.BytesByExtension)

	assert.Equal(t, []ExtensionCount{
		{Extension: NoExtension, Count: 2, Size: 12},
		{Extension: ".py", Count: 2, Size: 3},
		{Extension: ".gz", Count: 1, Size: 16},
	}, stats.TopExtensions(0))
	assert.Len(t, stats.TopExtensions(1), 1)
}

func TestSuffix(t *testing.T) {
	tests := map[string]string{
		"file.txt":           ".txt",
		"dir/archive.tar.gz": ".gz",
		".bashrc":            "",
		"Makefile":           "",
		"file.":              "",
		"..hidden":           ".hidden",
		"dir.d/noext":        "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Suffix(in), in)
	}
}

func TestSortStable(t *testing.T) {
	entries := []Entry{
		{Path: "b", Size: 1},
		{Path: "a", Size: 2},
		{Path: "c", Size: 1},
	}

	Sort(entries, SortSize, true)
	assert.Equal(t, []string{"a", "b", "c"}, []string{entries[0].Path, entries[1].Path, entries[2].Path})

	Sort(entries, SortSize, false)
	assert.Equal(t, []string{"b", "c", "a"}, []string{entries[0].Path, entries[1].Path, entries[2].Path})

	Sort(entries, SortNone, true)
	assert.Equal(t, []string{"b", "c", "a"}, []string{entries[0].Path, entries[1].Path, entries[2].Path})
}
