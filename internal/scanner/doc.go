// Package scanner walks directory trees and reduces what it finds to
// file-size and file-type statistics.
//
// Scan walks a tree with fastwalk, filters each node individually and returns
// an ordered slice of entries. Aggregate folds such a slice into totals,
// extremes, an average and an extension histogram. Neither writes to any
// output stream; callers observe skipped nodes through Options.OnSkip.
package scanner
