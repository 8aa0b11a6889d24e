package cli

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// DefaultProgressInterval is the minimum interval between progress updates.
const DefaultProgressInterval = 100 * time.Millisecond

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// progressReporter shows a spinner with the number of visited entries.
// A disabled reporter ignores every call.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

// newProgressReporter creates a reporter writing to w.
func newProgressReporter(w io.Writer, enabled bool) *progressReporter {
	if !enabled {
		return &progressReporter{}
	}

	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Scanning…"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(DefaultProgressInterval),
		progressbar.OptionClearOnFinish(),
	)

	return &progressReporter{bar: bar}
}

// update records the number of visited entries.
func (p *progressReporter) update(visited int64) {
	if p.bar == nil {
		return
	}

	_ = p.bar.Set64(visited)
}

// clear removes the spinner line.
func (p *progressReporter) clear() {
	if p.bar == nil {
		return
	}

	_ = p.bar.Finish()
}
