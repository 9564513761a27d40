package internal

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps the progressbar library so bulk ingestion can report
// progress without every caller needing to know whether progress is
// currently enabled. import-snapshot is its only user; deserialize reports
// no progress.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

var showProgress = true

func SetQuietMode(quiet bool) {
	showProgress = !quiet
}

func IsQuietMode() bool {
	return !showProgress
}

// NewProgressBar creates a progress bar with the given max and
// description. If progress output is disabled, Add/Set/Finish become
// no-ops rather than the caller needing to branch.
func NewProgressBar(max int64, description string) *ProgressBar {
	if !showProgress {
		return &ProgressBar{bar: nil}
	}

	bar := progressbar.NewOptions64(
		max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(100),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressBar{bar: bar}
}

// Add implements importer.Progress.
func (p *ProgressBar) Add(n int) {
	if p.bar != nil {
		p.bar.Add(n)
	}
}

func (p *ProgressBar) Set(n int) {
	if p.bar != nil {
		p.bar.Set(n)
	}
}

func (p *ProgressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
