// Package progressbar reports the progress of long running batch inserts on
// os.Stderr.
package progressbar

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar is the subset of *progressbar.ProgressBar used by datasets.
type ProgressBar interface {
	Add(int) error
	Finish() error
	Clear() error
}

type nop struct{}

func (nop) Add(int) error { return nil }
func (nop) Finish() error { return nil }
func (nop) Clear() error  { return nil }

// Nop returns a ProgressBar which does nothing.
func Nop() ProgressBar { return nop{} }

// New returns a progress bar of total steps written to os.Stderr.
func New(total int, description string) ProgressBar {
	return NewWriter(os.Stderr, total, description)
}

func NewWriter(w io.Writer, total int, description string) ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionThrottle(time.Second/3),
		progressbar.OptionShowCount(),     // show current count e.g. 3/5
		progressbar.OptionClearOnFinish(), // clear bar when done
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionUseANSICodes(true),
	)
}
