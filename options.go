package dataset

import (
	"io"
	"log"
	"os"
	"time"

	"aslevy.com/sqlite-dataset/internal/progressbar"
	"aslevy.com/sqlite-dataset/internal/sqlite"
)

// Option configures a Dataset.
type Option func(*options)

type options struct {
	pragmas     sqlite.Options
	journalMode sqlite.JournalMode

	warn *log.Logger

	progress       bool
	progressOutput io.Writer
}

func newOptions(opts ...Option) options {
	o := defaultOptions()
	WithOptions(opts...)(&o)
	return o
}
func defaultOptions() options {
	return options{
		pragmas: sqlite.DefaultOptions(),
		warn:    log.New(os.Stderr, "sqlite-dataset: warning: ", 0),
	}
}

func WithOptions(opts ...Option) Option {
	return func(o *options) {
		for _, opt := range opts {
			opt(o)
		}
	}
}

// WithBusyTimeout sets how long a connection waits on a locked database file
// before failing. Zero disables waiting. The default is 5s.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		o.pragmas.BusyTimeout = d
	}
}

// WithForeignKeys toggles enforcement of foreign key constraints, which is on
// by default.
func WithForeignKeys(enabled bool) Option {
	return func(o *options) {
		o.pragmas.ForeignKeys = enabled
	}
}

// WithJournalMode sets the journal mode of the database file when it is
// built. By default the journal mode is left alone.
func WithJournalMode(mode sqlite.JournalMode) Option {
	return func(o *options) {
		o.journalMode = mode
	}
}

// WithWAL is WithJournalMode(sqlite.JournalWAL).
func WithWAL() Option { return WithJournalMode(sqlite.JournalWAL) }

// WithWarnLogger sets the logger used for non-fatal warnings, such as
// connecting to a dataset which does not exist yet. A nil logger discards
// warnings.
func WithWarnLogger(l *log.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		o.warn = l
	}
}

// WithProgressBar shows a progress bar on os.Stderr while inserting records.
func WithProgressBar() Option { return WithProgressBarOutput(os.Stderr) }

func WithProgressBarOutput(w io.Writer) Option {
	return func(o *options) {
		o.progress = true
		o.progressOutput = w
	}
}

func (o options) newProgressBar(total int, description string) progressbar.ProgressBar {
	if !o.progress {
		return progressbar.Nop()
	}
	return progressbar.NewWriter(o.progressOutput, total, description)
}

// ReadOption configures ReadTable and ReadChunks.
type ReadOption func(*readOptions)

const (
	DefaultChunkSize = 1024
	DefaultHeadLimit = 5
)

type readOptions struct {
	columns   []string
	limit     int
	chunkSize int
}

func newReadOptions(opts ...ReadOption) readOptions {
	o := readOptions{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithColumns selects only the named columns, in the given order. All
// columns are read by default.
func WithColumns(cols ...string) ReadOption {
	return func(o *readOptions) {
		o.columns = append(o.columns, cols...)
	}
}

// WithLimit reads at most n rows. A limit <= 0 reads all rows.
func WithLimit(n int) ReadOption {
	return func(o *readOptions) {
		o.limit = n
	}
}

// WithChunkSize sets the maximum number of rows per record passed to the
// ReadChunks callback. A size <= 0 uses DefaultChunkSize.
func WithChunkSize(n int) ReadOption {
	return func(o *readOptions) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		o.chunkSize = n
	}
}
