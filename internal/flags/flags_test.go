package flags

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aslevy.com/sqlite-dataset/internal/outfmt"
	"aslevy.com/sqlite-dataset/internal/pager"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func restore(t *testing.T) {
	progress, timeout, journal := Progress, BusyTimeout, JournalMode
	format, noPager := outfmt.Format, pager.Disabled
	t.Cleanup(func() {
		Progress, BusyTimeout, JournalMode = progress, timeout, journal
		outfmt.Format, pager.Disabled = format, noPager
	})
}

func TestParseInterleaved(t *testing.T) {
	require := require.New(t)
	restore(t)

	fs := newFlagSet()
	n := fs.Int("n", 5, "")
	args, err := Parse(fs, "db.sqlite", "-n", "3", "users", "-fmt", "md", "-progress")
	require.NoError(err)
	require.Equal([]string{"db.sqlite", "users"}, args)
	require.Equal(3, *n)
	require.Equal(outfmt.Markdown, outfmt.Format)
	require.True(Progress)
}

func TestParseTerminator(t *testing.T) {
	require := require.New(t)
	restore(t)

	args, err := Parse(newFlagSet(), "db", "-no-pager", "--", "-not-a-flag", "-")
	require.NoError(err)
	require.Equal([]string{"db", "-not-a-flag", "-"}, args)
	require.True(pager.Disabled)
}

func TestParseGlobalKeepsValues(t *testing.T) {
	require := require.New(t)
	restore(t)

	cmd, rest, err := ParseGlobal(newFlagSet(), "-busy-timeout", "2s", "-journal", "wal", "head", "db", "-n", "2")
	require.NoError(err)
	require.Equal("head", cmd)
	require.Equal([]string{"db", "-n", "2"}, rest)

	// Adding the global flags to a second FlagSet must not reset them.
	fs := newFlagSet()
	fs.Int("n", 5, "")
	args, err := Parse(fs, rest...)
	require.NoError(err)
	require.Equal([]string{"db"}, args)
	require.Equal(2*time.Second, BusyTimeout)
	require.Equal("wal", JournalMode)
}

func TestParseError(t *testing.T) {
	restore(t)
	_, err := Parse(newFlagSet(), "db", "-unknown")
	require.Error(t, err)
}
