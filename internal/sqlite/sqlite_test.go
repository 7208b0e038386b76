package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	require := require.New(t)
	require.Equal("test.db", DSN("test.db", Options{}))
	require.Equal("test.db?_pragma=busy_timeout%281500%29&_pragma=foreign_keys%281%29",
		DSN("test.db", Options{BusyTimeout: 1500 * time.Millisecond, ForeignKeys: true}))
	require.Equal("file:test.db?cache=shared&_pragma=foreign_keys%281%29",
		DSN("file:test.db?cache=shared", Options{ForeignKeys: true}))
}

func TestOpenURIWithQuery(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := "file:" + filepath.Join(t.TempDir(), "test.sqlite3") + "?cache=shared"
	db, err := Open(path, DefaultOptions())
	require.NoError(err, "Open")
	t.Cleanup(func() { require.NoError(db.Close(), "DB.Close") })

	conn, err := db.Conn(ctx)
	require.NoError(err, "DB.Conn")
	t.Cleanup(func() { require.NoError(conn.Close(), "Conn.Close") })

	var foreignKeys bool
	require.NoError(GetPragma(ctx, conn, PragmaForeignKeys, &foreignKeys))
	require.True(foreignKeys, "foreign_keys should be enabled")
}

func TestOpenPragmas(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.sqlite3")
	db, err := Open(path, DefaultOptions())
	require.NoError(err, "Open")
	t.Cleanup(func() { require.NoError(db.Close(), "DB.Close") })

	conn, err := db.Conn(ctx)
	require.NoError(err, "DB.Conn")
	t.Cleanup(func() { require.NoError(conn.Close(), "Conn.Close") })

	var foreignKeys bool
	require.NoError(GetPragma(ctx, conn, PragmaForeignKeys, &foreignKeys))
	require.True(foreignKeys, "foreign_keys should be enabled")

	var busyTimeout int
	require.NoError(GetPragma(ctx, conn, PragmaBusyTimeout, &busyTimeout))
	require.Equal(int(DefaultBusyTimeout.Milliseconds()), busyTimeout)

	require.NoError(SetJournalMode(ctx, conn, JournalWAL))
	var mode string
	require.NoError(GetPragma(ctx, conn, PragmaJournalMode, &mode))
	require.Equal(JournalWAL, mode)

	require.NoError(SetPragma(ctx, conn, PragmaUserVersion, 7))
	var userVersion int
	require.NoError(GetPragma(ctx, conn, PragmaUserVersion, &userVersion))
	require.Equal(7, userVersion)
}

func TestParseJournalMode(t *testing.T) {
	require := require.New(t)
	mode, err := ParseJournalMode(" WAL ")
	require.NoError(err)
	require.Equal(JournalWAL, mode)

	_, err = ParseJournalMode("sideways")
	require.Error(err)
}
