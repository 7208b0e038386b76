package sql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestConn(t *testing.T) *Conn {
	require := require.New(t)
	ctx := context.Background()

	db, err := Open("sqlite", filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(err, "Open")
	t.Cleanup(func() { require.NoError(db.Close(), "DB.Close") })

	conn, err := db.Conn(ctx)
	require.NoError(err, "DB.Conn")
	t.Cleanup(func() { require.NoError(conn.Close(), "Conn.Close") })

	_, err = conn.ExecContext(ctx, `CREATE TABLE "kv" ("k" TEXT PRIMARY KEY, "v" INTEGER);`)
	require.NoError(err, "create table")
	return conn
}

func countRows(t *testing.T, conn *Conn) (n int) {
	t.Helper()
	row := conn.QueryRowContext(context.Background(), `SELECT count(*) FROM "kv";`)
	require.NoError(t, row.Scan(&n))
	return
}

func TestErrFailedQuery(t *testing.T) {
	require := require.New(t)
	conn := openTestConn(t)

	const query = `INSERT INTO "missing" VALUES (?);`
	_, err := conn.ExecContext(context.Background(), query, 1)
	require.Error(err)

	var failed ErrFailedQuery
	require.True(errors.As(err, &failed), "should be ErrFailedQuery")
	require.Equal("exec", failed.Verb)
	require.Equal(query, failed.Query)
	require.Equal([]any{1}, failed.Args)
	require.Contains(err.Error(), "missing")

	// Already wrapped errors are returned unchanged.
	require.Equal(err, newErrFailedQuery(err, "query", "SELECT 1;"))
}

func TestRowScanNoRows(t *testing.T) {
	conn := openTestConn(t)
	var v int
	err := conn.QueryRowContext(context.Background(), `SELECT "v" FROM "kv" WHERE "k" = ?;`, "nope").Scan(&v)
	require.ErrorIs(t, err, ErrNoRows)
	var failed ErrFailedQuery
	require.False(t, errors.As(err, &failed), "ErrNoRows should not be wrapped")
}

func TestRunTx(t *testing.T) {
	ctx := context.Background()
	const insert = `INSERT INTO "kv" ("k", "v") VALUES (?, ?);`

	t.Run("commit", func(t *testing.T) {
		conn := openTestConn(t)
		err := conn.RunTx(ctx, func(tx *Tx) error {
			_, err := tx.ExecContext(ctx, insert, "a", 1)
			return err
		})
		require.NoError(t, err)
		require.Equal(t, 1, countRows(t, conn))
	})

	t.Run("rollback on error", func(t *testing.T) {
		conn := openTestConn(t)
		err := conn.RunTx(ctx, func(tx *Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "a", 1); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, insert, "a", 2) // duplicate key
			return err
		})
		require.Error(t, err)
		require.Equal(t, 0, countRows(t, conn))
	})

	t.Run("rollback on panic", func(t *testing.T) {
		conn := openTestConn(t)
		require.Panics(t, func() {
			_ = conn.RunTx(ctx, func(tx *Tx) error {
				if _, err := tx.ExecContext(ctx, insert, "a", 1); err != nil {
					return err
				}
				panic("boom")
			})
		})
		require.Equal(t, 0, countRows(t, conn))
	})
}
