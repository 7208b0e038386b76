package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	dataset "aslevy.com/sqlite-dataset"
	"aslevy.com/sqlite-dataset/internal/flags"
	"aslevy.com/sqlite-dataset/internal/outfmt"
	"aslevy.com/sqlite-dataset/internal/pager"
)

type result struct {
	stdout, stderr string
	err            error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	format, noPager := outfmt.Format, pager.Disabled
	progress, timeout, journal := flags.Progress, flags.BusyTimeout, flags.JournalMode
	t.Cleanup(func() {
		outfmt.Format, pager.Disabled = format, noPager
		flags.Progress, flags.BusyTimeout, flags.JournalMode = progress, timeout, journal
	})
	outfmt.Format = outfmt.Text

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout.String(), stderr.String(), err}
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	res := runCLI(t, stdin, args...)
	require.NoError(t, res.err, res.stderr)
	return res.stdout
}

const users = `{"name": "alice", "age": 30, "tags": ["a", "b"]}
{"name": "bob"}
{"name": "carol", "age": 41}
`

func TestCLI(t *testing.T) {
	require := require.New(t)
	db := filepath.Join(t.TempDir(), "test.db")

	out := mustRun(t, "", "create", db, "-table", "users",
		"-col", "name:VARCHAR:notnull", "-col", "age:INTEGER,tags:TEXT")
	require.Equal("created "+db+" with 1 tables\n", out)

	out = mustRun(t, users, "-progress", "insert", db, "users")
	require.Equal("inserted 3 records into users\n", out)

	out = mustRun(t, "", "tables", db)
	require.Equal("users\t3\n", out)

	out = mustRun(t, "", "head", db, "users", "-n", "2")
	require.Contains(out, "alice")
	require.Contains(out, "bob")
	require.NotContains(out, "carol")
	require.Contains(out, `["a","b"]`)
	require.Contains(out, "(2 rows)")

	out = mustRun(t, "", "-fmt", "md", "read", db, "users", "-cols", "name", "-chunk", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(lines, 5, out)
	require.NotContains(out, "age")

	out = mustRun(t, "", "schema", db)
	require.Contains(out, `CREATE TABLE IF NOT EXISTS "users"`)
	require.Contains(out, `"name" VARCHAR NOT NULL`)
}

func TestCLISchemaYAML(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")

	schema := filepath.Join(dir, "schema.yaml")
	require.NoError(os.WriteFile(schema, []byte(`tables:
  events:
    - {name: id, type: INTEGER, primary_key: true}
    - {name: at, type: DATETIME, not_null: true}
  notes:
    - {name: body}
`), 0o644))
	mustRun(t, "", "create", src, "-schema", schema)

	// The dumped schema creates an identical dataset.
	dumped := filepath.Join(dir, "dumped.yaml")
	out := mustRun(t, "", "schema", "-yaml", src)
	require.Contains(out, "tables:")
	require.NoError(os.WriteFile(dumped, []byte(out), 0o644))

	dst := filepath.Join(dir, "dst.db")
	mustRun(t, "", "create", dst, "-schema", dumped)
	require.Equal(mustRun(t, "", "schema", src), mustRun(t, "", "schema", dst))

	out = mustRun(t, "", "schema", src, "-yaml", "notes")
	require.Contains(out, "notes:")
	require.NotContains(out, "events:")
}

func TestCLIInsertFiles(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")
	mustRun(t, "", "create", db, "-table", "kv", "-col", "k:TEXT:pk", "-col", "v:REAL")

	a := filepath.Join(dir, "a.jsonl")
	b := filepath.Join(dir, "b.jsonl")
	require.NoError(os.WriteFile(a, []byte(`{"k": "x", "v": 1.5}`+"\n"), 0o644))
	require.NoError(os.WriteFile(b, []byte(`{"k": "y", "v": 2}`+"\n"+`{"k": "z"}`+"\n"), 0o644))
	out := mustRun(t, "", "insert", db, "kv", a, b)
	require.Equal("inserted 3 records into kv\n", out)

	// A duplicate key rolls back the whole batch.
	res := runCLI(t, "", "insert", db, "kv", a, b)
	require.Error(res.err)
	require.Equal("kv\t3\n", mustRun(t, "", "tables", db))

	res = runCLI(t, `{"k": "w", "missing": 1}`, "insert", db, "kv")
	require.ErrorIs(res.err, dataset.ErrUnknownColumn)

	res = runCLI(t, "", "insert", db, "kv", filepath.Join(dir, "nope.jsonl"))
	require.ErrorIs(res.err, os.ErrNotExist)
}

func TestCLIReadMixedStorageClasses(t *testing.T) {
	require := require.New(t)
	db := filepath.Join(t.TempDir(), "test.db")
	mustRun(t, "", "create", db, "-table", "t", "-col", "n:INTEGER")
	mustRun(t, `{"n": 1}`+"\n"+`{"n": 1.5}`+"\n"+`{"n": "unknown"}`, "insert", db, "t")

	out := mustRun(t, "", "read", db, "t", "-chunk", "1")
	require.Contains(out, "1.5")
	require.Contains(out, "unknown")
	require.Contains(out, "(3 rows)")

	out = mustRun(t, "", "head", db, "t", "-n", "2")
	require.Contains(out, "1.5")
	require.Contains(out, "(2 rows)")
}

func TestCLIInsertStdinOnce(t *testing.T) {
	require := require.New(t)
	db := filepath.Join(t.TempDir(), "test.db")
	mustRun(t, "", "create", db, "-table", "t", "-col", "n:INTEGER")

	res := runCLI(t, `{"n": 1}`, "insert", db, "t", "-", "-")
	require.ErrorIs(res.err, errStdinRepeated)
	require.Equal("t\t0\n", mustRun(t, "", "tables", db))
}

func TestCLIUsage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"head", "db"},
		{"create", "db"},
	} {
		res := runCLI(t, "", args...)
		require.True(t, errors.Is(res.err, errUsage), "%q: %v", args, res.err)
		require.Contains(t, res.stderr, "usage:")
	}

	res := runCLI(t, "", "head", "db", "users", "-unknown")
	require.Error(t, res.err)
}

func TestDecodeRecords(t *testing.T) {
	require := require.New(t)
	recs, err := decodeRecords(context.Background(), strings.NewReader(users))
	require.NoError(err)
	require.Len(recs, 3)
	require.Equal(dataset.Record{"name": "alice", "age": int64(30), "tags": `["a","b"]`}, recs[0])
	require.Equal(dataset.Record{"name": "bob"}, recs[1])

	_, err = decodeRecords(context.Background(), strings.NewReader(`{"a": 1}`+"\n"+`{bad`))
	require.ErrorContains(err, "record 1")
}
