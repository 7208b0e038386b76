package dataset

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"aslevy.com/sqlite-dataset/internal/frame"
)

// ReadTable reads the table into a single arrow record. The caller must
// Release the record.
//
// WithColumns and WithLimit restrict what is read. WithChunkSize is ignored.
func (ds *Dataset) ReadTable(ctx context.Context, table string, opts ...ReadOption) (arrow.Record, error) {
	o := newReadOptions(opts...)
	o.chunkSize = 0

	var rec arrow.Record
	err := ds.read(ctx, table, o, func(r arrow.Record) error {
		r.Retain()
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ReadChunks reads the table and calls fn with records of at most the chunk
// size rows, see WithChunkSize. Each record is released when fn returns, so
// fn must Retain it to keep it. An error from fn stops the read and is
// returned.
func (ds *Dataset) ReadChunks(ctx context.Context, table string, fn func(arrow.Record) error, opts ...ReadOption) error {
	return ds.read(ctx, table, newReadOptions(opts...), fn)
}

// Head reads the first limit rows of the table. A limit <= 0 reads
// DefaultHeadLimit rows.
func (ds *Dataset) Head(ctx context.Context, table string, limit int) (arrow.Record, error) {
	if limit <= 0 {
		limit = DefaultHeadLimit
	}
	return ds.ReadTable(ctx, table, WithLimit(limit))
}

// read emits one record per chunkSize rows. A chunkSize of 0 emits exactly
// one record, which may be empty.
func (ds *Dataset) read(ctx context.Context, table string, o readOptions, fn func(arrow.Record) error) (rerr error) {
	conn, err := ds.connection()
	if err != nil {
		return err
	}
	tbl, err := ds.GetTable(table)
	if err != nil {
		return err
	}
	cols, err := tbl.Project(o.columns...)
	if err != nil {
		return err
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	rows, err := conn.QueryContext(ctx, tbl.SelectSQL(names, o.limit))
	if err != nil {
		return err
	}
	defer func() {
		if err := rows.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("failed to close rows: %w", err)
		}
	}()

	b := frame.NewBuilder(tbl.Name, cols)
	defer b.Release()

	emit := func() error {
		rec := b.NewRecord()
		defer rec.Release()
		return fn(rec)
	}

	var nrows int
	row := make([]any, len(cols))
	dest := scanDest(row)
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan row of %q: %w", tbl.Name, err)
		}
		if err := b.Append(row); err != nil {
			return fmt.Errorf("table %q: %w", tbl.Name, err)
		}
		nrows++
		if o.chunkSize > 0 && b.Len() >= o.chunkSize {
			if err := emit(); err != nil {
				return err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %q: %w", tbl.Name, err)
	}
	debug.Printf("read %d rows from %q", nrows, tbl.Name)

	if b.Len() > 0 || o.chunkSize <= 0 {
		return emit()
	}
	return nil
}

func scanDest(row []any) []any {
	dest := make([]any, len(row))
	for i := range row {
		dest[i] = &row[i]
	}
	return dest
}
