package dataset

import (
	"context"
	"errors"
	"fmt"

	"aslevy.com/sqlite-dataset/internal/sql"
)

// AddMany inserts records into the table named entity within a single
// transaction on the active connection. Either all records are inserted or
// none are.
//
// The inserted columns are the union of the keys of all records. Columns a
// record omits are inserted as NULL. A key which is not a column of the table
// fails with ErrUnknownColumn.
func (ds *Dataset) AddMany(ctx context.Context, entity string, records []Record) error {
	conn, err := ds.connection()
	if err != nil {
		return err
	}
	tbl, err := ds.GetTable(entity)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	cols, err := insertColumns(tbl, records)
	if err != nil {
		return err
	}
	debug.Printf("inserting %d records into %q with columns %v", len(records), tbl.Name, cols)
	debug.Dump(records[0])

	bar := ds.newProgressBar(len(records), "inserting into "+tbl.Name)
	err = conn.RunTx(ctx, func(tx *sql.Tx) (rerr error) {
		stmt, err := tx.PrepareContext(ctx, tbl.InsertSQL(cols))
		if err != nil {
			return err
		}
		defer func() {
			if err := stmt.Close(); err != nil {
				rerr = errors.Join(rerr, fmt.Errorf("failed to close statement: %w", err))
			}
		}()

		args := make([]any, len(cols))
		for i, rec := range records {
			for j, col := range cols {
				args[j] = rec[col]
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			bar.Add(1)
		}
		return nil
	})
	if err != nil {
		bar.Clear()
		return fmt.Errorf("failed to insert into %q: %w", tbl.Name, err)
	}
	bar.Finish()
	return nil
}

// insertColumns returns the union of the record keys in table column order.
func insertColumns(tbl *Table, records []Record) ([]string, error) {
	keys := make(map[string]struct{})
	for i, rec := range records {
		for key := range rec {
			if _, ok := keys[key]; ok {
				continue
			}
			if _, err := tbl.Column(key); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			keys[key] = struct{}{}
		}
	}
	cols := make([]string, 0, len(keys))
	for _, name := range tbl.ColumnNames() {
		if _, ok := keys[name]; ok {
			cols = append(cols, name)
		}
	}
	return cols, nil
}
