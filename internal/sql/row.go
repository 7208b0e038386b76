package sql

import (
	"database/sql"
	"errors"
)

var (
	_ RowScanner = (*Row)(nil)
	_ RowScanner = (*Rows)(nil)
)

type RowScanner interface {
	Scan(dest ...any) error
	Err() error
}

type Row struct {
	*sql.Row
	query string
	args  []any
}

func (row *Row) Err() error {
	if err := row.Row.Err(); err != nil {
		return newErrFailedQuery(err, "query", row.query, row.args...)
	}
	return nil
}

// Scan wraps all errors except ErrNoRows, which is returned as is.
func (row *Row) Scan(dest ...any) error {
	err := row.Row.Scan(dest...)
	if err == nil || errors.Is(err, ErrNoRows) {
		return err
	}
	return newErrFailedQuery(err, "scan", row.query, row.args...)
}
