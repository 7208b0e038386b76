package sql

import (
	"context"
	"database/sql"
	"fmt"
)

// DB is a pool of connections to a single database, usually a single SQLite
// file.
type DB struct{ *sql.DB }

// Open is like sql.Open but returns the wrapped DB. No connection is made.
func Open(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}
	return &DB{db}, nil
}

func (db *DB) BeginTx(ctx context.Context, opts *TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx}, nil
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	return _ExecContext(db.DB, ctx, query, args...)
}

func (db *DB) PrepareContext(ctx context.Context, query string) (*Stmt, error) {
	return _PrepareContext(db.DB, ctx, query)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*Rows, error) {
	return _QueryContext(db.DB, ctx, query, args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *Row {
	row := db.DB.QueryRowContext(ctx, query, args...)
	return &Row{row, query, args}
}
