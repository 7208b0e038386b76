package sql

import (
	"context"
	"database/sql"
	"fmt"
)

// Conn is a single dedicated connection taken from a DB. It must be closed to
// return it to the pool.
type Conn struct{ *sql.Conn }

func (db *DB) Conn(ctx context.Context) (*Conn, error) {
	conn, err := db.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain connection: %w", err)
	}
	return &Conn{conn}, nil
}

func (conn *Conn) BeginTx(ctx context.Context, opts *TxOptions) (*Tx, error) {
	tx, err := conn.Conn.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx}, nil
}

// RunTx calls fn within a new transaction on conn. The transaction is
// committed if fn returns nil, otherwise it is rolled back, including when fn
// panics.
func (conn *Conn) RunTx(ctx context.Context, fn func(tx *Tx) error) (rerr error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.RollbackOnError(&rerr)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (conn *Conn) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	return _ExecContext(conn.Conn, ctx, query, args...)
}

func (conn *Conn) PrepareContext(ctx context.Context, query string) (*Stmt, error) {
	return _PrepareContext(conn.Conn, ctx, query)
}

func (conn *Conn) QueryContext(ctx context.Context, query string, args ...any) (*Rows, error) {
	return _QueryContext(conn.Conn, ctx, query, args...)
}

func (conn *Conn) QueryRowContext(ctx context.Context, query string, args ...any) *Row {
	row := conn.Conn.QueryRowContext(ctx, query, args...)
	return &Row{row, query, args}
}
