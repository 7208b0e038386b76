package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Tx is a wrapper around *sql.Tx that provides a RollbackOnError method
// which can be deferred to rollback the transaction depending on the returned
// error.
//
// The Rollback and Commit methods ignore the sql.ErrTxDone error and otherwise
// wrap the returned error if not nil.
type Tx struct{ *sql.Tx }

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	return _ExecContext(tx.Tx, ctx, query, args...)
}

func (tx *Tx) PrepareContext(ctx context.Context, query string) (*Stmt, error) {
	return _PrepareContext(tx.Tx, ctx, query)
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*Rows, error) {
	return _QueryContext(tx.Tx, ctx, query, args...)
}

func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *Row {
	row := tx.Tx.QueryRowContext(ctx, query, args...)
	return &Row{row, query, args}
}

// RollbackOnError calls tx.Rollback() if *rerr is not nil or if recovering
// from a panic. This function should be deferred and passed a pointer to the
// caller's final error.
//
//	func doSomething(tx *sql.Tx) (rerr error) {
//	    defer tx.RollbackOnError(&rerr)
//	    if err := tx.Exec(...); err != nil {
//	        return err // will rollback
//	    }
//	    return tx.Commit()
//	}
//
// A recovered panic is re-raised after the rollback.
//
// The transaction is left open if not rolled back. The user is responsible for
// calling tx.Commit().
func (tx *Tx) RollbackOnError(rerr *error) {
	p := recover()
	if p == nil && *rerr == nil {
		return
	}
	if err := tx.Rollback(); err != nil {
		*rerr = errors.Join(*rerr, err)
	}
	if p != nil {
		panic(p)
	}
}

// Rollback calls tx.Tx.Rollback() and ignores sql.ErrTxDone errors and
// otherwise wraps the returned error if not nil.
func (tx *Tx) Rollback() error {
	if err := tx.Tx.Rollback(); err != nil && !errors.Is(err, ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Commit calls tx.Tx.Commit() and wraps the returned error if not nil.
func (tx *Tx) Commit() error {
	if err := tx.Tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
