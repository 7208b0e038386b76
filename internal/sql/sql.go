// Package sql is a wrapper around database/sql that provides some convenience
// features for error handling and transactions. Most exported symbols are
// passthrough to database/sql except for DB, Conn, Stmt, Tx, and Row.
//
// Every failed Exec, Query, Prepare or Scan returns an ErrFailedQuery which
// carries the offending query and its arguments.
package sql

import "database/sql"

var (
	ErrConnDone = sql.ErrConnDone
	ErrNoRows   = sql.ErrNoRows
	ErrTxDone   = sql.ErrTxDone

	Named = sql.Named
)

type (
	ColumnType  = sql.ColumnType
	NamedArg    = sql.NamedArg
	NullBool    = sql.NullBool
	NullFloat64 = sql.NullFloat64
	NullInt64   = sql.NullInt64
	NullString  = sql.NullString
	NullTime    = sql.NullTime
	RawBytes    = sql.RawBytes
	Result      = sql.Result
	Rows        = sql.Rows
	Scanner     = sql.Scanner
	TxOptions   = sql.TxOptions
)
