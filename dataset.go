// Package dataset is a small facade over a single SQLite database file. A
// Dataset keeps a registry of table definitions, creates them in the file,
// holds at most one connection, inserts batches of records and reads tables
// back as Apache Arrow records.
//
// All SQL is executed by database/sql with the modernc.org/sqlite driver.
//
//	ds, err := dataset.Create(ctx, "test.db", map[string][]dataset.Column{
//	    "my_table": {
//	        dataset.NewColumn("name", dataset.String),
//	        dataset.NewColumn("age", dataset.Integer),
//	    },
//	})
//	...
//	err = ds.Use(ctx, func(ds *dataset.Dataset) error {
//	    return ds.AddMany(ctx, "my_table", []dataset.Record{
//	        {"name": "user1", "age": 25},
//	    })
//	})
//
// A Dataset is not safe for concurrent use.
package dataset

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"aslevy.com/sqlite-dataset/internal/dlog"
	"aslevy.com/sqlite-dataset/internal/schema"
	"aslevy.com/sqlite-dataset/internal/sql"
	"aslevy.com/sqlite-dataset/internal/sqlite"
)

var debug = dlog.Child("dataset")

// ErrNotConnected is returned by all operations requiring a connection when
// the Dataset is not connected.
var ErrNotConnected = errors.New("dataset not connected")

var (
	ErrUnknownTable  = schema.ErrUnknownTable
	ErrUnknownColumn = schema.ErrUnknownColumn
	ErrTableExists   = schema.ErrTableExists
)

type (
	Column = schema.Column
	Table  = schema.Table
	Type   = schema.Type
)

const (
	Integer  = schema.Integer
	Float    = schema.Float
	String   = schema.String
	Text     = schema.Text
	Blob     = schema.Blob
	Numeric  = schema.Numeric
	Boolean  = schema.Boolean
	Date     = schema.Date
	DateTime = schema.DateTime
)

func NewColumn(name string, typ Type) Column { return schema.NewColumn(name, typ) }

// Record maps column names to values for AddMany.
type Record map[string]any

// Schema is implemented by concrete dataset types which declare their tables
// up front. See CreateFrom.
type Schema interface {
	Tables() map[string][]Column
}

// Dataset is a handle to a single SQLite database file.
type Dataset struct {
	path   string
	engine *sql.DB
	meta   *schema.MetaData
	conn   *sql.Conn

	options
}

// New returns an unconnected Dataset for the database file at path. The file
// is neither opened nor created.
func New(path string, opts ...Option) (*Dataset, error) {
	o := newOptions(opts...)
	engine, err := sqlite.Open(path, o.pragmas)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		path:    path,
		engine:  engine,
		meta:    schema.NewMetaData(),
		options: o,
	}, nil
}

// Create builds the database file at path with the given tables and returns
// the unconnected Dataset. Tables which already exist in the file are left
// as is.
func Create(ctx context.Context, path string, tables map[string][]Column, opts ...Option) (_ *Dataset, rerr error) {
	ds, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	// Release the engine if we fail to build the dataset for any reason.
	defer func() {
		if rerr == nil {
			return
		}
		if err := ds.Dispose(); err != nil {
			rerr = errors.Join(rerr, err)
		}
	}()

	if err := ds.Build(ctx); err != nil {
		return nil, err
	}
	if err := ds.AddTables(ctx, tables); err != nil {
		return nil, err
	}
	return ds, nil
}

// CreateFrom is Create with the tables declared by s.
func CreateFrom(ctx context.Context, path string, s Schema, opts ...Option) (*Dataset, error) {
	return Create(ctx, path, s.Tables(), opts...)
}

// With calls fn with a connected Dataset for path and releases all of its
// resources when fn returns.
func With(ctx context.Context, path string, fn func(*Dataset) error, opts ...Option) (rerr error) {
	ds, err := New(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := ds.Dispose(); err != nil {
			rerr = errors.Join(rerr, err)
		}
	}()
	return ds.Use(ctx, fn)
}

func (ds *Dataset) Path() string { return ds.path }

// Build creates every registered table which does not yet exist in the
// database file, creating the file itself if needed.
func (ds *Dataset) Build(ctx context.Context) error {
	db := ds.querier()
	if ds.conn == nil {
		if err := ds.engine.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to open dataset %s: %w", ds.path, err)
		}
	}
	if ds.journalMode != "" {
		if err := sqlite.SetJournalMode(ctx, db, ds.journalMode); err != nil {
			return err
		}
	}
	return schema.CreateAll(ctx, db, ds.meta)
}

// Connect reflects the tables of the database file into the registry and
// establishes the connection. Tables already registered keep their
// definition.
//
// A warning is logged if the file does not exist, in which case an empty
// database file is created.
//
// Calling Connect on a connected Dataset keeps the existing connection.
func (ds *Dataset) Connect(ctx context.Context) (rerr error) {
	if !ds.exists() {
		ds.warn.Printf("dataset %s does not exist. To create a dataset, use Create(path).", ds.path)
	}

	conn := ds.conn
	if conn == nil {
		var err error
		if conn, err = ds.engine.Conn(ctx); err != nil {
			return fmt.Errorf("failed to connect to dataset %s: %w", ds.path, err)
		}
		defer func() {
			if rerr == nil {
				return
			}
			if err := conn.Close(); err != nil {
				rerr = errors.Join(rerr, fmt.Errorf("failed to close connection: %w", err))
			}
		}()
	}

	added, err := schema.Reflect(ctx, conn, ds.meta)
	if err != nil {
		return fmt.Errorf("failed to reflect dataset %s: %w", ds.path, err)
	}
	if len(added) > 0 {
		debug.Printf("%s: reflected %d tables", ds.path, len(added))
	}

	if ds.conn != nil {
		debug.Printf("%s: already connected", ds.path)
		return nil
	}
	ds.conn = conn
	return nil
}

func (ds *Dataset) exists() bool {
	if ds.path == "" || strings.HasPrefix(ds.path, ":memory:") || strings.HasPrefix(ds.path, "file:") {
		return true
	}
	_, err := os.Stat(ds.path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Conn returns the active connection, or ErrNotConnected.
func (ds *Dataset) Conn() (*stdsql.Conn, error) {
	conn, err := ds.connection()
	if err != nil {
		return nil, err
	}
	return conn.Conn, nil
}

func (ds *Dataset) Connected() bool { return ds.conn != nil }

func (ds *Dataset) connection() (*sql.Conn, error) {
	if ds.conn == nil {
		return nil, ErrNotConnected
	}
	return ds.conn, nil
}

// querier returns the active connection if any, else the engine.
func (ds *Dataset) querier() sql.Querier {
	if ds.conn != nil {
		return ds.conn
	}
	return ds.engine
}

// Close releases the active connection, if any. The Dataset may be connected
// again afterwards.
func (ds *Dataset) Close() error {
	if ds.conn == nil {
		return nil
	}
	conn := ds.conn
	ds.conn = nil
	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection to dataset %s: %w", ds.path, err)
	}
	return nil
}

// Dispose closes the connection and the engine. The Dataset cannot be used
// afterwards.
func (ds *Dataset) Dispose() error {
	err := ds.Close()
	if cerr := ds.engine.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close dataset %s: %w", ds.path, cerr))
	}
	return err
}

// Use connects, calls fn, and closes the connection however fn exits,
// including by panic. An error from closing is joined with the error from fn.
func (ds *Dataset) Use(ctx context.Context, fn func(*Dataset) error) (rerr error) {
	if err := ds.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := ds.Close(); err != nil {
			rerr = errors.Join(rerr, err)
		}
	}()
	return fn(ds)
}
