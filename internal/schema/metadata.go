// Package schema is the metadata registry of a dataset: the catalog of known
// tables and their columns, which can be created in, and reflected from, a
// SQLite database file.
package schema

import (
	"context"
	"fmt"

	"aslevy.com/sqlite-dataset/internal/dlog"
	"aslevy.com/sqlite-dataset/internal/sql"
)

var debug = dlog.Child("schema")

// MetaData is an ordered registry of tables. The zero value is ready to use.
//
// MetaData is not safe for concurrent use.
type MetaData struct {
	tables []*Table
	byName map[string]*Table
}

func NewMetaData() *MetaData { return &MetaData{} }

// Add registers t. It fails with ErrTableExists if a table with the same name
// is already registered.
func (m *MetaData) Add(t *Table) error {
	if _, ok := m.byName[t.Name]; ok {
		return fmt.Errorf("%w: %q", ErrTableExists, t.Name)
	}
	if m.byName == nil {
		m.byName = make(map[string]*Table)
	}
	m.byName[t.Name] = t
	m.tables = append(m.tables, t)
	return nil
}

// Extend registers t unless a table of the same name is already registered,
// in which case the existing definition is kept. It reports whether t was
// added.
func (m *MetaData) Extend(t *Table) bool {
	if m.Has(t.Name) {
		return false
	}
	_ = m.Add(t)
	return true
}

func (m *MetaData) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Table returns the named table, or ErrUnknownTable.
func (m *MetaData) Table(name string) (*Table, error) {
	t, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Tables returns all tables in registration order.
func (m *MetaData) Tables() []*Table { return m.tables }

func (m *MetaData) Names() []string {
	names := make([]string, len(m.tables))
	for i, t := range m.tables {
		names[i] = t.Name
	}
	return names
}

func (m *MetaData) Len() int { return len(m.tables) }

// CreateAll creates every registered table that does not yet exist.
func CreateAll(ctx context.Context, db sql.Querier, m *MetaData) error {
	for _, t := range m.tables {
		debug.Printf("creating table %q", t.Name)
		if _, err := db.ExecContext(ctx, t.CreateSQL()); err != nil {
			return fmt.Errorf("failed to create table %q: %w", t.Name, err)
		}
	}
	return nil
}
