package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrTableExists   = errors.New("table already defined")
)

// Table is a named, ordered list of columns.
type Table struct {
	Name    string
	Columns []Column
}

func NewTable(name string, cols ...Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table name required")
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q: at least one column required", name)
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("table %q: column name required", name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("table %q: duplicate column %q", name, c.Name)
		}
		seen[c.Name] = true
	}
	return &Table{Name: name, Columns: cols}, nil
}

// Column returns the named column, or ErrUnknownColumn.
func (t *Table) Column(name string) (Column, error) {
	if i := t.columnIndex(name); i >= 0 {
		return t.Columns[i], nil
	}
	return Column{}, fmt.Errorf("%w %q in table %q", ErrUnknownColumn, name, t.Name)
}

func (t *Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Project returns the named columns in the given order. All columns are
// returned when names is empty.
func (t *Table) Project(names ...string) ([]Column, error) {
	if len(names) == 0 {
		return t.Columns, nil
	}
	cols := make([]Column, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return cols, nil
}

// CreateSQL returns an idempotent CREATE TABLE statement for t.
func (t *Table) CreateSQL() string {
	defs := make([]string, 0, len(t.Columns)+1)
	var pks []string
	for _, c := range t.Columns {
		defs = append(defs, c.definition())
		if c.PrimaryKey {
			pks = append(pks, QuoteIdent(c.Name))
		}
	}
	if len(pks) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		QuoteIdent(t.Name), strings.Join(defs, ",\n  "))
}

// InsertSQL returns a single row INSERT statement with one placeholder per
// column in cols.
func (t *Table) InsertSQL(cols []string) string {
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES;", QuoteIdent(t.Name))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		QuoteIdent(t.Name),
		quoteIdents(cols),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
}

// SelectSQL returns a SELECT of cols from t. A limit <= 0 selects all rows.
func (t *Table) SelectSQL(cols []string, limit int) string {
	query := fmt.Sprintf("SELECT %s FROM %s", quoteIdents(cols), QuoteIdent(t.Name))
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	return query + ";"
}

func quoteIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = QuoteIdent(name)
	}
	return strings.Join(quoted, ", ")
}
