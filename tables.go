package dataset

import (
	"context"
	"fmt"
	"io"

	"aslevy.com/sqlite-dataset/internal/schema"
)

// GetTable returns the registered table, or wraps ErrUnknownTable.
func (ds *Dataset) GetTable(name string) (*Table, error) {
	return ds.meta.Table(name)
}

// TableNames returns the names of all registered tables in registration
// order.
func (ds *Dataset) TableNames() []string { return ds.meta.Names() }

// AddTables registers the tables, in order of name, and then builds them.
// If any name is already registered nothing is registered or built and the
// error wraps ErrTableExists.
func (ds *Dataset) AddTables(ctx context.Context, tables map[string][]Column) error {
	names := schema.SortedNames(tables)
	add := make([]*Table, 0, len(names))
	for _, name := range names {
		if ds.meta.Has(name) {
			return fmt.Errorf("%w: %q", ErrTableExists, name)
		}
		t, err := schema.NewTable(name, tables[name]...)
		if err != nil {
			return err
		}
		add = append(add, t)
	}
	for _, t := range add {
		if err := ds.meta.Add(t); err != nil {
			return err
		}
	}
	return ds.Build(ctx)
}

// AddTable is AddTables with a single table.
func (ds *Dataset) AddTable(ctx context.Context, name string, cols ...Column) error {
	return ds.AddTables(ctx, map[string][]Column{name: cols})
}

// GetColumn returns the named column of the named table.
func (ds *Dataset) GetColumn(table, column string) (Column, error) {
	t, err := ds.GetTable(table)
	if err != nil {
		return Column{}, err
	}
	return t.Column(column)
}

// Count returns the number of rows in the table.
func (ds *Dataset) Count(ctx context.Context, table string) (n int64, _ error) {
	conn, err := ds.connection()
	if err != nil {
		return 0, err
	}
	t, err := ds.GetTable(table)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT count(*) FROM %s;", schema.QuoteIdent(t.Name))
	if err := conn.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %q: %w", t.Name, err)
	}
	return n, nil
}

// MarshalYAML encodes the registered tables in the format read by
// LoadSchema.
func (ds *Dataset) MarshalYAML() (any, error) { return ds.meta.MarshalYAML() }

// LoadSchema reads tables from a YAML schema file of the form:
//
//	tables:
//	  my_table:
//	    - name: name
//	      type: VARCHAR
//	    - name: age
//	      type: INTEGER
func LoadSchema(r io.Reader) (map[string][]Column, error) { return schema.LoadYAML(r) }

func LoadSchemaFile(path string) (map[string][]Column, error) { return schema.LoadYAMLFile(path) }

// ParseColumn parses a column of the form name[:TYPE[:pk|notnull]...].
func ParseColumn(s string) (Column, error) { return schema.ParseColumn(s) }
