package schema

import (
	"context"
	"fmt"

	"aslevy.com/sqlite-dataset/internal/sql"
)

// Reflect reads the tables of the database into m. Tables already registered
// in m keep their in-memory definition. The names of the added tables are
// returned.
func Reflect(ctx context.Context, db sql.Querier, m *MetaData) (added []string, _ error) {
	names, err := selectTableNames(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if m.Has(name) {
			continue
		}
		cols, err := selectColumns(ctx, db, name)
		if err != nil {
			return added, err
		}
		m.Extend(&Table{Name: name, Columns: cols})
		added = append(added, name)
	}
	debug.Printf("reflected tables: %v", added)
	return added, nil
}

func selectTableNames(ctx context.Context, db sql.Querier) (_ []string, rerr error) {
	const query = `
SELECT name FROM sqlite_schema
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY rowid;`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, &rerr)

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func selectColumns(ctx context.Context, db sql.Querier, table string) (_ []Column, rerr error) {
	query := fmt.Sprintf(`PRAGMA table_info(%s);`, QuoteIdent(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, &rerr)

	var cols []Column
	for rows.Next() {
		var (
			cid     int
			col     Column
			typ     string
			notNull bool
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan columns of %q: %w", table, err)
		}
		col.Type = Type(typ)
		col.NotNull = notNull
		col.Default = dflt.String
		col.PrimaryKey = pk > 0
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

func closeRows(rows *sql.Rows, rerr *error) {
	if err := rows.Close(); err != nil && *rerr == nil {
		*rerr = fmt.Errorf("failed to close rows: %w", err)
	}
}
