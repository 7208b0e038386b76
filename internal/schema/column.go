package schema

import (
	"fmt"
	"strings"
)

// Column is a single column definition of a Table.
type Column struct {
	Name       string `yaml:"name"`
	Type       Type   `yaml:"type"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
	NotNull    bool   `yaml:"not_null,omitempty"`
	// Default is a raw SQL expression, e.g. CURRENT_TIMESTAMP or 'n/a'.
	Default string `yaml:"default,omitempty"`
}

func NewColumn(name string, typ Type) Column { return Column{Name: name, Type: typ} }

func (c Column) definition() string {
	def := QuoteIdent(c.Name)
	if c.Type != "" {
		def += " " + string(c.Type)
	}
	if c.NotNull {
		def += " NOT NULL"
	}
	if c.Default != "" {
		def += " DEFAULT " + c.Default
	}
	return def
}

func (c Column) String() string { return c.definition() }

// ParseColumn parses a column from the form
//
//	name[:TYPE[:flag...]]
//
// where flag is pk or notnull. An omitted TYPE is TEXT.
func ParseColumn(s string) (Column, error) {
	parts := strings.Split(s, ":")
	col := Column{Name: strings.TrimSpace(parts[0]), Type: Text}
	if col.Name == "" {
		return Column{}, fmt.Errorf("invalid column %q: missing name", s)
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		col.Type = Type(strings.ToUpper(strings.TrimSpace(parts[1])))
	}
	for _, flag := range parts[min(len(parts), 2):] {
		switch strings.ToLower(strings.TrimSpace(flag)) {
		case "pk":
			col.PrimaryKey = true
		case "notnull":
			col.NotNull = true
		default:
			return Column{}, fmt.Errorf("invalid column %q: unknown flag %q", s, flag)
		}
	}
	return col, nil
}

// QuoteIdent returns name as a double quoted SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
