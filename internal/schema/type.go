package schema

import "strings"

// Type is the declared type of a column, as it appears in CREATE TABLE.
// SQLite accepts any type name, so values reflected from a file need not be
// one of the constants below.
type Type string

const (
	Integer  Type = "INTEGER"
	Float    Type = "REAL"
	String   Type = "VARCHAR"
	Text     Type = "TEXT"
	Blob     Type = "BLOB"
	Numeric  Type = "NUMERIC"
	Boolean  Type = "BOOLEAN"
	Date     Type = "DATE"
	DateTime Type = "DATETIME"
)

// Affinity is the SQLite type affinity of a declared type.
//
// See https://www.sqlite.org/datatype3.html#determination_of_column_affinity
type Affinity int

const (
	AffinityNumeric Affinity = iota
	AffinityInteger
	AffinityText
	AffinityBlob
	AffinityReal
)

func (a Affinity) String() string {
	switch a {
	case AffinityInteger:
		return "INTEGER"
	case AffinityText:
		return "TEXT"
	case AffinityBlob:
		return "BLOB"
	case AffinityReal:
		return "REAL"
	}
	return "NUMERIC"
}

// Affinity applies the SQLite rules, in order.
func (t Type) Affinity() Affinity {
	name := strings.ToUpper(string(t))
	switch {
	case strings.Contains(name, "INT"):
		return AffinityInteger
	case strings.Contains(name, "CHAR"),
		strings.Contains(name, "CLOB"),
		strings.Contains(name, "TEXT"):
		return AffinityText
	case strings.Contains(name, "BLOB"), strings.TrimSpace(name) == "":
		return AffinityBlob
	case strings.Contains(name, "REAL"),
		strings.Contains(name, "FLOA"),
		strings.Contains(name, "DOUB"):
		return AffinityReal
	}
	return AffinityNumeric
}

// IsBool reports whether t names a boolean. SQLite stores these with numeric
// affinity.
func (t Type) IsBool() bool {
	return strings.Contains(strings.ToUpper(string(t)), "BOOL")
}

// IsTime reports whether t names a date or time. The driver parses such
// columns into time.Time.
func (t Type) IsTime() bool {
	name := strings.ToUpper(string(t))
	return strings.Contains(name, "DATE") || strings.Contains(name, "TIME")
}
