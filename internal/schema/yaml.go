package schema

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a set of table definitions:
//
//	tables:
//	  users:
//	    - {name: id, type: INTEGER, primary_key: true}
//	    - {name: name, type: VARCHAR, not_null: true}
type File struct {
	Tables map[string][]Column `yaml:"tables"`
}

// LoadYAML decodes a File from r and returns its tables as a mapping of name
// to columns. Columns without a type are TEXT.
func LoadYAML(r io.Reader) (map[string][]Column, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	if len(f.Tables) == 0 {
		return nil, fmt.Errorf("schema defines no tables")
	}
	for name, cols := range f.Tables {
		for i := range cols {
			if cols[i].Type == "" {
				cols[i].Type = Text
			}
		}
		f.Tables[name] = cols
	}
	return f.Tables, nil
}

func LoadYAMLFile(path string) (map[string][]Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// MarshalYAML encodes the tables of m in the form read by LoadYAML.
func (m *MetaData) MarshalYAML() (any, error) {
	f := File{Tables: make(map[string][]Column, m.Len())}
	for _, t := range m.tables {
		f.Tables[t.Name] = t.Columns
	}
	return f, nil
}

// SortedNames returns the keys of tables in sorted order.
func SortedNames(tables map[string][]Column) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
