// Package frame converts rows read from a SQLite table into columnar Apache
// Arrow records, the dataframe representation of a dataset.
package frame

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"aslevy.com/sqlite-dataset/internal/schema"
)

// DataType returns the arrow type used for columns of the given declared
// type.
func DataType(typ schema.Type) arrow.DataType {
	switch {
	case typ.IsBool():
		return arrow.FixedWidthTypes.Boolean
	case typ.IsTime():
		return &arrow.TimestampType{Unit: arrow.Microsecond}
	}
	switch typ.Affinity() {
	case schema.AffinityInteger:
		return arrow.PrimitiveTypes.Int64
	case schema.AffinityReal:
		return arrow.PrimitiveTypes.Float64
	case schema.AffinityBlob:
		return arrow.BinaryTypes.Binary
	default:
		return arrow.BinaryTypes.String
	}
}

// Schema returns the arrow schema for cols. The table name is kept in the
// schema metadata.
func Schema(table string, cols []schema.Column) *arrow.Schema {
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		fields[i] = arrow.Field{
			Name:     c.Name,
			Type:     DataType(c.Type),
			Nullable: !c.NotNull,
			Metadata: arrow.NewMetadata([]string{"sql_type"}, []string{string(c.Type)}),
		}
	}
	md := arrow.NewMetadata([]string{"table"}, []string{table})
	return arrow.NewSchema(fields, &md)
}

// Builder accumulates rows into an arrow record.
//
// SQLite columns may hold a value of any storage class regardless of their
// declared type, so each record picks the arrow type of a column from the
// values it holds. The declared type is used when every value converts to it
// without loss. An INTEGER or BOOLEAN column holding a fractional number
// becomes Float64. Any other mismatch falls back to String. The declared type
// is always kept in the "sql_type" field metadata.
//
// Builder is not safe for concurrent use.
type Builder struct {
	mem    memory.Allocator
	schema *arrow.Schema
	rows   [][]any
}

func NewBuilder(table string, cols []schema.Column) *Builder {
	return NewBuilderWithAllocator(memory.DefaultAllocator, table, cols)
}

func NewBuilderWithAllocator(mem memory.Allocator, table string, cols []schema.Column) *Builder {
	return &Builder{mem: mem, schema: Schema(table, cols)}
}

// Schema returns the schema of the declared column types. The schema of a
// record returned by NewRecord may differ in its field types.
func (b *Builder) Schema() *arrow.Schema { return b.schema }

// Len returns the number of rows appended since the last NewRecord.
func (b *Builder) Len() int { return len(b.rows) }

// Append adds a row of values as scanned by database/sql into []any. The row
// must have one value per column and is copied.
func (b *Builder) Append(row []any) error {
	if len(row) != len(b.schema.Fields()) {
		return fmt.Errorf("frame: got %d values, want %d", len(row), len(b.schema.Fields()))
	}
	r := make([]any, len(row))
	for i, v := range row {
		if p, ok := v.([]byte); ok {
			v = append([]byte(nil), p...)
		}
		r[i] = v
	}
	b.rows = append(b.rows, r)
	return nil
}

// NewRecord returns the rows appended so far as a record and resets the
// builder. The caller must Release the record.
func (b *Builder) NewRecord() arrow.Record {
	declared := b.schema.Fields()
	fields := make([]arrow.Field, len(declared))
	cols := make([]arrow.Array, len(declared))
	defer func() {
		for _, col := range cols {
			col.Release()
		}
	}()
	for i, f := range declared {
		f.Type = b.fieldType(i, f.Type)
		col, err := b.buildColumn(i, f.Type)
		if err != nil {
			f.Type = arrow.BinaryTypes.String
			col, _ = b.buildColumn(i, f.Type)
		}
		fields[i], cols[i] = f, col
	}
	md := b.schema.Metadata()
	sc := arrow.NewSchema(fields, &md)
	rec := array.NewRecord(sc, cols, int64(len(b.rows)))
	b.rows = nil
	return rec
}

// Release drops any buffered rows.
func (b *Builder) Release() { b.rows = nil }

// fieldType returns the type for column i given the declared type dt.
func (b *Builder) fieldType(i int, dt arrow.DataType) arrow.DataType {
	for _, row := range b.rows {
		dt = widen(dt, row[i])
	}
	return dt
}

func (b *Builder) buildColumn(i int, dt arrow.DataType) (arrow.Array, error) {
	fb := array.NewBuilder(b.mem, dt)
	defer fb.Release()
	for _, row := range b.rows {
		if err := appendValue(fb, row[i]); err != nil {
			return nil, err
		}
	}
	return fb.NewArray(), nil
}

// widen returns the narrowest type at least as wide as dt which holds v
// without loss. Types only widen towards String.
func widen(dt arrow.DataType, v any) arrow.DataType {
	if v == nil {
		return dt
	}
	switch dt.ID() {
	case arrow.BOOL:
		switch v := v.(type) {
		case bool:
			return dt
		case int64:
			if v == 0 || v == 1 {
				return dt
			}
			return arrow.PrimitiveTypes.Int64
		case float64:
			if v == 0 || v == 1 {
				return dt
			}
			return widen(arrow.PrimitiveTypes.Int64, v)
		case string, []byte:
			if _, err := toBool(v); err == nil {
				return dt
			}
		}
	case arrow.INT64:
		switch v := v.(type) {
		case int64, bool:
			return dt
		case float64:
			if isWhole(v) {
				return dt
			}
			return arrow.PrimitiveTypes.Float64
		case string, []byte:
			if _, err := toInt64(v); err == nil {
				return dt
			}
			if _, err := toFloat64(v); err == nil {
				return arrow.PrimitiveTypes.Float64
			}
		}
	case arrow.FLOAT64:
		switch v.(type) {
		case float64, int64, bool:
			return dt
		case string, []byte:
			if _, err := toFloat64(v); err == nil {
				return dt
			}
		}
	case arrow.TIMESTAMP:
		switch v.(type) {
		case time.Time, int64, float64:
			return dt
		case string, []byte:
			if _, err := toTime(v); err == nil {
				return dt
			}
		}
	case arrow.BINARY, arrow.STRING:
		return dt
	}
	return arrow.BinaryTypes.String
}

func isWhole(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

// The conversions below fail rather than lose information.

func toInt64(v any) (int64, error) {
	switch v := v.(type) {
	case int64:
		return v, nil
	case float64:
		if !isWhole(v) {
			return 0, fmt.Errorf("cannot convert %v to int64 without loss", v)
		}
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	case time.Time:
		return v.Unix(), nil
	}
	return 0, fmt.Errorf("cannot convert %T to int64", v)
}

func toFloat64(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, fmt.Errorf("cannot convert %T to float64", v)
}

func toBool(v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("cannot convert %v to bool", v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

func toTime(v any) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case float64:
		return time.UnixMicro(int64(v * 1e6)).UTC(), nil
	case []byte:
		return parseTime(string(v))
	case string:
		return parseTime(v)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}

func toBytes(v any) []byte {
	switch v := v.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	}
	return []byte(toString(v))
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}
