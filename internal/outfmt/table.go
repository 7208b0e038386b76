package outfmt

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/muesli/reflow/truncate"
	"github.com/olekukonko/tablewriter"
)

const (
	DefaultMaxWidth = 40
	tail            = "..."
	null            = "NULL"
)

// TableWriter renders arrow records as a single table: drawn with ASCII
// borders for -fmt=text, or as a markdown table otherwise. Rows are buffered
// until Flush.
type TableWriter struct {
	w      io.Writer
	tw     *tablewriter.Table
	schema *arrow.Schema
	rows   int
}

func NewTableWriter(w io.Writer, schema *arrow.Schema) *TableWriter {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	if IsRichMarkdown() {
		tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tw.SetCenterSeparator("|")
	}

	header := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		header[i] = formatCell(f.Name)
	}
	tw.SetHeader(header)

	return &TableWriter{w: w, tw: tw, schema: schema}
}

// Write adds all rows of rec. The record must have the same column names as
// the schema the TableWriter was created with. Column types may differ between
// records.
func (t *TableWriter) Write(rec arrow.Record) error {
	if !sameColumns(rec.Schema(), t.schema) {
		return fmt.Errorf("outfmt: record schema does not match table")
	}
	cols := rec.Columns()
	for i := 0; i < int(rec.NumRows()); i++ {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = formatCell(Value(col, i))
		}
		t.tw.Append(row)
		t.rows++
	}
	return nil
}

func sameColumns(a, b *arrow.Schema) bool {
	if a.NumFields() != b.NumFields() {
		return false
	}
	for i := range a.NumFields() {
		if a.Field(i).Name != b.Field(i).Name {
			return false
		}
	}
	return true
}

// Rows returns the number of rows written so far.
func (t *TableWriter) Rows() int { return t.rows }

// Flush renders the table followed by a row count in text mode.
func (t *TableWriter) Flush() error {
	t.tw.Render()
	if Format != Text {
		return nil
	}
	_, err := fmt.Fprintf(t.w, "(%d rows)\n", t.rows)
	return err
}

// WriteRecord renders rec as a table to w.
func WriteRecord(w io.Writer, rec arrow.Record) error {
	t := NewTableWriter(w, rec.Schema())
	if err := t.Write(rec); err != nil {
		return err
	}
	return t.Flush()
}

// Value returns the display form of the i-th value of arr.
func Value(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return null
	}
	switch arr := arr.(type) {
	case *array.Binary:
		return hex.EncodeToString(arr.Value(i))
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		return arr.Value(i).ToTime(unit).Format(time.RFC3339Nano)
	case *array.String:
		return arr.Value(i)
	}
	return arr.ValueStr(i)
}

var markdownEscaper = strings.NewReplacer("|", `\|`)

func formatCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if MaxWidth > 0 {
		s = truncate.StringWithTail(s, uint(MaxWidth), tail)
	}
	if IsRichMarkdown() {
		s = markdownEscaper.Replace(s)
	}
	return s
}
