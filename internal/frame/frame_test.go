package frame

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"aslevy.com/sqlite-dataset/internal/schema"
)

var testColumns = []schema.Column{
	{Name: "id", Type: schema.Integer, NotNull: true},
	{Name: "name", Type: schema.String},
	{Name: "score", Type: schema.Float},
	{Name: "active", Type: schema.Boolean},
	{Name: "joined", Type: schema.DateTime},
	{Name: "avatar", Type: schema.Blob},
	{Name: "amount", Type: schema.Numeric},
}

func TestSchema(t *testing.T) {
	require := require.New(t)
	sc := Schema("users", testColumns)

	wantTypes := []arrow.DataType{
		arrow.PrimitiveTypes.Int64,
		arrow.BinaryTypes.String,
		arrow.PrimitiveTypes.Float64,
		arrow.FixedWidthTypes.Boolean,
		&arrow.TimestampType{Unit: arrow.Microsecond},
		arrow.BinaryTypes.Binary,
		arrow.BinaryTypes.String,
	}
	require.Len(sc.Fields(), len(wantTypes))
	for i, want := range wantTypes {
		require.True(arrow.TypeEqual(want, sc.Field(i).Type), "field %d: got %s", i, sc.Field(i).Type)
	}
	require.False(sc.Field(0).Nullable)
	require.True(sc.Field(1).Nullable)

	table, ok := sc.Metadata().GetValue("table")
	require.True(ok)
	require.Equal("users", table)
}

func TestBuilder(t *testing.T) {
	require := require.New(t)
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := NewBuilderWithAllocator(mem, "users", testColumns)
	defer b.Release()

	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(b.Append([]any{int64(1), "alice", 9.5, true, joined, []byte{0x1}, "1.50"}))
	require.NoError(b.Append([]any{"2", []byte("bob"), int64(7), int64(0), "2024-01-02 03:04:05", "x", int64(3)}))
	require.NoError(b.Append([]any{int64(3), nil, nil, nil, nil, nil, nil}))
	require.Equal(3, b.Len())

	require.Error(b.Append([]any{int64(1)}), "wrong arity")

	rec := b.NewRecord()
	defer rec.Release()
	require.Equal(0, b.Len(), "NewRecord resets")
	require.EqualValues(3, rec.NumRows())

	ids := rec.Column(0).(*array.Int64)
	require.Equal([]int64{1, 2, 3}, ids.Int64Values())

	names := rec.Column(1).(*array.String)
	require.Equal("alice", names.Value(0))
	require.Equal("bob", names.Value(1))
	require.True(names.IsNull(2))

	scores := rec.Column(2).(*array.Float64)
	require.Equal(7.0, scores.Value(1))

	active := rec.Column(3).(*array.Boolean)
	require.True(active.Value(0))
	require.False(active.Value(1))

	times := rec.Column(4).(*array.Timestamp)
	require.Equal(joined, times.Value(0).ToTime(arrow.Microsecond))
	require.Equal(joined, times.Value(1).ToTime(arrow.Microsecond))

	amounts := rec.Column(6).(*array.String)
	require.Equal("1.50", amounts.Value(0))
	require.Equal("3", amounts.Value(1))
}

func TestBuilderMixedStorageClasses(t *testing.T) {
	require := require.New(t)
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cols := []schema.Column{
		{Name: "whole", Type: schema.Integer},
		{Name: "fraction", Type: schema.Integer},
		{Name: "word", Type: schema.Integer},
		{Name: "real", Type: schema.Float},
		{Name: "flag", Type: schema.Boolean},
		{Name: "when", Type: schema.DateTime},
	}
	b := NewBuilderWithAllocator(mem, "mixed", cols)
	defer b.Release()

	require.NoError(b.Append([]any{int64(1), int64(1), int64(1), 2.5, true, "2024-01-02"}))
	require.NoError(b.Append([]any{2.0, 1.5, "unknown", "n/a", int64(2), "soon"}))
	require.NoError(b.Append([]any{nil, nil, nil, nil, nil, nil}))

	rec := b.NewRecord()
	defer rec.Release()
	require.EqualValues(3, rec.NumRows())

	whole := rec.Column(0).(*array.Int64)
	require.Equal([]int64{1, 2}, whole.Int64Values()[:2])
	require.True(whole.IsNull(2))

	fraction := rec.Column(1).(*array.Float64)
	require.Equal(1.0, fraction.Value(0))
	require.Equal(1.5, fraction.Value(1))

	word := rec.Column(2).(*array.String)
	require.Equal("1", word.Value(0))
	require.Equal("unknown", word.Value(1))
	require.True(word.IsNull(2))

	reals := rec.Column(3).(*array.String)
	require.Equal("2.5", reals.Value(0))
	require.Equal("n/a", reals.Value(1))

	flag := rec.Column(4).(*array.Int64)
	require.Equal(int64(1), flag.Value(0))
	require.Equal(int64(2), flag.Value(1))

	when := rec.Column(5).(*array.String)
	require.Equal("2024-01-02", when.Value(0))
	require.Equal("soon", when.Value(1))

	for i, c := range cols {
		f := rec.Schema().Field(i)
		require.Equal(c.Name, f.Name)
		typ, ok := f.Metadata.GetValue("sql_type")
		require.True(ok)
		require.Equal(string(c.Type), typ)
	}

	// The next record starts again from the declared types.
	require.NoError(b.Append([]any{int64(3), int64(4), int64(5), 1.0, false, "2024-01-02"}))
	next := b.NewRecord()
	defer next.Release()
	require.True(next.Schema().Equal(b.Schema()), "got %s", next.Schema())
}
