package flagvar

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var valueTests = []struct {
	name string
	val  any
	Set  string
}{{
	name: "bool",
	val:  new(bool),
	Set:  "true",
}, {
	name: "int",
	val:  new(int),
	Set:  "42",
}, {
	name: "string",
	val:  new(string),
	Set:  "hello",
}}

func TestValue(t *testing.T) {
	for _, test := range valueTests {
		t.Run(test.name, func(t *testing.T) {
			val := Value(test.val)
			require.NoError(t, val.Set(test.Set))
			require.Equal(t, test.Set, val.String())
		})
	}
	require.Nil(t, Value(struct{}{}), "unsupported type")
}

func TestList(t *testing.T) {
	require := require.New(t)
	var ints []int
	val := List(&ints, strconv.Atoi)
	require.NoError(val.Set("1, 2,"))
	require.NoError(val.Set("3"))
	require.Equal([]int{1, 2, 3}, ints)
	require.Equal("1,2,3", val.String())
	require.Error(val.Set("four"))

	var cols []string
	require.NoError(Strings(&cols).Set("a,b"))
	require.Equal([]string{"a", "b"}, cols)
}

func TestDo(t *testing.T) {
	require := require.New(t)
	var calls int
	val := Do(func() { calls++ })
	require.NoError(val.Set("false"))
	require.Equal(0, calls)
	require.NoError(val.Set("true"))
	require.NoError(val.Set("true"))
	require.Equal(1, calls, "only runs once")

	errBoom := errors.New("boom")
	require.ErrorIs(DoErr(func() error { return errBoom }).Set("true"), errBoom)
}

func TestParse(t *testing.T) {
	require := require.New(t)
	var n int
	val := Parse(&n, strconv.Atoi)
	require.NoError(val.Set("7"))
	require.Equal(7, n)
	require.Equal("7", val.String())
}
