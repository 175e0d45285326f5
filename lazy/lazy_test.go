package lazy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLazy_Just(t *testing.T) {
	require.Equal(t, 42, Just(42).MustGet())
	require.False(t, Just(42).MustIsEmpty())
}

func TestLazy_Empty(t *testing.T) {
	e := Empty[int]()
	require.True(t, e.MustIsEmpty())
	require.Nil(t, e.MustGetOptional())

	_, err := e.Get(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "lazy value is empty")
}

func TestLazy_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Error[int](boom).Get(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = Error[int](boom).GetOptional(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestLazy_OrElseThrow(t *testing.T) {
	custom := errors.New("nothing here")
	e := Empty[string]().OrElseThrow(func() error {
		return custom
	})

	_, err := e.Get(context.Background())
	require.ErrorIs(t, err, custom)

	// Optional accessors are not affected by the custom empty error
	require.Nil(t, e.MustGetOptional())
	require.True(t, e.MustIsEmpty())

	// A present value is returned as usual
	require.Equal(t, "v", Just("v").OrElseThrow(func() error {
		return custom
	}).MustGet())
}

func TestLazy_Fetcher(t *testing.T) {
	fetchCount := 0
	l := NewLazy(func(ctx context.Context) (int, error) {
		fetchCount++
		return 7, nil
	})

	// Nothing is fetched until a terminal accessor is used
	require.Equal(t, 0, fetchCount)
	require.Equal(t, 7, l.MustGet())
	require.Equal(t, 1, fetchCount)

	// Every access re-fetches
	require.Equal(t, 7, l.MustGet())
	require.Equal(t, 2, fetchCount)
}

func TestLazy_Filter(t *testing.T) {
	require.Equal(
		t,
		10,
		Just(10).Filter(func(v int) bool { return v > 5 }).MustGet(),
	)

	require.True(
		t,
		Just(3).Filter(func(v int) bool { return v > 5 }).MustIsEmpty(),
	)

	// Filtering an empty lazy stays empty
	require.True(
		t,
		Empty[int]().Filter(func(v int) bool { return true }).MustIsEmpty(),
	)
}

func TestLazy_Map(t *testing.T) {
	require.Equal(
		t,
		"21",
		Map(Just(21), func(v int) string { return "21" }).MustGet(),
	)

	require.True(t, Map(Empty[int](), func(v int) string { return "nope" }).MustIsEmpty())
}

func TestLazy_MapWhileFiltering(t *testing.T) {
	toPositive := func(v int) *int {
		if v < 0 {
			return nil
		}
		return &v
	}

	require.Equal(t, 4, MapWhileFiltering(Just(4), toPositive).MustGet())
	require.True(t, MapWhileFiltering(Just(-4), toPositive).MustIsEmpty())
}

func TestLazy_Or(t *testing.T) {
	require.Equal(t, 1, Just(1).Or(Just(2)).MustGet())
	require.Equal(t, 2, Empty[int]().Or(Just(2)).MustGet())
	require.True(t, Empty[int]().Or(Empty[int]()).MustIsEmpty())
}

func TestLazy_OrElse(t *testing.T) {
	require.Equal(t, 5, Empty[int]().MustOrElse(5))
	require.Equal(t, 9, Just(9).MustOrElse(5))

	v, err := Empty[int]().OrElseGet(context.Background(), func() int { return 11 })
	require.NoError(t, err)
	require.Equal(t, 11, v)
}

func TestLazy_JSON(t *testing.T) {
	data, err := json.Marshal(Just(42))
	require.NoError(t, err)
	require.JSONEq(t, "42", string(data))

	data, err = json.Marshal(Empty[int]())
	require.NoError(t, err)
	require.JSONEq(t, "null", string(data))

	var roundTrip Lazy[int]
	require.NoError(t, json.Unmarshal([]byte("42"), &roundTrip))
	require.Equal(t, 42, roundTrip.MustGet())

	var nullValue Lazy[int]
	require.NoError(t, json.Unmarshal([]byte("null"), &nullValue))
	require.True(t, nullValue.MustIsEmpty())
}

func TestLazy_FlatMap(t *testing.T) {
	require.Equal(
		t,
		"4",
		FlatMap(Just(4), func(v int) Lazy[string] { return Just("4") }).MustGet(),
	)

	require.True(
		t,
		FlatMap(Empty[int](), func(v int) Lazy[string] { return Just("never") }).MustIsEmpty(),
	)

	require.True(
		t,
		FlatMap(Just(4), func(v int) Lazy[string] { return Empty[string]() }).MustIsEmpty(),
	)
}
