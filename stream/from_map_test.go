package stream

import (
	"testing"

	"github.com/nomemory/lambdas"
	"github.com/stretchr/testify/require"
)

func TestFromMapKeys(t *testing.T) {
	mp := map[string]int{"a": 1, "b": 2, "c": 3}

	// Map iteration order is unspecified, sort before asserting
	require.Equal(
		t,
		[]string{"a", "b", "c"},
		SortedOrdered(FromMapKeys(mp)).MustCollect(),
	)
}

func TestFromMapValues(t *testing.T) {
	mp := map[string]int{"a": 1, "b": 2, "c": 3}
	require.Equal(
		t,
		[]int{1, 2, 3},
		SortedOrdered(FromMapValues(mp)).MustCollect(),
	)
}

func TestFromMapEntries(t *testing.T) {
	mp := map[string]int{"a": 1, "b": 2}

	entries := Sorted(
		FromMapEntries(mp),
		func(one, other lambdas.Entry[string, int]) int {
			return lambdas.ComparatorForOrdered[string]()(one.Key, other.Key)
		},
	).MustCollect()

	require.Equal(
		t,
		[]lambdas.Entry[string, int]{
			{Key: "a", Value: 1},
			{Key: "b", Value: 2},
		},
		entries,
	)
}

func TestFromMap_EmptyAndNil(t *testing.T) {
	require.Empty(t, FromMapKeys(map[string]int{}).MustCollect())
	require.Empty(t, FromMapKeys[string, int](nil).MustCollect())
	require.Empty(t, FromMapEntries[string, int](nil).MustCollect())
}
