package stream

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func ExampleCollectToMap() {
	squaresOf, err := CollectToMap(
		context.Background(),
		Just(2, 3, 4),
		func(v int) (int, int) {
			return v, v * v
		},
	)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(squaresOf)
	// Output: map[2:4 3:9 4:16]
}

func TestCollectToMap_DuplicateKey(t *testing.T) {
	_, err := CollectToMap(
		context.Background(),
		Just("a", "bb", "cc"),
		func(v string) (int, string) {
			return len(v), v
		},
	)
	require.ErrorContains(t, err, "duplicate key")
}

func TestCollectToSet(t *testing.T) {
	set, err := CollectToSet(context.Background(), Just(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, map[int]bool{1: true, 2: true, 3: true}, set)

	// Duplicates are an error, not silently dropped
	_, err = CollectToSet(context.Background(), Just(1, 2, 2))
	require.ErrorContains(t, err, "duplicate key")
}

func TestCollectCountGroupedBy(t *testing.T) {
	counts, err := CollectCountGroupedBy(
		context.Background(),
		Just("ant", "bee", "cat", "cow", "dog"),
		func(v string) byte {
			return v[0]
		},
	)
	require.NoError(t, err)
	require.Equal(t, map[byte]uint64{'a': 1, 'b': 1, 'c': 2, 'd': 1}, counts)
}

func TestCollectGroupedBy(t *testing.T) {
	groups, err := CollectGroupedBy(
		context.Background(),
		Just("ant", "bee", "cat", "cow", "dog"),
		func(v string) byte {
			return v[0]
		},
	)
	require.NoError(t, err)
	require.Equal(
		t,
		map[byte][]string{
			'a': {"ant"},
			'b': {"bee"},
			'c': {"cat", "cow"},
			'd': {"dog"},
		},
		groups,
	)
}

func TestCollectToMapOverrideDuplicates(t *testing.T) {
	result, err := CollectToMapOverrideDuplicates(
		context.Background(),
		Just("a", "bb", "cc"),
		func(v string) int {
			return len(v)
		},
	)
	require.NoError(t, err)

	// Last value wins for a duplicate key
	require.Equal(t, map[int]string{1: "a", 2: "cc"}, result)
}
