package stream

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeSortedStreams(t *testing.T) {
	// Three shards of a sorted id space, one of them empty
	merged := MergeSortedStreams(
		cmp.Compare,
		Just(101, 104, 109),
		Just(102, 109, 110),
		Empty[int](),
		Just(103, 105),
	)

	require.Equal(t, []int{101, 102, 103, 104, 105, 109, 109, 110}, merged.MustCollect())
}

func TestMergeSortedStreams_Empty(t *testing.T) {
	require.Empty(t, MergeSortedStreams(cmp.Compare, Empty[int](), Empty[int]()).MustCollect())
	require.Empty(t, MergeSortedStreams[int](cmp.Compare).MustCollect())
}

func TestMergeSortedStreams_Strings(t *testing.T) {
	merged := MergeSortedStreams(
		cmp.Compare,
		Just("alpha", "delta"),
		Just("bravo", "charlie", "echo"),
	)
	require.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, merged.MustCollect())
}
