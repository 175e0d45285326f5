package stream

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMapConcurrent(t *testing.T) {
	got, err := Map(Range(0, 40), func(v int) int {
		return v * 10
	}, WithConcurrentMapOption(4)).Collect(context.Background())

	require.NoError(t, err)

	// Mapped values surface in completion order, only the element set is stable
	want := make([]int, 0, 40)
	for v := 0; v < 40; v++ {
		want = append(want, v*10)
	}
	require.ElementsMatch(t, want, got)
	require.NoError(t, goleak.Find())
}

func TestMapConcurrent_RunsMappersInParallel(t *testing.T) {
	var inFlight, peak atomic.Int32

	_, err := Map(Range(0, 8), func(v int) int {
		curr := inFlight.Add(1)
		for {
			seen := peak.Load()
			if curr <= seen || peak.CompareAndSwap(seen, curr) {
				break
			}
		}
		time.Sleep(40 * time.Millisecond)
		inFlight.Add(-1)
		return v
	}, WithConcurrentMapOption(4)).Collect(context.Background())

	require.NoError(t, err)
	require.GreaterOrEqual(t, peak.Load(), int32(3))
	require.NoError(t, goleak.Find())
}

func TestMapConcurrent_RejectsNonPositiveConcurrency(t *testing.T) {
	_, err := Map(Just(1), func(v int) int { return v }, WithConcurrentMapOption(0)).
		Collect(context.Background())
	require.ErrorContains(t, err, "concurrency must be > 0")
}

func TestMapConcurrent_MapperError(t *testing.T) {
	_, err := MapWithErr(Range(0, 10), func(v int) (int, error) {
		if v == 6 {
			return 0, errBoom
		}
		return v, nil
	}, WithConcurrentMapOption(3)).Collect(context.Background())

	require.ErrorIs(t, err, errBoom)
	require.NoError(t, goleak.Find())
}

func TestMapConcurrent_MapperPanicsAsError(t *testing.T) {
	_, err := Map(Range(0, 10), func(v int) int {
		if v == 6 {
			panic("mapper blew up")
		}
		return v
	}, WithConcurrentMapOption(3)).Collect(context.Background())

	require.ErrorContains(t, err, "recovered")
	require.NoError(t, goleak.Find())
}

func TestMapConcurrent_SourceError(t *testing.T) {
	src := ConcatStreams(Just(1, 2, 3), Error[int](errBoom))

	_, err := Map(src, func(v int) int { return v }, WithConcurrentMapOption(2)).
		Collect(context.Background())

	require.ErrorIs(t, err, errBoom)
	require.NoError(t, goleak.Find())
}

func TestMapConcurrent_DownstreamStopsEarly(t *testing.T) {
	// Limit abandons the pool mid-flight, closing must still reap the
	// producer and workers before the source closes
	got, err := Map(Range(0, 1000), func(v int) int {
		return v + 1
	}, WithConcurrentMapOption(4)).
		Limit(3).
		Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	require.NoError(t, goleak.Find())
}

func TestMapConcurrent_MultipleCollections(t *testing.T) {
	s := Map(Range(0, 20), func(v int) int {
		return v * 2
	}, WithConcurrentMapOption(2))

	first, err := s.Collect(context.Background())
	require.NoError(t, err)
	second, err := s.Collect(context.Background())
	require.NoError(t, err)

	require.ElementsMatch(t, first, second)
	require.Len(t, first, 20)
	require.NoError(t, goleak.Find())
}
