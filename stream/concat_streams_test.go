package stream

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcatStreams(t *testing.T) {
	got := ConcatStreams(
		Just("jan", "feb"),
		Empty[string](),
		Just("mar"),
		Just("apr", "may"),
	).MustCollect()
	require.Equal(t, []string{"jan", "feb", "mar", "apr", "may"}, got)
}

func TestConcatStreams_NoSources(t *testing.T) {
	require.Empty(t, ConcatStreams[int]().MustCollect())
}

func TestConcat_AllEmpty(t *testing.T) {
	require.Empty(t, Concat(Just(Empty[int](), Empty[int]())).MustCollect())
	require.Empty(t, Concat(Empty[Stream[int]]()).MustCollect())
}

func TestConcat_ErrorPropagation(t *testing.T) {
	ctx := context.Background()
	failing := func() Stream[int] { return Error[int](fmt.Errorf("backend gone")) }

	// A failing sub stream surfaces wherever it sits in the sequence
	for _, s := range []Stream[int]{
		Concat(Just(failing())),
		Concat(Just(Just(1, 2), failing())),
		Concat(Just(failing(), Just(1, 2))),
		Concat(Just(Empty[int](), failing(), Empty[int]())),
	} {
		_, err := s.Collect(ctx)
		require.ErrorContains(t, err, "backend gone")
	}

	// So does a failing outer stream
	_, err := Concat(Error[Stream[int]](fmt.Errorf("outer gone"))).Collect(ctx)
	require.ErrorContains(t, err, "outer gone")
}
