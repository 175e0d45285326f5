package stream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJust(t *testing.T) {
	collected, err := Just("ada", "bea", "cyd").Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"ada", "bea", "cyd"}, collected)
}

func TestJust_NoElements(t *testing.T) {
	collected, err := Just[int]().Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, collected)
}

func TestJust_Recollect(t *testing.T) {
	s := Just(10, 20, 30)
	for i := 0; i < 3; i++ {
		collected, err := s.Collect(context.Background())
		require.NoError(t, err)
		require.Equal(t, []int{10, 20, 30}, collected)
	}
}

func TestFromSlice(t *testing.T) {
	collected, err := FromSlice([]int{7, 8, 9}).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{7, 8, 9}, collected)
}

func TestFromSlice_NilAndEmpty(t *testing.T) {
	collected, err := FromSlice[string](nil).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, collected)

	collected, err = FromSlice([]string{}).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, collected)
}

func TestFromSlice_CopiesSource(t *testing.T) {
	src := []int{1, 2, 3}
	s := FromSlice(src)

	// Mutations after stream creation must not leak into the stream
	src[0] = -1
	src[2] = -3

	collected, err := s.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, collected)
	require.Equal(t, []int{-1, 2, -3}, src)
}

func TestFromSlice_Recollect(t *testing.T) {
	s := FromSlice([]int{4, 5, 6})

	first, err := s.Collect(context.Background())
	require.NoError(t, err)
	second, err := s.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFromSlice_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromSlice([]int{1, 2, 3}).Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFromSlice_StructElements(t *testing.T) {
	type row struct {
		Id   int
		Name string
	}
	src := []row{{Id: 1, Name: "Nora"}, {Id: 2, Name: "Omar"}}

	s := FromSlice(src)
	collected, err := s.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, src, collected)

	// The slice is copied, struct values inside it included
	src[0].Name = "Overwritten"
	collected, err = s.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Nora", collected[0].Name)
}

func TestFromSlice_PointerElements(t *testing.T) {
	a, b := 1, 2
	src := []*int{&a, &b}

	collected, err := FromSlice(src).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, collected, 2)

	// Only the slice header is copied, the pointees are shared
	require.Same(t, src[0], collected[0])
	require.Same(t, src[1], collected[1])
}
