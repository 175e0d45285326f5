package stream

import (
	"context"
	"testing"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
	"github.com/stretchr/testify/require"
)

func TestJoinSortedStreams(t *testing.T) {
	join := func(t *testing.T, left, right Stream[int]) []int {
		return Map(
			JoinSortedStreams(
				left,
				right,
				util.Identity[int](),
				util.Identity[int](),
				lambdas.ComparatorForOrdered[int](),
			).Peek(func(pair lambdas.Tuple2[int, int]) {
				require.Equal(t, pair.A, pair.B)
			}),
			func(pair lambdas.Tuple2[int, int]) int { return pair.A },
		).MustCollect()
	}

	tests := []struct {
		name  string
		left  Stream[int]
		right Stream[int]
		want  []int
	}{
		{name: "both empty", left: Empty[int](), right: Empty[int](), want: nil},
		{name: "left empty", left: Empty[int](), right: Just(1, 2), want: nil},
		{name: "right empty", left: Just(1, 2), right: Empty[int](), want: nil},
		{name: "disjoint", left: Just(1, 3, 5), right: Just(2, 4, 6), want: nil},
		{name: "partial overlap", left: Just(2, 4, 6), right: Just(4, 6, 8), want: []int{4, 6}},
		{name: "overlap from below", left: Just(4, 6, 8), right: Just(2, 4, 6), want: []int{4, 6}},
		{name: "single boundary match", left: Just(1, 2, 9), right: Just(9, 10), want: []int{9}},
		{name: "identical", left: Just(5, 6, 7), right: Just(5, 6, 7), want: []int{5, 6, 7}},
		{name: "left superset", left: Just(1, 2, 3, 4, 5), right: Just(2, 3, 4), want: []int{2, 3, 4}},
		{name: "right superset", left: Just(2, 3, 4), right: Just(1, 2, 3, 4, 5), want: []int{2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := join(t, tt.left, tt.right)
			if tt.want == nil {
				require.Empty(t, got)
			} else {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestJoinSortedStreams_MixedTypes(t *testing.T) {
	type badge struct {
		EmployeeId int
		Code       string
	}

	employees := Just(11, 12, 14, 15)
	badges := Just(
		badge{EmployeeId: 10, Code: "b-10"},
		badge{EmployeeId: 12, Code: "b-12"},
		badge{EmployeeId: 15, Code: "b-15"},
	)

	joined := JoinSortedStreams(
		employees,
		badges,
		util.Identity[int](),
		func(b badge) int { return b.EmployeeId },
		lambdas.ComparatorForOrdered[int](),
	).MustCollect()

	require.Equal(t, []lambdas.Tuple2[int, badge]{
		{A: 12, B: badge{EmployeeId: 12, Code: "b-12"}},
		{A: 15, B: badge{EmployeeId: 15, Code: "b-15"}},
	}, joined)
}

func TestJoinSortedStreams_DetectsUnsortedInput(t *testing.T) {
	identity := util.Identity[int]()
	byOrder := lambdas.ComparatorForOrdered[int]()

	_, err := JoinSortedStreams(Just(1, 3, 2), Just(1, 2, 3), identity, identity, byOrder).
		Collect(context.Background())
	require.ErrorContains(t, err, "left stream is not sorted")

	_, err = JoinSortedStreams(Just(1, 2, 3), Just(2, 1, 3), identity, identity, byOrder).
		Collect(context.Background())
	require.ErrorContains(t, err, "right stream is not sorted")
}
