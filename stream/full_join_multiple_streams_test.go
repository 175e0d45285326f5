package stream

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/nomemory/lambdas"
	"github.com/stretchr/testify/require"
)

func TestFullJoinMultipleSortedStreams(t *testing.T) {
	// Encode each joined row as "v1,v2,..." with "-" for sources missing the key
	encode := func(values []*int) string {
		parts := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				parts[i] = "-"
			} else {
				parts[i] = strconv.Itoa(*v)
			}
		}
		return strings.Join(parts, ",")
	}

	tests := []struct {
		name    string
		sources []Stream[int]
		want    []string
	}{
		{
			name:    "single empty source",
			sources: []Stream[int]{Empty[int]()},
			want:    nil,
		},
		{
			name:    "all sources empty",
			sources: []Stream[int]{Empty[int](), Empty[int]()},
			want:    nil,
		},
		{
			name:    "single source passes through",
			sources: []Stream[int]{Just(7, 8)},
			want:    []string{"7", "8"},
		},
		{
			name:    "interleaved disjoint sources",
			sources: []Stream[int]{Just(1, 3, 5), Just(2, 4)},
			want:    []string{"1,-", "-,2", "3,-", "-,4", "5,-"},
		},
		{
			name:    "full match",
			sources: []Stream[int]{Just(1, 2, 3), Just(1, 2, 3)},
			want:    []string{"1,1", "2,2", "3,3"},
		},
		{
			name:    "partial match with trailing right key",
			sources: []Stream[int]{Just(1, 2, 3, 4), Just(2, 4, 5)},
			want:    []string{"1,-", "2,2", "3,-", "4,4", "-,5"},
		},
		{
			name:    "first source ends early",
			sources: []Stream[int]{Just(1, 2), Just(1, 2, 3, 4)},
			want:    []string{"1,1", "2,2", "-,3", "-,4"},
		},
		{
			name:    "three sources mixed",
			sources: []Stream[int]{Just(1, 2, 3, 4, 5), Just(1, 3, 5), Just(2, 3, 4)},
			want:    []string{"1,1,-", "2,-,2", "3,3,3", "4,-,4", "5,5,-"},
		},
		{
			name:    "empty middle source",
			sources: []Stream[int]{Just(1, 2, 3), Empty[int](), Just(2, 3, 4)},
			want:    []string{"1,-,-", "2,-,2", "3,-,3", "-,-,4"},
		},
		{
			name:    "staggered starts and ends",
			sources: []Stream[int]{Just(1, 2, 3, 4, 5), Just(3, 4, 5), Just(4, 5, 6)},
			want:    []string{"1,-,-", "2,-,-", "3,3,-", "4,4,4", "5,5,5", "-,-,6"},
		},
		{
			name:    "duplicate keys pair up in order",
			sources: []Stream[int]{Just(1, 1, 2), Just(1, 1, 2)},
			want:    []string{"1,1", "1,1", "2,2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullJoinMultipleSortedStreams(
				tt.sources,
				lambdas.ComparatorForOrdered[int](),
				encode,
			).MustCollect()

			if tt.want == nil {
				require.Empty(t, got)
			} else {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFullJoinMultipleSortedStreams_DetectsUnsortedSource(t *testing.T) {
	byOrder := lambdas.ComparatorForOrdered[int]()
	presentCount := func(values []*int) int {
		n := 0
		for _, v := range values {
			if v != nil {
				n++
			}
		}
		return n
	}

	_, err := FullJoinMultipleSortedStreams([]Stream[int]{Just(1, 3, 2)}, byOrder, presentCount).
		Collect(context.Background())
	require.ErrorContains(t, err, "not sorted")

	_, err = FullJoinMultipleSortedStreams(
		[]Stream[int]{Just(1, 2, 3, 4, 5), Just(1, 2, 4, 3, 5)},
		byOrder,
		presentCount,
	).Collect(context.Background())
	require.ErrorContains(t, err, "not sorted")
}

func TestFullJoinMultipleSortedStreams_PresenceCount(t *testing.T) {
	// Count in how many shards each id appears
	got := FullJoinMultipleSortedStreams(
		[]Stream[int]{
			Just(1, 2, 3, 4, 5),
			Just(2, 3, 4),
			Just(3, 4, 5),
		},
		lambdas.ComparatorForOrdered[int](),
		func(values []*int) int {
			n := 0
			for _, v := range values {
				if v != nil {
					n++
				}
			}
			return n
		},
	).MustCollect()

	require.Equal(t, []int{1, 2, 3, 3, 2}, got)
}

func TestFullJoinMultipleSortedStreams_Reconciliation(t *testing.T) {
	type discrepancy struct {
		Id       int
		InLedger bool
		InBackup bool
	}

	ledgerIds := Just(10, 11, 13, 14)
	backupIds := Just(10, 12, 13)

	// Full join keeps ids missing on either side, exactly what a
	// reconciliation report needs
	report := FullJoinMultipleSortedStreams(
		[]Stream[int]{ledgerIds, backupIds},
		lambdas.ComparatorForOrdered[int](),
		func(values []*int) discrepancy {
			d := discrepancy{InLedger: values[0] != nil, InBackup: values[1] != nil}
			if values[0] != nil {
				d.Id = *values[0]
			} else {
				d.Id = *values[1]
			}
			return d
		},
	).Filter(func(d discrepancy) bool {
		return !d.InLedger || !d.InBackup
	}).MustCollect()

	require.Equal(t, []discrepancy{
		{Id: 11, InLedger: true, InBackup: false},
		{Id: 12, InLedger: false, InBackup: true},
		{Id: 14, InLedger: true, InBackup: false},
	}, report)
}
