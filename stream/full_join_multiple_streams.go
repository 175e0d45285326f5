package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

type fullMultiJoinProvider[S any, T any] struct {
	comparator lambdas.Comparator[S]
	joiner     func(values []*S) T
	heads      []*S
	prev       []*S
}

// FullJoinMultipleSortedStreams full-joins any number of streams sorted by the
// provided comparator. For every distinct key across all sources the joiner
// receives one value per source, nil where a source has no value for the key.
func FullJoinMultipleSortedStreams[S any, T any](
	s []Stream[S],
	comparator lambdas.Comparator[S],
	joiner func(values []*S) T,
) Stream[T] {
	if len(s) == 0 {
		return Empty[T]()
	}
	return NewDownMultiStream(s, &fullMultiJoinProvider[S, T]{
		comparator: comparator,
		joiner:     joiner,
	})
}

func (j *fullMultiJoinProvider[S, T]) Open(_ context.Context, srcProviders []ProviderFunc[S]) error {
	// Fresh buffers per materialization
	j.heads = make([]*S, len(srcProviders))
	j.prev = make([]*S, len(srcProviders))
	return nil
}

func (j *fullMultiJoinProvider[S, T]) Emit(ctx context.Context, srcProviders []ProviderFunc[S]) (T, error) {
	// Refill sources whose head was consumed. EOF leaves the head nil and
	// the source takes no further part in the join.
	for i := range j.heads {
		if j.heads[i] != nil {
			continue
		}
		if ctx.Err() != nil {
			return util.Zero[T](), ctx.Err()
		}
		v, err := srcProviders[i](ctx)
		if err != nil && err != io.EOF {
			return util.Zero[T](), err
		}
		if err == nil {
			j.heads[i] = &v
		}
	}

	allDone := true
	for i := range j.heads {
		if j.heads[i] != nil {
			allDone = false
			break
		}
	}
	if allDone {
		return util.Zero[T](), io.EOF
	}

	if ctx.Err() != nil {
		return util.Zero[T](), ctx.Err()
	}

	for i := range j.heads {
		if j.heads[i] != nil && j.prev[i] != nil && j.comparator(*j.heads[i], *j.prev[i]) < 0 {
			return util.Zero[T](), fmt.Errorf("stream %d is not sorted", i)
		}
	}

	// The smallest head is the next key to emit
	var low *S
	for i := range j.heads {
		if j.heads[i] == nil {
			continue
		}
		if low == nil || j.comparator(*j.heads[i], *low) < 0 {
			low = j.heads[i]
		}
	}

	// One slot per source, nil where the source sits above the key
	values := make([]*S, len(j.heads))
	for i := range j.heads {
		if j.heads[i] != nil && j.comparator(*j.heads[i], *low) == 0 {
			values[i] = j.heads[i]
			j.prev[i] = j.heads[i]
			j.heads[i] = nil
		}
	}
	return j.joiner(values), nil
}

func (j *fullMultiJoinProvider[S, T]) Close() {
}
