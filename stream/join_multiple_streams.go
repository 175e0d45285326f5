package stream

import (
	"context"
	"fmt"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

type innerMultiJoinProvider[S any, T any] struct {
	comparator lambdas.Comparator[S]
	joiner     func(values []S) T
	heads      []*S
	prev       []*S
}

// JoinMultipleSortedStreams inner-joins any number of streams sorted by the
// provided comparator. The joiner receives one value per source whenever all
// sources share the same key.
func JoinMultipleSortedStreams[S any, T any](
	s []Stream[S],
	comparator lambdas.Comparator[S],
	joiner func(values []S) T,
) Stream[T] {
	if len(s) == 0 {
		return Empty[T]()
	}
	return NewDownMultiStream(s, &innerMultiJoinProvider[S, T]{
		comparator: comparator,
		joiner:     joiner,
	})
}

func (j *innerMultiJoinProvider[S, T]) Open(_ context.Context, srcProviders []ProviderFunc[S]) error {
	// Fresh buffers per materialization
	j.heads = make([]*S, len(srcProviders))
	j.prev = make([]*S, len(srcProviders))
	return nil
}

func (j *innerMultiJoinProvider[S, T]) Emit(ctx context.Context, srcProviders []ProviderFunc[S]) (T, error) {
	for {
		// Refill any source whose head was consumed. Once one source runs
		// dry no further full match can form, so EOF ends the join.
		for i := range j.heads {
			if j.heads[i] != nil {
				continue
			}
			if ctx.Err() != nil {
				return util.Zero[T](), ctx.Err()
			}
			v, err := srcProviders[i](ctx)
			if err != nil {
				return util.Zero[T](), err
			}
			j.heads[i] = &v
		}

		if ctx.Err() != nil {
			return util.Zero[T](), ctx.Err()
		}

		for i := range j.heads {
			if j.prev[i] != nil && j.comparator(*j.heads[i], *j.prev[i]) < 0 {
				return util.Zero[T](), fmt.Errorf("stream %d is not sorted", i)
			}
		}

		// The largest head is the only key every source could still reach
		top := j.heads[0]
		for i := 1; i < len(j.heads); i++ {
			if j.comparator(*j.heads[i], *top) > 0 {
				top = j.heads[i]
			}
		}

		allMatch := true
		for i := range j.heads {
			if j.comparator(*j.heads[i], *top) != 0 {
				allMatch = false
				break
			}
		}

		if allMatch {
			values := make([]S, len(j.heads))
			for i := range j.heads {
				values[i] = *j.heads[i]
				j.prev[i] = j.heads[i]
				j.heads[i] = nil
			}
			return j.joiner(values), nil
		}

		// Advance every source still below the top key
		for i := range j.heads {
			if j.comparator(*j.heads[i], *top) >= 0 {
				continue
			}
			if ctx.Err() != nil {
				return util.Zero[T](), ctx.Err()
			}
			v, err := srcProviders[i](ctx)
			if err != nil {
				return util.Zero[T](), err
			}
			j.prev[i] = j.heads[i]
			j.heads[i] = &v
		}
	}
}

func (j *innerMultiJoinProvider[S, T]) Close() {
}
