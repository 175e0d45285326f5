package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

type leftMultiJoinProvider[S any, T any] struct {
	comparator lambdas.Comparator[S]
	joiner     func(left S, others []*S) T
	heads      []*S
	prevLeft   *S
}

// LeftJoinMultipleSortedStreams left-joins any number of streams sorted by the
// provided comparator. The first stream drives the join, the joiner receives a
// nil entry for every other stream without a matching key.
func LeftJoinMultipleSortedStreams[S any, T any](
	s []Stream[S],
	comparator lambdas.Comparator[S],
	joiner func(left S, others []*S) T,
) Stream[T] {
	if len(s) == 0 {
		return Empty[T]()
	}
	return NewDownMultiStream(s, &leftMultiJoinProvider[S, T]{
		comparator: comparator,
		joiner:     joiner,
	})
}

func (j *leftMultiJoinProvider[S, T]) Open(_ context.Context, _ []ProviderFunc[S]) error {
	// Reset per materialization, heads are lazily primed on the first emit
	j.heads = nil
	j.prevLeft = nil
	return nil
}

func (j *leftMultiJoinProvider[S, T]) Emit(ctx context.Context, srcProviders []ProviderFunc[S]) (T, error) {
	// Prime one head per source on the first emit. A source that is already
	// empty simply stays nil.
	if j.heads == nil {
		j.heads = make([]*S, len(srcProviders))
		for i, provider := range srcProviders {
			if ctx.Err() != nil {
				return util.Zero[T](), ctx.Err()
			}
			v, err := provider(ctx)
			if err != nil && err != io.EOF {
				return util.Zero[T](), err
			}
			if err == nil {
				j.heads[i] = &v
			}
		}
	}

	// The left source drives the join, so its EOF ends the stream
	if j.heads[0] == nil {
		if ctx.Err() != nil {
			return util.Zero[T](), ctx.Err()
		}
		leftValue, err := srcProviders[0](ctx)
		if err != nil {
			return util.Zero[T](), err
		}
		j.heads[0] = &leftValue
	}

	leftValue := *j.heads[0]

	if j.prevLeft != nil && j.comparator(leftValue, *j.prevLeft) < 0 {
		return util.Zero[T](), fmt.Errorf("left stream is not sorted")
	}
	j.prevLeft = &leftValue

	// Catch every other source up to the left key, nil marks no match.
	// Matched heads are kept so duplicate left keys can match them again.
	others := make([]*S, len(srcProviders)-1)
	for i := 1; i < len(srcProviders); i++ {
		if j.heads[i] == nil {
			continue
		}
		for j.heads[i] != nil && j.comparator(*j.heads[i], leftValue) < 0 {
			if ctx.Err() != nil {
				return util.Zero[T](), ctx.Err()
			}
			v, err := srcProviders[i](ctx)
			if err == io.EOF {
				j.heads[i] = nil
				continue
			}
			if err != nil {
				return util.Zero[T](), err
			}
			j.heads[i] = &v
		}
		if j.heads[i] != nil && j.comparator(*j.heads[i], leftValue) == 0 {
			others[i-1] = j.heads[i]
		}
	}

	j.heads[0] = nil
	return j.joiner(leftValue, others), nil
}

func (j *leftMultiJoinProvider[S, T]) Close() {
}
