package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/nomemory/lambdas"
)

// LeftJoinSortedStreams left-joins two streams that are sorted by their join
// key, emitting a pair for every left element. The right side of the pair is
// nil when no right element shares the key.
func LeftJoinSortedStreams[L any, R any, KEY any](
	left Stream[L],
	right Stream[R],
	leftKeyOf func(L) KEY,
	rightKeyOf func(R) KEY,
	comparator lambdas.Comparator[KEY],
) Stream[lambdas.Tuple2[L, *R]] {
	b := &subStreamRegistry{}
	registerSubStream(b, left)
	registerSubStream(b, right)

	var leftProvider ProviderFunc[L]
	var rightProvider ProviderFunc[R]
	var prevLKey KEY
	var rHead R
	var rHeadKey KEY
	first := true
	rightDone := false

	return newRegistryStream[lambdas.Tuple2[L, *R]](
		b,
		func(ctx context.Context, b *subStreamRegistry) error {
			// Join state resets per materialization
			first = true
			rightDone = false
			var err error
			leftProvider, err = openSubStream[L](ctx, b, 0)
			if err != nil {
				return err
			}
			rightProvider, err = openSubStream[R](ctx, b, 1)
			return err
		},
		func(ctx context.Context, b *subStreamRegistry) (lambdas.Tuple2[L, *R], error) {
			if ctx.Err() != nil {
				return lambdas.Tuple2[L, *R]{}, ctx.Err()
			}

			// Every left element produces an output, so only the left EOF
			// ends the join
			lv, err := leftProvider(ctx)
			if err != nil {
				return lambdas.Tuple2[L, *R]{}, err
			}
			lKey := leftKeyOf(lv)

			if first {
				first = false
				if ctx.Err() != nil {
					return lambdas.Tuple2[L, *R]{}, ctx.Err()
				}
				rv, err := rightProvider(ctx)
				if err != nil {
					if err != io.EOF {
						return lambdas.Tuple2[L, *R]{}, err
					}
					rightDone = true
				} else {
					rHead = rv
					rHeadKey = rightKeyOf(rv)
				}
			} else if comparator(lKey, prevLKey) < 0 {
				return lambdas.Tuple2[L, *R]{}, fmt.Errorf("left stream is not sorted %v < %v", lKey, prevLKey)
			}
			prevLKey = lKey

			// With the right side exhausted every remaining left element is
			// unmatched
			if rightDone {
				return lambdas.Tuple2[L, *R]{A: lv}, nil
			}

			// Advance the right side until its key catches up with the left
			for comparator(lKey, rHeadKey) > 0 {
				if ctx.Err() != nil {
					return lambdas.Tuple2[L, *R]{}, ctx.Err()
				}
				rv, err := rightProvider(ctx)
				if err != nil {
					if err != io.EOF {
						return lambdas.Tuple2[L, *R]{}, err
					}
					rightDone = true
					return lambdas.Tuple2[L, *R]{A: lv}, nil
				}
				rKey := rightKeyOf(rv)
				if comparator(rKey, rHeadKey) < 0 {
					return lambdas.Tuple2[L, *R]{}, fmt.Errorf("right stream is not sorted %v < %v", rKey, rHeadKey)
				}
				rHead = rv
				rHeadKey = rKey
			}

			if comparator(lKey, rHeadKey) == 0 {
				// Copied out so later right pulls cannot mutate the emitted pair
				match := rHead
				return lambdas.Tuple2[L, *R]{A: lv, B: &match}, nil
			}

			// Right ran past the left key, the left element is unmatched
			return lambdas.Tuple2[L, *R]{A: lv}, nil
		},
		nil,
	)
}
