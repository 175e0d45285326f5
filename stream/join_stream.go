package stream

import (
	"context"
	"fmt"

	"github.com/nomemory/lambdas"
)

// JoinSortedStreams inner-joins two streams that are sorted by their join key,
// emitting a pair for every left element whose key has a match on the right.
// Both streams are verified to be sorted while streaming.
func JoinSortedStreams[L any, R any, KEY any](
	left Stream[L],
	right Stream[R],
	leftKeyOf func(L) KEY,
	rightKeyOf func(R) KEY,
	comparator lambdas.Comparator[KEY],
) Stream[lambdas.Tuple2[L, R]] {
	b := &subStreamRegistry{}
	registerSubStream(b, left)
	registerSubStream(b, right)

	var leftProvider ProviderFunc[L]
	var rightProvider ProviderFunc[R]
	var prevLKey KEY
	var rHead R
	var rHeadKey KEY
	first := true

	return newRegistryStream[lambdas.Tuple2[L, R]](
		b,
		func(ctx context.Context, b *subStreamRegistry) error {
			// Join state resets per materialization
			first = true
			var err error
			leftProvider, err = openSubStream[L](ctx, b, 0)
			if err != nil {
				return err
			}
			rightProvider, err = openSubStream[R](ctx, b, 1)
			return err
		},
		func(ctx context.Context, b *subStreamRegistry) (lambdas.Tuple2[L, R], error) {
			if ctx.Err() != nil {
				return lambdas.Tuple2[L, R]{}, ctx.Err()
			}

			// EOF on either side ends the join, an inner join cannot produce
			// more pairs once one input is dry
			lv, err := leftProvider(ctx)
			if err != nil {
				return lambdas.Tuple2[L, R]{}, err
			}
			lKey := leftKeyOf(lv)

			if first {
				if ctx.Err() != nil {
					return lambdas.Tuple2[L, R]{}, ctx.Err()
				}
				rv, err := rightProvider(ctx)
				if err != nil {
					return lambdas.Tuple2[L, R]{}, err
				}
				rHead = rv
				rHeadKey = rightKeyOf(rv)
				first = false
			} else if comparator(lKey, prevLKey) < 0 {
				return lambdas.Tuple2[L, R]{}, fmt.Errorf("left stream is not sorted %v < %v", lKey, prevLKey)
			}
			prevLKey = lKey

			for {
				// Advance the right side until its key catches up with the left
				for comparator(lKey, rHeadKey) > 0 {
					if ctx.Err() != nil {
						return lambdas.Tuple2[L, R]{}, ctx.Err()
					}
					rv, err := rightProvider(ctx)
					if err != nil {
						return lambdas.Tuple2[L, R]{}, err
					}
					rKey := rightKeyOf(rv)
					if comparator(rKey, rHeadKey) < 0 {
						return lambdas.Tuple2[L, R]{}, fmt.Errorf("right stream is not sorted %v < %v", rKey, rHeadKey)
					}
					rHead = rv
					rHeadKey = rKey
				}

				if comparator(lKey, rHeadKey) == 0 {
					return lambdas.Tuple2[L, R]{A: lv, B: rHead}, nil
				}

				// Right ran past the left key, pull the next left element
				if ctx.Err() != nil {
					return lambdas.Tuple2[L, R]{}, ctx.Err()
				}
				lv, err = leftProvider(ctx)
				if err != nil {
					return lambdas.Tuple2[L, R]{}, err
				}
				lKey = leftKeyOf(lv)
				if comparator(lKey, prevLKey) < 0 {
					return lambdas.Tuple2[L, R]{}, fmt.Errorf("left stream is not sorted %v < %v", lKey, prevLKey)
				}
				prevLKey = lKey
			}
		},
		nil,
	)
}
