package stream

import (
	"context"

	"github.com/nomemory/lambdas"
)

// ZipN combines several streams of the same type element-wise. The zipped
// stream ends as soon as any source ends.
func ZipN[T any](s ...Stream[T]) Stream[[]T] {
	if len(s) == 0 {
		return Empty[[]T]()
	}
	return NewDownMultiStreamSimple(
		s,
		func(ctx context.Context, providers []ProviderFunc[T]) ([]T, error) {
			var result []T
			for i := range providers {
				s, err := providers[i](ctx)
				if err != nil {
					return nil, err
				}
				result = append(result, s)
			}
			return result, nil

		})
}

// Zip2 combines two streams of different types element-wise into a stream of
// pairs. The zipped stream ends as soon as either source ends.
func Zip2[A any, B any](a Stream[A], b Stream[B]) Stream[lambdas.Tuple2[A, B]] {
	ub := &subStreamRegistry{}
	registerSubStream(ub, a)
	registerSubStream(ub, b)
	var pa ProviderFunc[A]
	var pb ProviderFunc[B]
	return newRegistryStream[lambdas.Tuple2[A, B]](
		ub,
		func(ctx context.Context, ub *subStreamRegistry) error {
			var err error
			pa, err = openSubStream[A](ctx, ub, 0)
			if err != nil {
				return err
			}
			pb, err = openSubStream[B](ctx, ub, 1)
			return err
		},
		func(ctx context.Context, _ *subStreamRegistry) (lambdas.Tuple2[A, B], error) {
			av, err := pa(ctx)
			if err != nil {
				return lambdas.Tuple2[A, B]{}, err
			}
			bv, err := pb(ctx)
			if err != nil {
				return lambdas.Tuple2[A, B]{}, err
			}
			return lambdas.Tuple2[A, B]{A: av, B: bv}, nil
		},
		nil,
	)
}
