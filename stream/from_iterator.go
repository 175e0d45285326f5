package stream

import (
	"context"
	"io"
	"iter"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

// FromIterator creates a stream from an iter.Seq. The pull iterator is created when
// the stream is opened, so the stream can be materialized more than once as long as
// the sequence itself is replayable.
func FromIterator[E any](seq iter.Seq[E]) Stream[E] {
	var next func() (E, bool)
	var stop func()
	return NewSimpleStream(
		func(ctx context.Context) (E, error) {
			if ctx.Err() != nil {
				return util.Zero[E](), ctx.Err()
			}
			e, ok := next()
			if !ok {
				return util.Zero[E](), io.EOF
			}
			return e, nil
		},
		WithOpenFuncOption(func(_ context.Context) error {
			next, stop = iter.Pull(seq)
			return nil
		}),
		WithCloseFuncOption(func() {
			if stop != nil {
				stop()
			}
			next, stop = nil, nil
		}),
	)
}

// FromIterator2 creates a stream of key/value entries from an iter.Seq2.
func FromIterator2[K comparable, V any](seq iter.Seq2[K, V]) Stream[lambdas.Entry[K, V]] {
	var next func() (K, V, bool)
	var stop func()
	return NewSimpleStream(
		func(ctx context.Context) (lambdas.Entry[K, V], error) {
			if ctx.Err() != nil {
				return util.Zero[lambdas.Entry[K, V]](), ctx.Err()
			}
			k, v, ok := next()
			if !ok {
				return util.Zero[lambdas.Entry[K, V]](), io.EOF
			}
			return lambdas.Entry[K, V]{Key: k, Value: v}, nil
		},
		WithOpenFuncOption(func(_ context.Context) error {
			next, stop = iter.Pull2(seq)
			return nil
		}),
		WithCloseFuncOption(func() {
			if stop != nil {
				stop()
			}
			next, stop = nil, nil
		}),
	)
}
