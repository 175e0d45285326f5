package stream

import "context"

type downMultiEmitFunc[S any, T any] func(ctx context.Context, srcProviders []ProviderFunc[S]) (T, error)

// DownMultiStreamProvider derives a single downstream stream from several
// source streams of the same type, e.g. merge and join operators.
type DownMultiStreamProvider[SRC any, TGT any] interface {
	Open(ctx context.Context, srcProviders []ProviderFunc[SRC]) error
	Emit(ctx context.Context, srcProviders []ProviderFunc[SRC]) (TGT, error)
	Close()
}

func NewDownMultiStream[S any, T any](
	srcs []Stream[S],
	provider DownMultiStreamProvider[S, T],
) Stream[T] {
	var srcProviders []ProviderFunc[S]
	b := &subStreamRegistry{}
	for _, src := range srcs {
		registerSubStream(b, src)
	}
	return newRegistryStream[T](
		b,
		func(ctx context.Context, b *subStreamRegistry) error {
			// Rebuilt on every open so the stream can be collected again
			srcProviders = srcProviders[:0]
			for i := range srcs {
				p, err := openSubStream[S](ctx, b, i)
				if err != nil {
					return err
				}
				srcProviders = append(srcProviders, p)
			}
			return provider.Open(ctx, srcProviders)
		},
		func(ctx context.Context, _ *subStreamRegistry) (T, error) {
			return provider.Emit(ctx, srcProviders)
		},
		provider.Close,
	)
}

func NewDownMultiStreamSimple[S any, T any](
	srcs []Stream[S],
	emit downMultiEmitFunc[S, T],
) Stream[T] {
	return NewDownMultiStream[S, T](srcs, emitOnlyMultiProvider[S, T]{emit: emit})
}

type emitOnlyMultiProvider[S any, T any] struct {
	emit downMultiEmitFunc[S, T]
}

func (p emitOnlyMultiProvider[S, T]) Open(_ context.Context, _ []ProviderFunc[S]) error {
	return nil
}

func (p emitOnlyMultiProvider[S, T]) Emit(ctx context.Context, srcProviders []ProviderFunc[S]) (T, error) {
	return p.emit(ctx, srcProviders)
}

func (p emitOnlyMultiProvider[S, T]) Close() {
}
