package stream

import "context"

type downEmitFunc[S any, T any] func(ctx context.Context, src ProviderFunc[S]) (T, error)

// DownStreamProvider derives a downstream stream from a source stream. Open is
// called once per materialization with the source already open, Emit is called
// repeatedly to produce downstream elements, and Close is called when the
// downstream stream is closed (only if Open succeeded).
type DownStreamProvider[SRC any, TGT any] interface {
	Open(ctx context.Context, src ProviderFunc[SRC]) error
	Emit(ctx context.Context, src ProviderFunc[SRC]) (TGT, error)
	Close()
}

func NewDownStream[S any, T any](
	src Stream[S],
	provider DownStreamProvider[S, T],
) Stream[T] {
	var srcCancel context.CancelFunc
	return NewSimpleStream[T](
		func(ctx context.Context) (T, error) {
			return provider.Emit(ctx, src.provider)
		},
		WithOpenFuncOption(func(ctx context.Context) error {
			openedCtx, cancelFunc, err := openLifecycles(ctx, src)
			if err != nil {
				return err
			}
			srcCancel = cancelFunc
			if err := provider.Open(openedCtx, src.provider); err != nil {
				// The downstream provider never opened, so only the source needs closing
				cancelFunc()
				closeLifecycles(src)
				srcCancel = nil
				return err
			}
			return nil
		}),
		WithCloseFuncOption(func() {
			// Cancel first so provider goroutines stop touching the source,
			// then let the provider wait for them before the source closes
			if srcCancel != nil {
				srcCancel()
				srcCancel = nil
			}
			provider.Close()
			closeLifecycles(src)
		}),
	)
}

// NewDownStreamSimple wires a bare emit function as a downstream provider with
// no open or close behavior of its own.
func NewDownStreamSimple[S any, T any](
	src Stream[S],
	emit downEmitFunc[S, T],
) Stream[T] {
	return NewDownStream[S, T](src, emitOnlyProvider[S, T]{emit: emit})
}

type emitOnlyProvider[S any, T any] struct {
	emit downEmitFunc[S, T]
}

func (p emitOnlyProvider[S, T]) Open(_ context.Context, _ ProviderFunc[S]) error {
	return nil
}

func (p emitOnlyProvider[S, T]) Emit(ctx context.Context, src ProviderFunc[S]) (T, error) {
	return p.emit(ctx, src)
}

func (p emitOnlyProvider[S, T]) Close() {
}
