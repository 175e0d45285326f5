package stream

import (
	"context"
	"io"
	"log/slog"

	"github.com/nomemory/lambdas/internal/util"
)

type channelProvider[T any] struct {
	ch <-chan T
}

func (p channelProvider[T]) Open(_ context.Context) error {
	return nil
}

func (p channelProvider[T]) Close() {
}

func (p channelProvider[T]) Emit(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		return util.Zero[T](), ctx.Err()
	case msg, ok := <-p.ch:
		if !ok {
			slog.Debug("Stream channel closed externally")
			return util.Zero[T](), io.EOF
		}
		return msg, nil
	}
}

// FromChannel creates a stream reading from the provided channel. The stream ends
// when the channel is closed, closing the channel is the producer's responsibility.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return NewStream[T](channelProvider[T]{ch: ch})
}
