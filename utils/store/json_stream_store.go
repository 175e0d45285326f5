package store

import (
	"context"

	"github.com/nomemory/lambdas/stream"
)

// JsonStreamStore is an append only record store readable as a stream.
// ReadStream(true) yields newest records first.
type JsonStreamStore[T any] interface {
	Put(ctx context.Context, value T) error
	PutAll(ctx context.Context, values stream.Stream[T]) error
	ReadStream(reverse bool) stream.Stream[T]
}
