package stream

import (
	"context"
	"io"

	"github.com/nomemory/lambdas/internal/util"
)

type concatProvider[T any] struct {
	outer      ProviderFunc[Stream[T]]
	curr       ProviderFunc[T]
	currHandle int
}

// Concat flattens a stream of streams into one stream, draining each inner
// stream fully before pulling the next. Inner streams are registered as they
// arrive, so their resources open lazily.
func Concat[T any](streams Stream[Stream[T]]) Stream[T] {
	b := &subStreamRegistry{}
	registerSubStream(b, streams)
	c := &concatProvider[T]{}
	return newRegistryStream[T](b, c.open, c.emit, nil)
}

// ConcatStreams joins the given streams end to end.
func ConcatStreams[T any](streams ...Stream[T]) Stream[T] {
	if len(streams) == 0 {
		return Empty[T]()
	}
	return Concat(Just(streams...))
}

func (c *concatProvider[T]) open(ctx context.Context, b *subStreamRegistry) error {
	// Cleared on every open so the stream can be collected again
	c.outer = nil
	c.curr = nil
	c.currHandle = 0

	outer, err := openSubStream[Stream[T]](ctx, b, 0)
	if err != nil {
		return err
	}
	c.outer = outer

	first, err := outer(ctx)
	if err != nil {
		// No inner streams at all is a valid, empty concatenation
		if err == io.EOF {
			return nil
		}
		return err
	}

	c.currHandle = registerSubStream(b, first)
	c.curr, err = openSubStream[T](ctx, b, c.currHandle)
	return err
}

func (c *concatProvider[T]) emit(ctx context.Context, b *subStreamRegistry) (T, error) {
	if ctx.Err() != nil {
		return util.Zero[T](), ctx.Err()
	}
	if c.curr == nil {
		return util.Zero[T](), io.EOF
	}

	v, err := c.curr(ctx)
	if err == nil {
		return v, nil
	}
	if err != io.EOF {
		return util.Zero[T](), err
	}

	// Current inner stream is exhausted, close it and move on to the next one
	if err := closeSubStream(b, c.currHandle); err != nil {
		return util.Zero[T](), err
	}
	c.curr = nil

	if ctx.Err() != nil {
		return util.Zero[T](), ctx.Err()
	}

	// EOF from the outer stream ends the concatenation
	next, err := c.outer(ctx)
	if err != nil {
		return util.Zero[T](), err
	}
	c.currHandle = registerSubStream(b, next)
	c.curr, err = openSubStream[T](ctx, b, c.currHandle)
	if err != nil {
		return util.Zero[T](), err
	}
	return c.emit(ctx, b)
}
