package jsonstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nomemory/lambdas/stream"
)

// StreamJsonToWriter writes the stream to w as a JSON array, one element at a
// time, without materializing the stream in memory.
func StreamJsonToWriter[T any](ctx context.Context, w io.Writer, s stream.Stream[T]) error {
	return StreamJsonToWriterWithInit(ctx, w, s, func() error {
		return nil
	})
}

// StreamJsonToWriterWithInit is StreamJsonToWriter with an initFunc invoked just
// before the first byte is written. Useful for delaying e.g. http headers until
// the stream is known to produce data.
func StreamJsonToWriterWithInit[T any](
	ctx context.Context,
	w io.Writer,
	s stream.Stream[T],
	initFunc func() error,
) error {
	started := false
	err := s.ConsumeWithErr(ctx, func(v T) error {
		sep := []byte(",")
		if !started {
			if err := initFunc(); err != nil {
				return err
			}
			sep = []byte("[")
			started = true
		}
		if _, err := w.Write(sep); err != nil {
			return err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	})
	if err != nil {
		return err
	}

	// An empty stream still produces a valid empty array
	if !started {
		if err := initFunc(); err != nil {
			return err
		}
		_, err := w.Write([]byte("[]"))
		return err
	}
	_, err = w.Write([]byte("]"))
	return err
}

// StreamJsonAsReaderAndReturn pipes the stream as a JSON array into a reader and
// hands the reader to the consumer, streaming through an io.Pipe so neither side
// buffers the whole payload.
func StreamJsonAsReaderAndReturn[T any, V any](
	ctx context.Context,
	s stream.Stream[T],
	consumer func(ctx context.Context, r io.Reader) (V, error),
) (V, error) {

	// Cancelling aborts the producing goroutine once either side fails
	ctx, cancel := context.WithCancelCause(ctx)

	pr, pw := io.Pipe()
	go func() {
		defer pw.Close()

		fail := func(err error) {
			cancel(err)
			_ = pw.CloseWithError(err)
		}

		started := false
		err := s.ConsumeWithErr(ctx, func(v T) error {
			if started {
				if _, err := pw.Write([]byte(",")); err != nil {
					return fmt.Errorf("failed to write json delimiter to pipe: %w", err)
				}
			} else if _, err := pw.Write([]byte("[")); err != nil {
				return fmt.Errorf("failed writting start json array to pipe: %w", err)
			}
			started = true

			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal json reading from stream: %w", err)
			}
			if _, err = pw.Write(raw); err != nil {
				return fmt.Errorf("failed to write json to pipe: %w", err)
			}
			return nil
		})
		if err != nil {
			fail(fmt.Errorf("failed to read input stream for pipe: %w", err))
			return
		}

		closing := []byte("]")
		if !started {
			closing = []byte("[]")
		}
		if _, err := pw.Write(closing); err != nil {
			fail(fmt.Errorf("failed to write end json array to pipe: %w", err))
		}
	}()

	return consumer(ctx, pr)
}
