package stream

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nomemory/lambdas"
)

// ConsumeOption configures how a stream gets consumed.
type ConsumeOption interface {
	consumeOptionName() string
}

type concurrentConsumeOption struct {
	concurrency int
}

// WithConcurrentConsumeOption fans the consumer function out to a pool of
// goroutines. The source stream is still read sequentially, so this pays off
// when the consumer itself is the expensive part. Consumption order is not
// guaranteed to match source order.
func WithConcurrentConsumeOption(concurrency int) ConsumeOption {
	return &concurrentConsumeOption{concurrency: concurrency}
}

func (c *concurrentConsumeOption) consumeOptionName() string {
	return "concurrent"
}

// consumeConcurrently reads the stream from a single producer goroutine and
// hands elements to concurrency workers. The first failure, whether from the
// stream or from a consumer call, cancels the rest and is returned.
func (s Stream[T]) consumeConcurrently(ctx context.Context, concurrency int, f func(ctx context.Context, value T) error) (err error) {
	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0")
	}

	openedCtx, cancelFunc, openErr := openLifecycles[T](ctx, s)
	if openErr != nil {
		return openErr
	}

	defer func() {
		closeLifecycles(s)
		cancelFunc()
	}()

	// Panics on this goroutine still close the stream before surfacing
	defer func() {
		if rvr := recover(); rvr != nil {
			err = recoveredError(rvr)
		}
	}()

	items := make(chan lambdas.Result[T], concurrency)

	workCtx, stop := context.WithCancel(openedCtx)
	defer stop()

	// The producer and workers run on their own goroutines where the recover
	// above cannot reach, so their pipeline calls get guarded individually
	emitSafely := func() (v T, err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				err = recoveredError(rvr)
			}
		}()
		return s.provider(workCtx)
	}
	consumeSafely := func(v T) (err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				err = recoveredError(rvr)
			}
		}()
		return f(workCtx, v)
	}

	// First error wins and stops everyone else
	var firstErr error
	var errOnce sync.Once
	fail := func(e error) {
		errOnce.Do(func() {
			firstErr = e
			stop()
		})
	}

	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		defer close(items)
		for {
			if workCtx.Err() != nil {
				return
			}
			v, err := emitSafely()
			if err != nil {
				if err == io.EOF {
					return
				}
				select {
				case items <- lambdas.Result[T]{Err: err}:
				case <-workCtx.Done():
				}
				return
			}
			select {
			case items <- lambdas.Result[T]{Value: v}:
			case <-workCtx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-workCtx.Done():
					// Drain so the producer can finish sending and exit
					for range items {
					}
					return
				case item, ok := <-items:
					if !ok {
						return
					}
					if item.Err != nil {
						fail(item.Err)
						return
					}
					if err := consumeSafely(item.Value); err != nil {
						fail(err)
						return
					}
				}
			}
		}()
	}

	wg.Wait()

	// The producer must be gone before the deferred close releases resources
	<-producerDone

	if firstErr != nil {
		return firstErr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}
