package stream

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

type concurrentMapProvider[SRC any, TGT any] struct {
	concurrency int
	src         chan lambdas.Result[SRC]
	out         chan lambdas.Result[TGT]
	mapper      func(context.Context, SRC) (TGT, error)
	eofCtx      context.Context
	done        chan struct{}
}

// Close blocks until the producer and workers have exited. The caller cancels
// the open context before closing, so this never waits on a live source.
func (c *concurrentMapProvider[SRC, TGT]) Close() {
	if c.done != nil {
		<-c.done
	}
}

// mapStreamConcurrently fans the mapper out over a worker pool. Mapped values
// surface in completion order, not source order.
func mapStreamConcurrently[SRC any, TGT any](
	src Stream[SRC],
	concurrency int,
	mapper lambdas.MapperWithErrAndCtx[SRC, TGT],
) Stream[TGT] {
	if concurrency <= 0 {
		return Error[TGT](fmt.Errorf("concurrency must be > 0"))
	}
	return NewDownStream[SRC, TGT](
		src,
		&concurrentMapProvider[SRC, TGT]{
			concurrency: concurrency,
			mapper:      mapper,
		},
	)
}

func (c *concurrentMapProvider[SRC, TGT]) Open(ctx context.Context, srcProvider ProviderFunc[SRC]) error {
	// Buffers sized to the pool keep workers busy without unbounded memory
	c.src = make(chan lambdas.Result[SRC], c.concurrency)
	c.out = make(chan lambdas.Result[TGT], c.concurrency)

	// Cancelled when the source hits EOF, Emit uses it to tell a clean end
	// of input apart from a premature channel close
	eofCtx, markEOF := context.WithCancel(context.Background())
	c.eofCtx = eofCtx
	c.done = make(chan struct{})

	// Guarded calls so a panicking source or mapper surfaces as a stream
	// error instead of killing the process from a pool goroutine
	emitSafely := func() (v SRC, err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				err = recoveredError(rvr)
			}
		}()
		return srcProvider(ctx)
	}
	mapSafely := func(v SRC) (tgt TGT, err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				err = recoveredError(rvr)
			}
		}()
		return c.mapper(ctx, v)
	}

	var wg sync.WaitGroup
	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case entry, ok := <-c.src:
					if !ok {
						return
					}
					var res lambdas.Result[TGT]
					if entry.Err != nil {
						res = lambdas.Result[TGT]{Err: entry.Err}
					} else if tgt, err := mapSafely(entry.Value); err != nil {
						res = lambdas.Result[TGT]{Err: err}
					} else {
						res = lambdas.Result[TGT]{Value: tgt}
					}
					select {
					case c.out <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	done := c.done
	go func() {
		defer func() {
			// Workers drain whatever is still buffered after the close
			close(c.src)
			wg.Wait()
			close(c.out)
			close(done)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			v, err := emitSafely()
			if err != nil {
				if err == io.EOF {
					markEOF()
					return
				}
				select {
				case c.src <- lambdas.Result[SRC]{Err: err}:
				case <-ctx.Done():
					return
				}
				continue
			}
			select {
			case c.src <- lambdas.Result[SRC]{Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (c *concurrentMapProvider[SRC, TGT]) Emit(ctx context.Context, _ ProviderFunc[SRC]) (TGT, error) {
	select {
	case <-ctx.Done():
		return util.Zero[TGT](), ctx.Err()
	case r, ok := <-c.out:
		if !ok {
			// The channel closes after source EOF or cancellation
			if c.eofCtx.Err() != nil {
				return util.Zero[TGT](), io.EOF
			}
			if ctx.Err() != nil {
				return util.Zero[TGT](), ctx.Err()
			}
			return util.Zero[TGT](), fmt.Errorf("concurrent stream channel closed prematurely")
		}
		return r.Unpack()
	}
}
