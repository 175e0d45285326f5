package stream

import (
	"context"
	"fmt"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

type MapOption interface {
	mapOptionName() string
}

type mapConcurrencyOption struct {
	concurrency int
}

// WithConcurrentMapOption runs the mapper in separate goroutines. The source
// is still read sequentially and only the mapping itself is parallelized, so
// output order is not guaranteed to follow source order.
func WithConcurrentMapOption(concurrency int) MapOption {
	return &mapConcurrencyOption{concurrency: concurrency}
}

func (c *mapConcurrencyOption) mapOptionName() string {
	return "concurrent"
}

// Map lazily transforms each element of src with the mapper.
func Map[SRC any, TGT any](
	src Stream[SRC],
	mapper lambdas.Mapper[SRC, TGT],
	options ...MapOption,
) Stream[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx(), options...)
}

// MapWithErr is Map for mappers that can fail. A mapper error fails the
// stream.
func MapWithErr[SRC any, TGT any](
	src Stream[SRC],
	mapper lambdas.MapperWithErr[SRC, TGT],
	options ...MapOption,
) Stream[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx(), options...)
}

// MapWithErrAndCtx is Map for mappers that observe cancellation and can fail.
func MapWithErrAndCtx[SRC any, TGT any](
	src Stream[SRC],
	mapper lambdas.MapperWithErrAndCtx[SRC, TGT],
	options ...MapOption,
) Stream[TGT] {
	for _, opt := range options {
		switch o := opt.(type) {
		case *mapConcurrencyOption:
			return mapStreamConcurrently[SRC, TGT](src, o.concurrency, mapper)
		default:
			return Error[TGT](fmt.Errorf("unsupported map stream option type: %T", opt))
		}
	}
	return newStream[TGT](
		func(ctx context.Context) (TGT, error) {
			v, err := src.provider(ctx)
			if err != nil {
				return util.Zero[TGT](), err
			}
			return mapper(ctx, v)
		}, src.lifecycles,
	)
}

// MapWhileFiltering maps and filters in a single pass. Returning nil from the
// mapper drops the element, any other result is dereferenced into the target
// stream.
func MapWhileFiltering[SRC any, TGT any](
	src Stream[SRC],
	mapper lambdas.Mapper[SRC, *TGT],
	options ...MapOption,
) Stream[TGT] {
	return MapWhileFilteringWithErrAndCtx(src, mapper.ToErrCtx(), options...)
}

// MapWhileFilteringWithErr is MapWhileFiltering for mappers that can fail.
func MapWhileFilteringWithErr[SRC any, TGT any](
	src Stream[SRC],
	mapper lambdas.MapperWithErr[SRC, *TGT],
	options ...MapOption,
) Stream[TGT] {
	return MapWhileFilteringWithErrAndCtx(src, mapper.ToErrCtx(), options...)
}

// MapWhileFilteringWithErrAndCtx is MapWhileFiltering for mappers that
// observe cancellation and can fail.
func MapWhileFilteringWithErrAndCtx[SRC any, TGT any](
	src Stream[SRC],
	mapper lambdas.MapperWithErrAndCtx[SRC, *TGT],
	options ...MapOption,
) Stream[TGT] {
	withNils := MapWithErrAndCtx(src, mapper, options...)
	return Map(
		withNils.Filter(func(tgt *TGT) bool { return tgt != nil }),
		func(p *TGT) TGT { return *p },
	)
}

// FlatMap maps each element to a stream of its own and concatenates the
// results in source order.
func FlatMap[SRC any, TGT any](src Stream[SRC], mapper lambdas.Mapper[SRC, Stream[TGT]]) Stream[TGT] {
	return Concat[TGT](MapWithErrAndCtx[SRC, Stream[TGT]](src, mapper.ToErrCtx()))
}
