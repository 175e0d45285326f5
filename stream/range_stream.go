package stream

import (
	"context"
	"fmt"
	"io"
)

// Range creates a stream of consecutive integers from from (inclusive) to to
// (exclusive). An empty range yields an empty stream.
func Range(from, to int) Stream[int] {
	return RangeStep(from, to, 1)
}

// RangeStep creates a stream of integers from from (inclusive) towards to
// (exclusive), advancing by step. A negative step counts down.
func RangeStep(from, to, step int) Stream[int] {
	if step == 0 {
		return Error[int](fmt.Errorf("range step must not be zero"))
	}
	curr := from
	return NewSimpleStream(
		func(ctx context.Context) (int, error) {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			if (step > 0 && curr >= to) || (step < 0 && curr <= to) {
				return 0, io.EOF
			}
			v := curr
			curr += step
			return v, nil
		},
		WithOpenFuncOption(func(_ context.Context) error {
			curr = from
			return nil
		}),
	)
}
