package stream

import (
	"context"
	"math/rand"
)

// CollectRandomSample materializes the stream and draws a uniform random
// sample of up to sampleSize elements by reservoir sampling, one pass and
// sampleSize memory regardless of stream length.
func (s Stream[T]) CollectRandomSample(ctx context.Context, sampleSize int) ([]T, error) {
	if sampleSize <= 0 {
		return nil, nil
	}

	sample := make([]T, 0, sampleSize)
	seen := 0
	err := s.Consume(ctx, func(v T) {
		if seen < sampleSize {
			sample = append(sample, v)
		} else if slot := rand.Intn(seen + 1); slot < sampleSize {
			sample[slot] = v
		}
		seen++
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// RandomSample returns a stream of a uniform random sample of the source stream.
// The sample is drawn when the stream is materialized.
func (s Stream[T]) RandomSample(sampleSize int) Stream[T] {
	return newStreamFromCollector(s, func(ctx context.Context, src Stream[T]) ([]T, error) {
		return src.CollectRandomSample(ctx, sampleSize)
	})
}
