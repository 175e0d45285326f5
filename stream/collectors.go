package stream

import (
	"context"
	"fmt"

	"github.com/nomemory/lambdas"
)

// CollectToMap materializes the stream into a map keyed by the entry
// function. A duplicate key fails the collection.
func CollectToMap[T any, K comparable, V any](
	ctx context.Context,
	s Stream[T],
	kvFactory func(T) (K, V),
) (map[K]V, error) {
	out := make(map[K]V)
	err := s.ConsumeWithErr(ctx, func(v T) error {
		k, val := kvFactory(v)
		if existing, ok := out[k]; ok {
			return fmt.Errorf("duplicate key %v for source values %v and %v", k, val, existing)
		}
		out[k] = val
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CollectToSet materializes the stream into a set (map to bool). A duplicate
// element fails the collection.
func CollectToSet[K comparable](
	ctx context.Context,
	s Stream[K],
) (map[K]bool, error) {
	out := make(map[K]bool)
	err := s.ConsumeWithErr(ctx, func(k K) error {
		if existing, ok := out[k]; ok {
			return fmt.Errorf("duplicate key %v for value %v", k, existing)
		}
		out[k] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MustCollectToSet is CollectToSet with a background context, panicking on
// error.
func MustCollectToSet[K comparable](
	s Stream[K],
) map[K]bool {
	out, err := CollectToSet[K](context.Background(), s)
	if err != nil {
		panic(fmt.Sprintf("error collecting to set: %v", err))
	}
	return out
}

// CollectCountGroupedBy counts stream elements per group key.
func CollectCountGroupedBy[K comparable, T any](
	ctx context.Context,
	s Stream[T],
	grouper lambdas.Mapper[T, K],
) (map[K]uint64, error) {
	out := make(map[K]uint64)
	err := s.Consume(ctx, func(v T) {
		out[grouper(v)]++
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CollectGroupedBy materializes the stream into slices per group key.
// Insertion order within a group follows the source stream order.
func CollectGroupedBy[K comparable, T any](
	ctx context.Context,
	s Stream[T],
	grouper lambdas.Mapper[T, K],
) (map[K][]T, error) {
	out := make(map[K][]T)
	err := s.Consume(ctx, func(v T) {
		k := grouper(v)
		out[k] = append(out[k], v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CollectToMapOverrideDuplicates materializes the stream into a map keyed by
// the grouper. A later element silently replaces an earlier one with the same
// key.
func CollectToMapOverrideDuplicates[K comparable, T any](ctx context.Context, s Stream[T], grouper func(T) K) (map[K]T, error) {
	out := make(map[K]T)
	err := s.Consume(ctx, func(v T) {
		out[grouper(v)] = v
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
