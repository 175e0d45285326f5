package stream

import (
	"maps"

	"github.com/nomemory/lambdas"
)

// FromMapValues streams the values of m. Order follows map iteration and is
// not deterministic.
func FromMapValues[K comparable, V any](m map[K]V) Stream[V] {
	return FromIterator(maps.Values(m))
}

// FromMapKeys streams the keys of m.
func FromMapKeys[K comparable, V any](m map[K]V) Stream[K] {
	return FromIterator(maps.Keys(m))
}

// FromMapEntries streams the key/value pairs of m.
func FromMapEntries[K comparable, V any](m map[K]V) Stream[lambdas.Entry[K, V]] {
	return FromIterator2[K, V](maps.All(m))
}
