package stream

// Iterator adapts the stream to Go's range-over-func protocol. A break in the
// loop makes yield return false, which reads here as a filter match, so
// FindFirst stops pulling right there. MustGetOptional tolerates streams that
// were fully drained.
func (s Stream[T]) Iterator(yield func(T) bool) {
	s.Filter(func(v T) bool {
		return !yield(v)
	}).FindFirst().MustGetOptional()
}

// IndexedIterator is Iterator with a running 0-based element index.
func (s Stream[T]) IndexedIterator(yield func(int, T) bool) {
	index := -1
	s.Filter(func(v T) bool {
		index++
		return !yield(index, v)
	}).FindFirst().MustGetOptional()
}
