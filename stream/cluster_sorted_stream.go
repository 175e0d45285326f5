package stream

import (
	"cmp"
	"context"
	"fmt"
	"io"

	"github.com/nomemory/lambdas/internal/util"
)

type clusterProvider[T any, O any, C cmp.Ordered] struct {
	head    *T
	currKey C
	keyFunc func(a *T) C
	merger  func(ctx context.Context, key C, cluster Stream[T], prevClusterTail *T) (O, error)

	prevClusterTail *T
}

// ClusterSortedStream groups adjacent elements sharing a classifier key and
// emits one merged value per group. The source must be sorted by the
// classifier so equal keys sit next to each other. Each group is handed to the
// merger as a stream rather than a slice, so a group never has to fit in
// memory at once.
func ClusterSortedStream[T any, O any, C cmp.Ordered](
	merger func(ctx context.Context, key C, cluster Stream[T], prevClusterTail *T) (O, error),
	keyFunc func(a *T) C,
	src Stream[T]) Stream[O] {
	return NewDownStream[T, O](
		src,
		&clusterProvider[T, O, C]{
			keyFunc: keyFunc,
			merger:  merger,
		},
	)
}

// ClusterSortedStreamOrdered is ClusterSortedStream with a by-value
// classifier function.
func ClusterSortedStreamOrdered[T any, O any, C cmp.Ordered](
	merger func(ctx context.Context, key C, cluster Stream[T], prevClusterTail *T) (O, error),
	keyFunc func(a T) C,
	src Stream[T]) Stream[O] {
	return ClusterSortedStream(
		merger,
		func(a *T) C {
			return keyFunc(*a)
		},
		src,
	)
}

func (c *clusterProvider[T, O, C]) Open(ctx context.Context, src ProviderFunc[T]) error {
	c.prevClusterTail = nil

	head, err := src(ctx)
	if err != nil {
		if err == io.EOF {
			c.head = nil
			return nil
		}
		return err
	}
	c.head = &head
	c.currKey = c.keyFunc(c.head)
	return nil
}

func (c *clusterProvider[T, O, C]) Emit(ctx context.Context, src ProviderFunc[T]) (O, error) {
	if c.head == nil {
		return util.Zero[O](), io.EOF
	}

	key := c.currKey

	// A view over the source that ends at the first element of the next
	// group. The source itself stays open across groups.
	cluster := NewSimpleStream[T](func(ctx context.Context) (T, error) {
		if c.head == nil {
			return util.Zero[T](), io.EOF
		}
		if c.keyFunc(c.head) != key {
			return util.Zero[T](), io.EOF
		}

		item := *c.head
		c.prevClusterTail = c.head
		next, err := src(ctx)
		if err != nil {
			if err != io.EOF {
				return util.Zero[T](), err
			}
			c.head = nil
		} else {
			c.head = &next
		}
		return item, nil
	})

	result, err := c.merger(ctx, key, cluster, c.prevClusterTail)
	if err != nil {
		// Wrapped so a merger returning io.EOF is not mistaken for end of stream
		return util.Zero[O](), fmt.Errorf("failed merging: %w", err)
	}

	// The merger may not have drained the group (limit, find first), so skip
	// whatever is left of it before the next emit
	if c.head != nil {
		nextKey := c.keyFunc(c.head)
		for nextKey == key && c.head != nil {
			next, err := src(ctx)
			if err != nil {
				if err != io.EOF {
					return util.Zero[O](), err
				}
				c.head = nil
			} else {
				nextKey = c.keyFunc(&next)
				if nextKey < key {
					return util.Zero[O](), fmt.Errorf("cluster stream is not sorted: %v < %v", key, nextKey)
				}
				c.prevClusterTail = c.head
				c.head = &next
			}
		}
		c.currKey = nextKey
	}

	return result, nil
}

func (c *clusterProvider[T, O, C]) Close() {
}
