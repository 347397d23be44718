package query

import (
	"cmp"
	"context"

	"github.com/quietmark/litesearch/pkg/storage"
)

// Iterator yields ascending values of type T, one per step. Posting
// iterators over doc-ids and position-list iterators over phrase anchors
// both satisfy it.
type Iterator[T cmp.Ordered] interface {
	Next(ctx context.Context) (v T, ok bool, err error)
}

// docIDIterator adapts a storage.WordIterator to Iterator[uint32].
type docIDIterator struct {
	inner storage.WordIterator
}

func (d docIDIterator) Next(ctx context.Context) (uint32, bool, error) {
	return d.inner.Next(ctx)
}

// WrapWordIterator adapts it to Iterator[uint32].
func WrapWordIterator(it storage.WordIterator) Iterator[uint32] {
	return docIDIterator{inner: it}
}

// sliceIterator walks an in-memory ascending slice.
type sliceIterator[T cmp.Ordered] struct {
	vals []T
	pos  int
}

func (s *sliceIterator[T]) Next(_ context.Context) (T, bool, error) {
	if s.pos >= len(s.vals) {
		var zero T

		return zero, false, nil
	}

	v := s.vals[s.pos]
	s.pos++

	return v, true, nil
}

// SliceIterator returns an Iterator over an already-sorted slice.
func SliceIterator[T cmp.Ordered](vals []T) Iterator[T] {
	return &sliceIterator[T]{vals: vals}
}
