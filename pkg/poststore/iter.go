package poststore

// Iterator walks a key's posting list forward-only, starting from the
// bucket's head. It is stable but not isolated: appends made after the
// iterator is created may or may not be observed, since each step follows
// the `next` pointer stored in the file at the time of the step. It must
// not be interleaved with mutating operations on the same key.
type Iterator struct {
	s    *Store
	next uint32
	done bool
}

// Iter returns a forward iterator over key's posting list. A key that was
// never Set yields an iterator that is immediately done.
func (s *Store) Iter(key []byte) (*Iterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	b, found, err := s.lookup(key)
	if err != nil {
		return nil, err
	}

	if !found {
		return &Iterator{done: true}, nil
	}

	row, err := s.readBucket(b)
	if err != nil {
		return nil, err
	}

	return &Iterator{s: s, next: row.Head}, nil
}

// Next returns the next (payload, nodeOffset) pair, or ok=false once the
// list is exhausted.
func (it *Iterator) Next() (payload []byte, nodeOffset uint32, ok bool, err error) {
	if it.done || it.next == 0 {
		it.done = true

		return nil, 0, false, nil
	}

	it.s.mu.Lock()
	defer it.s.mu.Unlock()

	if it.s.closed {
		return nil, 0, false, ErrClosed
	}

	p, next, err := it.s.readNode(it.next)
	if err != nil {
		return nil, 0, false, err
	}

	offset := it.next
	it.next = next

	if next == 0 {
		it.done = true
	}

	return p, offset, true, nil
}
