package poststore

import (
	"bytes"
	"fmt"
)

// Set ensures key exists with a single-node list whose payload is
// initialPayload (zero-filled if nil). If key is already present, its head
// node is overwritten in place and the list is truncated to that one node —
// this is how a key's posting list is reset.
func (s *Store) Set(key, initialPayload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	padded, err := s.padKey(key)
	if err != nil {
		return err
	}

	b, found, err := s.lookup(key)
	if err != nil {
		return err
	}

	if !found {
		offset, err := s.allocateNode(initialPayload, 0)
		if err != nil {
			return err
		}

		return s.writeBucket(b, bucketRow{Key: padded, Head: offset, Tail: offset})
	}

	row, err := s.readBucket(b)
	if err != nil {
		return err
	}

	paddedPayload, err := s.padPayload(initialPayload)
	if err != nil {
		return err
	}

	if err := s.writeNode(row.Head, paddedPayload, 0); err != nil {
		return err
	}

	if row.Tail != row.Head {
		return s.writeBucketTail(b, row.Head)
	}

	return nil
}

// InsertAt inserts payload at 0-based logical position i in key's posting
// list. The key must already exist (Set it first), else ErrKeyMissing.
func (s *Store) InsertAt(key []byte, i int, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if i < 0 {
		return fmt.Errorf("negative position %d: %w", i, ErrInvalidOptions)
	}

	b, found, err := s.lookup(key)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("insert into %q: %w", key, ErrKeyMissing)
	}

	row, err := s.readBucket(b)
	if err != nil {
		return err
	}

	if i == 0 {
		offset, err := s.allocateNode(payload, row.Head)
		if err != nil {
			return err
		}

		if row.Head == 0 {
			if err := s.writeBucketTail(b, offset); err != nil {
				return err
			}
		}

		return s.writeBucketHead(b, offset)
	}

	prevOffset, err := s.walkToPosition(row.Head, i-1)
	if err != nil {
		return err
	}

	_, curr, err := s.readNode(prevOffset)
	if err != nil {
		return err
	}

	offset, err := s.allocateNode(payload, curr)
	if err != nil {
		return err
	}

	if err := s.writeNodeNext(prevOffset, offset); err != nil {
		return err
	}

	if curr == 0 {
		return s.writeBucketTail(b, offset)
	}

	return nil
}

// Append inserts payload at the end of key's posting list without walking
// the list, using the bucket's cached tail offset.
func (s *Store) Append(key []byte, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	b, found, err := s.lookup(key)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("append to %q: %w", key, ErrKeyMissing)
	}

	row, err := s.readBucket(b)
	if err != nil {
		return err
	}

	offset, err := s.allocateNode(payload, 0)
	if err != nil {
		return err
	}

	if row.Tail == 0 {
		if err := s.writeBucketHead(b, offset); err != nil {
			return err
		}

		return s.writeBucketTail(b, offset)
	}

	if err := s.writeNodeNext(row.Tail, offset); err != nil {
		return err
	}

	return s.writeBucketTail(b, offset)
}

// FindSortedPosition returns the smallest position i such that either key's
// list has fewer than i+1 nodes or the node at position i has a payload
// byte-compare >= payload. A never-initialized key behaves as an empty list
// (position 0).
func (s *Store) FindSortedPosition(key []byte, payload []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	b, found, err := s.lookup(key)
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, nil
	}

	row, err := s.readBucket(b)
	if err != nil {
		return 0, err
	}

	target, err := s.padPayload(payload)
	if err != nil {
		return 0, err
	}

	i := 0
	offset := row.Head

	for offset != 0 {
		p, next, err := s.readNode(offset)
		if err != nil {
			return 0, err
		}

		if bytes.Compare(p, target) >= 0 {
			return i, nil
		}

		i++
		offset = next
	}

	return i, nil
}

// Contains reports whether key has ever been Set, without mutating
// anything.
func (s *Store) Contains(key []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	_, found, err := s.lookup(key)

	return found, err
}

// walkToPosition returns the node offset at logical position steps,
// counting from head (position 0).
func (s *Store) walkToPosition(head uint32, steps int) (uint32, error) {
	offset := head

	for n := 0; n < steps; n++ {
		if offset == 0 {
			return 0, fmt.Errorf("position %d past end of list: %w", steps, ErrCorrupt)
		}

		_, next, err := s.readNode(offset)
		if err != nil {
			return 0, err
		}

		offset = next
	}

	return offset, nil
}
