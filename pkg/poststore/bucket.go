package poststore

import (
	"bytes"
	"fmt"

	"github.com/quietmark/litesearch/internal/bcodec"
)

// bucketRow is the decoded form of one bucket table row.
type bucketRow struct {
	Key  []byte
	Head uint32
	Tail uint32
}

// padKey zero-pads key to the store's key size, or returns ErrKeyTooLong.
func (s *Store) padKey(key []byte) ([]byte, error) {
	if len(key) > s.keySize {
		return nil, fmt.Errorf("key %q exceeds key_size %d: %w", key, s.keySize, ErrKeyTooLong)
	}

	padded := make([]byte, s.keySize)
	copy(padded, key)

	return padded, nil
}

func (s *Store) readBucket(b uint32) (bucketRow, error) {
	buf := make([]byte, s.rowSize)

	if _, err := s.file.ReadAt(buf, bucketFileOffset(s.keySize, b)); err != nil {
		return bucketRow{}, fmt.Errorf("read bucket %d: %w", b, err)
	}

	return bucketRow{
		Key:  buf[:s.keySize],
		Head: bcodec.Uint32(buf[s.keySize : s.keySize+4]),
		Tail: bcodec.Uint32(buf[s.keySize+4 : s.keySize+8]),
	}, nil
}

func (s *Store) writeBucket(b uint32, row bucketRow) error {
	buf := make([]byte, s.rowSize)
	copy(buf, row.Key)
	bcodec.PutUint32(buf[s.keySize:], row.Head)
	bcodec.PutUint32(buf[s.keySize+4:], row.Tail)

	if _, err := s.file.WriteAt(buf, bucketFileOffset(s.keySize, uint32(b))); err != nil {
		return fmt.Errorf("write bucket %d: %w", b, err)
	}

	return nil
}

// writeBucketHead updates only the head field of a bucket row.
func (s *Store) writeBucketHead(b uint32, head uint32) error {
	var buf [4]byte
	bcodec.PutUint32(buf[:], head)

	off := bucketFileOffset(s.keySize, b) + int64(s.keySize)
	if _, err := s.file.WriteAt(buf[:], off); err != nil {
		return fmt.Errorf("write bucket %d head: %w", b, err)
	}

	return nil
}

// writeBucketTail updates only the tail field of a bucket row.
func (s *Store) writeBucketTail(b uint32, tail uint32) error {
	var buf [4]byte
	bcodec.PutUint32(buf[:], tail)

	off := bucketFileOffset(s.keySize, b) + int64(s.keySize) + 4
	if _, err := s.file.WriteAt(buf[:], off); err != nil {
		return fmt.Errorf("write bucket %d tail: %w", b, err)
	}

	return nil
}

// lookup resolves key to a bucket index using quadratic probing over the
// hash table, per §4.1: probe b = (h + c^2) mod hash_rows for c = 0, 1, 2, ...
// Returns found=true and the bucket holding key, or found=false and the
// first vacant bucket where key may be inserted.
func (s *Store) lookup(key []byte) (b uint32, found bool, err error) {
	padded, err := s.padKey(key)
	if err != nil {
		return 0, false, err
	}

	h := uint64(bcodec.FNV1a32(key)) % uint64(s.hashRows)
	rows := uint64(s.hashRows)

	for c := uint64(0); c < rows; c++ {
		idx := uint32((h + c*c) % rows)

		row, err := s.readBucket(idx)
		if err != nil {
			return 0, false, err
		}

		if row.Head == 0 {
			return idx, false, nil
		}

		if bytes.Equal(row.Key, padded) {
			return idx, true, nil
		}
	}

	return 0, false, ErrBucketFull
}
