// Package poststore implements the persistent, append-friendly on-disk hash
// map described by the posting-store component: keys are term byte strings,
// values are singly-linked lists of fixed-size node payloads, laid out in a
// single file with open-addressed (quadratic-probe) bucket resolution.
//
// The same structure backs the inverted index (term -> sorted doc-id list),
// but poststore itself has no notion of terms or documents; it is a generic
// fixed-key/fixed-record persistent hash table.
package poststore

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/quietmark/litesearch/internal/bcodec"
)

// Options configures Open.
type Options struct {
	// Path is the filesystem path to the store file.
	Path string

	// KeySize is the maximum number of bytes per key. Keys are zero-padded
	// to this length on disk; keys longer than KeySize are rejected.
	KeySize int

	// HashRows is the number of buckets in the hash table.
	HashRows int

	// NodeSize is the maximum number of payload bytes stored per node.
	NodeSize int
}

func (o Options) validate() error {
	if o.Path == "" {
		return fmt.Errorf("path is required: %w", ErrInvalidOptions)
	}

	if o.KeySize < 1 {
		return fmt.Errorf("key_size must be >= 1, got %d: %w", o.KeySize, ErrInvalidOptions)
	}

	if o.HashRows < 1 {
		return fmt.Errorf("hash_rows must be >= 1, got %d: %w", o.HashRows, ErrInvalidOptions)
	}

	if o.NodeSize < 1 {
		return fmt.Errorf("node_size must be >= 1, got %d: %w", o.NodeSize, ErrInvalidOptions)
	}

	return nil
}

// Store is a persistent hash table whose value per key is a linked list of
// fixed-size node payloads. See layout.go for the on-disk layout.
//
// A Store caches a single *os.File. It is not safe for concurrent use: the
// posting-store is designed for one logical writer/reader at a time (see
// the engine's concurrency model).
type Store struct {
	mu sync.Mutex

	file     *os.File
	keySize  int
	hashRows int
	nodePay  int

	rowSize  int
	nodeSz   int
	freeOff  uint32
	closed   bool
}

// Open opens an existing store file, or creates one if it does not exist.
//
// When creating, the header is initialized and the bucket area zeroed per
// the lifecycle rule: "the posting-store file is created on first open with
// the header initialized and the bucket area zeroed."
func Open(opts Options) (*Store, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	info, statErr := os.Stat(opts.Path)
	switch {
	case statErr == nil:
		// existing file, fall through to open below
	case os.IsNotExist(statErr):
		if err := createEmpty(opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("stat %s: %w", opts.Path, statErr)
	}

	file, err := os.OpenFile(opts.Path, os.O_RDWR, 0o644) //nolint:gosec // caller-controlled path
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Path, err)
	}

	s := &Store{
		file:     file,
		keySize:  opts.KeySize,
		hashRows: opts.HashRows,
		nodePay:  opts.NodeSize,
		rowSize:  hashRowSize(opts.KeySize),
		nodeSz:   nodeSize(opts.NodeSize),
	}

	if info != nil && info.Size() < int64(headerSize) {
		_ = file.Close()

		return nil, fmt.Errorf("file %s smaller than header (%d < %d): %w",
			opts.Path, info.Size(), headerSize, ErrCorrupt)
	}

	hdr, err := s.readHeader()
	if err != nil {
		_ = file.Close()

		return nil, err
	}

	if hdr.keySize != uint32(opts.KeySize) || hdr.hashRows != uint32(opts.HashRows) || hdr.nodeSize != uint32(opts.NodeSize) {
		_ = file.Close()

		return nil, fmt.Errorf(
			"%s: file geometry (key_size=%d, hash_rows=%d, node_size=%d) does not match requested (key_size=%d, hash_rows=%d, node_size=%d): %w",
			opts.Path, hdr.keySize, hdr.hashRows, hdr.nodeSize, opts.KeySize, opts.HashRows, opts.NodeSize, ErrIncompatible)
	}

	minSize := int64(headerSize) + bucketTableSize(opts.KeySize, opts.HashRows)

	if info != nil && info.Size() < minSize {
		_ = file.Close()

		return nil, fmt.Errorf("file %s smaller than header+buckets (%d < %d): %w",
			opts.Path, info.Size(), minSize, ErrCorrupt)
	}

	if int64(hdr.freeOff) < minSize {
		_ = file.Close()

		return nil, fmt.Errorf("free offset %d precedes bucket table end %d: %w", hdr.freeOff, minSize, ErrCorrupt)
	}

	s.freeOff = hdr.freeOff

	return s, nil
}

// createEmpty writes a fresh store file atomically: a header recording the
// store's geometry and the free-node offset, followed by a zeroed bucket
// table.
func createEmpty(opts Options) error {
	size := int64(headerSize) + bucketTableSize(opts.KeySize, opts.HashRows)
	buf := make([]byte, size)

	freeOff := initialFreeOffset(opts.KeySize, opts.HashRows)
	bcodec.PutUint32(buf[headerFreeOffOffset:], freeOff)
	bcodec.PutUint32(buf[headerKeySizeOffset:], uint32(opts.KeySize))
	bcodec.PutUint32(buf[headerHashRowsOffset:], uint32(opts.HashRows))
	bcodec.PutUint32(buf[headerNodeSizeOffset:], uint32(opts.NodeSize))

	if err := atomic.WriteFile(opts.Path, bytes.NewReader(buf)); err != nil {
		return fmt.Errorf("create %s: %w", opts.Path, err)
	}

	return nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// KeyCount scans the bucket table and returns the number of distinct keys
// ever Set, including keys whose list was later emptied by the caller.
func (s *Store) KeyCount() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	var n uint64

	for b := uint32(0); b < uint32(s.hashRows); b++ {
		row, err := s.readBucket(b)
		if err != nil {
			return 0, err
		}

		if row.Head != 0 {
			n++
		}
	}

	return n, nil
}

// FileSize returns the current size, in bytes, of the store's file.
func (s *Store) FileSize() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	info, err := s.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat: %w", err)
	}

	return info.Size(), nil
}
