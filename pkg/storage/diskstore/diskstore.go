// Package diskstore is the persistent storage.Storage implementation. Term
// postings and the URL->doc-id lookup are built on pkg/poststore; forward
// records live in a small append-only log with an in-memory offset index
// rebuilt on open.
package diskstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/quietmark/litesearch/internal/bcodec"
	"github.com/quietmark/litesearch/pkg/fs"
	"github.com/quietmark/litesearch/pkg/poststore"
	"github.com/quietmark/litesearch/pkg/storage"
)

// Options configures Open.
type Options struct {
	// Dir is the directory holding the store's files. Created if missing.
	Dir string

	// TermKeySize is the max byte length of an indexed term.
	TermKeySize int

	// URLKeySize is the max byte length of a document URL.
	URLKeySize int

	// HashRows sizes both the term-postings and URL-lookup hash tables.
	HashRows int

	// FS backs the page log's directory creation and file I/O. Defaults to
	// [fs.NewReal]. Tests substitute [fs.NewChaos] to exercise the page
	// log's error handling under injected I/O faults.
	FS fs.FS
}

func (o Options) withDefaults() Options {
	if o.TermKeySize == 0 {
		o.TermKeySize = 64
	}

	if o.URLKeySize == 0 {
		o.URLKeySize = 256
	}

	if o.HashRows == 0 {
		o.HashRows = 4096
	}

	if o.FS == nil {
		o.FS = fs.NewReal()
	}

	return o
}

// Store is the disk-backed storage.Storage.
type Store struct {
	postings *poststore.Store
	urls     *poststore.Store
	pages    *pageLog
}

// Open opens or creates the on-disk store under opts.Dir.
func Open(opts Options) (*Store, error) {
	opts = opts.withDefaults()

	if opts.Dir == "" {
		return nil, fmt.Errorf("dir is required: %w", errInvalidOptions)
	}

	if err := ensureDir(opts.FS, opts.Dir); err != nil {
		return nil, err
	}

	postings, err := poststore.Open(poststore.Options{
		Path:     joinPath(opts.Dir, "postings.bin"),
		KeySize:  opts.TermKeySize,
		HashRows: opts.HashRows,
		NodeSize: bcodec.Size32,
	})
	if err != nil {
		return nil, fmt.Errorf("open postings: %w", err)
	}

	urls, err := poststore.Open(poststore.Options{
		Path:     joinPath(opts.Dir, "urls.bin"),
		KeySize:  opts.URLKeySize,
		HashRows: opts.HashRows,
		NodeSize: bcodec.Size32,
	})
	if err != nil {
		_ = postings.Close()

		return nil, fmt.Errorf("open url index: %w", err)
	}

	pages, err := openPageLog(opts.FS, joinPath(opts.Dir, "pages.log"))
	if err != nil {
		_ = postings.Close()
		_ = urls.Close()

		return nil, fmt.Errorf("open page log: %w", err)
	}

	return &Store{postings: postings, urls: urls, pages: pages}, nil
}

// Close releases the store's file handles.
func (s *Store) Close() error {
	var firstErr error

	for _, closeFn := range []func() error{s.postings.Close, s.urls.Close, s.pages.close} {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// wordIterator skips the sentinel zero doc-id that Set writes as a
// placeholder when a term has no real postings yet (doc-id 0 is reserved
// and never a real document, per the data model).
type wordIterator struct {
	it *poststore.Iterator
}

func (w *wordIterator) Next(_ context.Context) (uint32, bool, error) {
	for {
		payload, _, ok, err := w.it.Next()
		if err != nil {
			return 0, false, fmt.Errorf("word iterator: %w", err)
		}

		if !ok {
			return 0, false, nil
		}

		id := bcodec.Uint32(payload)
		if id == 0 {
			continue
		}

		return id, true, nil
	}
}

func (s *Store) WordIterator(_ context.Context, term string) (storage.WordIterator, error) {
	it, err := s.postings.Iter([]byte(term))
	if err != nil {
		return nil, fmt.Errorf("word iterator %q: %w", term, err)
	}

	return &wordIterator{it: it}, nil
}

func (s *Store) InitTerm(_ context.Context, term string) error {
	exists, err := s.postings.Contains([]byte(term))
	if err != nil {
		return fmt.Errorf("init term %q: %w", term, err)
	}

	if exists {
		return nil
	}

	if err := s.postings.Set([]byte(term), nil); err != nil {
		return fmt.Errorf("init term %q: %w", term, err)
	}

	return nil
}

func (s *Store) ResetTerm(_ context.Context, term string) error {
	if err := s.postings.Set([]byte(term), nil); err != nil {
		return fmt.Errorf("reset term %q: %w", term, err)
	}

	return nil
}

// AddDocID finds docID's sorted insertion point and inserts it, detecting
// an exact duplicate along the way (combining §4.1's find_sorted_position
// and insert_at into one scan).
func (s *Store) AddDocID(_ context.Context, term string, docID uint32) error {
	target := bcodec.AppendUint32(nil, docID)

	it, err := s.postings.Iter([]byte(term))
	if err != nil {
		return fmt.Errorf("add doc id %q: %w", term, err)
	}

	pos := 0

	for {
		payload, _, ok, err := it.Next()
		if err != nil {
			return fmt.Errorf("add doc id %q: %w", term, err)
		}

		if !ok {
			break
		}

		cmp := bytes.Compare(payload, target)
		if cmp == 0 {
			return nil // (term, docID) already present
		}

		if cmp > 0 {
			break
		}

		pos++
	}

	if err := s.postings.InsertAt([]byte(term), pos, target); err != nil {
		return fmt.Errorf("add doc id %q: %w", term, err)
	}

	return nil
}

func (s *Store) InitPage(_ context.Context, docID uint32, rec storage.ForwardRecord) error {
	return s.pages.put(docID, rec)
}

func (s *Store) GetPage(_ context.Context, docID uint32) (storage.ForwardRecord, bool, error) {
	return s.pages.get(docID)
}

func (s *Store) GetURLToPage(_ context.Context, url string) (uint32, bool, error) {
	it, err := s.urls.Iter([]byte(url))
	if err != nil {
		return 0, false, fmt.Errorf("get url %q: %w", url, err)
	}

	payload, _, ok, err := it.Next()
	if err != nil {
		return 0, false, fmt.Errorf("get url %q: %w", url, err)
	}

	if !ok {
		return 0, false, nil
	}

	return bcodec.Uint32(payload), true, nil
}

func (s *Store) SetURLToPage(_ context.Context, url string, docID uint32) error {
	if err := s.urls.Set([]byte(url), bcodec.AppendUint32(nil, docID)); err != nil {
		return fmt.Errorf("set url %q: %w", url, err)
	}

	return nil
}

func (s *Store) ReserveDocID(_ context.Context, proposedRank uint32) (uint32, error) {
	for r := proposedRank; r >= 1; r-- {
		_, exists, err := s.pages.get(r)
		if err != nil {
			return 0, err
		}

		if !exists {
			return r, nil
		}

		if r == 1 {
			break
		}
	}

	return 0, storage.ErrRankExhausted
}

func (s *Store) DocumentCount(_ context.Context) (uint64, error) {
	return s.pages.count(), nil
}

// TermCount implements storage.TermCounter.
func (s *Store) TermCount(_ context.Context) (uint64, error) {
	n, err := s.postings.KeyCount()
	if err != nil {
		return 0, fmt.Errorf("term count: %w", err)
	}

	return n, nil
}

// FileSize implements storage.FileSizer, reporting the combined size of the
// term-postings store, the URL lookup store, and the page log.
func (s *Store) FileSize() (int64, error) {
	postingsSize, err := s.postings.FileSize()
	if err != nil {
		return 0, fmt.Errorf("postings file size: %w", err)
	}

	urlsSize, err := s.urls.FileSize()
	if err != nil {
		return 0, fmt.Errorf("urls file size: %w", err)
	}

	return postingsSize + urlsSize + s.pages.fileSize(), nil
}
