// Package storage defines the external collaborator contract the search
// core consumes for forward records, the URL->doc-id lookup, and posting
// iteration. Two implementations exist: pkg/storage/memstore (in-memory)
// and pkg/storage/diskstore (persistent, built on pkg/poststore).
package storage

import "context"

// ForwardRecord is the per-document data kept for snippet construction and
// scoring: original-case tokens, and a term -> positions map built from
// them.
type ForwardRecord struct {
	Title string
	URL   string
	Words []string

	// Index maps a lower-cased term to the ordered list of positions (into
	// Words) at which it occurs.
	Index map[string][]int
}

// WordIterator yields a term's posting list in ascending doc-id order.
type WordIterator interface {
	// Next returns the next doc-id, or ok=false when exhausted.
	Next(ctx context.Context) (docID uint32, ok bool, err error)
}

// Storage is the contract the search core consumes. Implementations are
// single-writer: the core never mutates concurrently.
type Storage interface {
	// WordIterator returns an ascending iterator over term's posting list.
	// A term with no postings yields an iterator that is immediately
	// exhausted.
	WordIterator(ctx context.Context, term string) (WordIterator, error)

	// InitTerm idempotently ensures term has a (possibly empty) posting
	// list.
	InitTerm(ctx context.Context, term string) error

	// ResetTerm idempotently truncates term's posting list to empty.
	ResetTerm(ctx context.Context, term string) error

	// AddDocID inserts docID into term's posting list, preserving ascending
	// order and (term, docID) uniqueness.
	AddDocID(ctx context.Context, term string, docID uint32) error

	// InitPage persists rec under docID.
	InitPage(ctx context.Context, docID uint32, rec ForwardRecord) error

	// GetPage retrieves the forward record for docID.
	GetPage(ctx context.Context, docID uint32) (ForwardRecord, bool, error)

	// GetURLToPage looks up the doc-id bound to url.
	GetURLToPage(ctx context.Context, url string) (uint32, bool, error)

	// SetURLToPage binds url to docID. Binding an already-bound URL is a
	// caller error; callers must check GetURLToPage first.
	SetURLToPage(ctx context.Context, url string, docID uint32) error

	// ReserveDocID returns the largest r <= proposedRank with no existing
	// record, decrementing until a free slot is found.
	ReserveDocID(ctx context.Context, proposedRank uint32) (uint32, error)

	// DocumentCount returns the number of documents ever bound via
	// InitPage.
	DocumentCount(ctx context.Context) (uint64, error)
}

// TermCounter is an optional capability: Storage backends that can report
// the number of distinct terms ever passed to InitTerm implement it.
type TermCounter interface {
	TermCount(ctx context.Context) (uint64, error)
}

// FileSizer is an optional capability: Storage backends kept entirely in
// on-disk files implement it, reporting their total size in bytes.
type FileSizer interface {
	FileSize() (int64, error)
}
