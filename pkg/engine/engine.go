// Package engine is the public façade wiring the tokenizer, indexer, and
// query evaluator over a caller-supplied Storage.
package engine

import (
	"context"
	"fmt"

	"github.com/quietmark/litesearch/internal/indexer"
	"github.com/quietmark/litesearch/pkg/query"
	"github.com/quietmark/litesearch/pkg/storage"
	"github.com/quietmark/litesearch/pkg/storage/diskstore"
	"github.com/quietmark/litesearch/pkg/tokenizer"
)

const defaultMaxCount = 100

// AddRequest is a document submitted to Add.
type AddRequest struct {
	Title string
	Text  string
	URL   string
	Rank  uint32
}

// Result is a single search hit.
type Result = query.Result

// Stats is a read-only snapshot of engine state. TermCount and FileSize are
// zero when the underlying Storage does not support reporting them (see
// storage.TermCounter and storage.FileSizer).
type Stats struct {
	DocumentCount uint64
	TermCount     uint64
	FileSize      int64
}

// Engine is the public search core: Add indexes a document, Search
// answers a free-text query.
type Engine struct {
	storage storage.Storage
	ix      *indexer.Indexer
	eval    *query.Evaluator
}

// New wires an Engine over store using cfg's stop-words and score weights.
// Posting-store geometry in cfg is only meaningful when store is opened
// with OpenDisk.
func New(store storage.Storage, cfg Config) *Engine {
	stopWords := stopWordSet(cfg.StopWords)

	return &Engine{
		storage: store,
		ix:      &indexer.Indexer{Storage: store, StopWords: stopWords},
		eval:    &query.Evaluator{Storage: store, StopWords: stopWords, Weights: cfg.Weights},
	}
}

// OpenDisk opens a disk-backed Engine under dir, sized per cfg's KeySize
// and HashRows. cfg.NodeSize is not used: disk postings always store one
// four-byte doc-id per node. The returned Store must be closed by the
// caller when the engine is no longer needed.
func OpenDisk(dir string, cfg Config) (*Engine, *diskstore.Store, error) {
	store, err := diskstore.Open(diskstore.Options{
		Dir:         dir,
		TermKeySize: cfg.KeySize,
		HashRows:    cfg.HashRows,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open disk engine at %q: %w", dir, err)
	}

	return New(store, cfg), store, nil
}

func stopWordSet(words []string) map[string]struct{} {
	if len(words) == 0 {
		return tokenizer.DefaultStopWords()
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[tokenizer.Lower(w)] = struct{}{}
	}

	return set
}

// Add indexes req, returning its assigned doc-id.
func (e *Engine) Add(ctx context.Context, req AddRequest) (uint32, error) {
	docID, err := e.ix.Add(ctx, indexer.Document{
		Title: req.Title,
		Text:  req.Text,
		URL:   req.URL,
		Rank:  req.Rank,
	})
	if err != nil {
		return 0, err
	}

	return docID, nil
}

// Search answers queryText, returning at most maxCount results ordered by
// descending score (ties broken by ascending doc-id). maxCount <= 0 uses
// the default of 100.
func (e *Engine) Search(ctx context.Context, queryText string, maxCount int) ([]Result, error) {
	if maxCount <= 0 {
		maxCount = defaultMaxCount
	}

	return e.eval.Search(ctx, queryText, maxCount)
}

// Stats reports read-only engine state: document count always, plus term
// count and on-disk file size when the Storage backend supports reporting
// them (for diskstore, the combined size of all of its files).
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	count, err := e.storage.DocumentCount(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("document count: %w", err)
	}

	stats := Stats{DocumentCount: count}

	if tc, ok := e.storage.(storage.TermCounter); ok {
		terms, err := tc.TermCount(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("term count: %w", err)
		}

		stats.TermCount = terms
	}

	if fz, ok := e.storage.(storage.FileSizer); ok {
		size, err := fz.FileSize()
		if err != nil {
			return Stats{}, fmt.Errorf("file size: %w", err)
		}

		stats.FileSize = size
	}

	return stats, nil
}
