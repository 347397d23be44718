// Package indexer builds the forward record and posting-list entries for a
// single document, per the add pipeline.
package indexer

import (
	"context"
	"fmt"

	"github.com/quietmark/litesearch/pkg/storage"
	"github.com/quietmark/litesearch/pkg/tokenizer"
)

// Document is the caller-supplied input to Add.
type Document struct {
	Title string
	Text  string
	URL   string
	Rank  uint32
}

// Indexer turns Documents into posting-store entries and forward records
// against a Storage.
type Indexer struct {
	Storage   storage.Storage
	StopWords map[string]struct{}
}

// Add indexes doc, returning its assigned doc-id. The doc-id equals the
// largest value <= doc.Rank with no existing record.
func (ix *Indexer) Add(ctx context.Context, doc Document) (uint32, error) {
	tokens := tokenizer.Tokenize(doc.Title+" "+doc.Text, tokenizer.Options{LowerCase: false})

	if _, exists, err := ix.Storage.GetURLToPage(ctx, doc.URL); err != nil {
		return 0, fmt.Errorf("check url %q: %w", doc.URL, err)
	} else if exists {
		return 0, fmt.Errorf("%q: %w", doc.URL, ErrDuplicateURL)
	}

	docID, err := ix.Storage.ReserveDocID(ctx, doc.Rank)
	if err != nil {
		return 0, fmt.Errorf("reserve doc id for rank %d: %w", doc.Rank, err)
	}

	if err := ix.Storage.SetURLToPage(ctx, doc.URL, docID); err != nil {
		return 0, fmt.Errorf("bind url %q: %w", doc.URL, err)
	}

	perDocIndex := make(map[string][]int)

	for pos, word := range tokens.Words {
		term := tokenizer.Lower(word)
		perDocIndex[term] = append(perDocIndex[term], pos)
	}

	rec := storage.ForwardRecord{
		Title: doc.Title,
		URL:   doc.URL,
		Words: tokens.Words,
		Index: perDocIndex,
	}

	if err := ix.Storage.InitPage(ctx, docID, rec); err != nil {
		return 0, fmt.Errorf("persist page %d: %w", docID, err)
	}

	indexed := make(map[string]struct{}, len(perDocIndex))

	for _, word := range tokens.Words {
		term := tokenizer.Lower(word)

		if tokenizer.IsStopWord(term, ix.StopWords) {
			continue
		}

		if _, done := indexed[term]; done {
			continue
		}

		indexed[term] = struct{}{}

		if err := ix.Storage.InitTerm(ctx, term); err != nil {
			return 0, fmt.Errorf("init term %q: %w", term, err)
		}

		if err := ix.Storage.AddDocID(ctx, term, docID); err != nil {
			return 0, fmt.Errorf("add doc id to term %q: %w", term, err)
		}
	}

	return docID, nil
}
