package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/quietmark/litesearch/pkg/storage"
	"github.com/quietmark/litesearch/pkg/tokenizer"
)

// mergeCandidateCap bounds the sorted-merge intersection before scoring and
// truncation to the caller's requested max_count.
const mergeCandidateCap = 100

// Result is a single search hit.
type Result struct {
	Title        string
	URL          string
	Introduction string
}

// Evaluator answers search queries against a Storage.
type Evaluator struct {
	Storage   storage.Storage
	StopWords map[string]struct{}
	Weights   Weights
}

// Search tokenizes queryText, intersects posting iterators for its
// non-stop terms with a phrase-adjacency filter, scores and orders the
// survivors, and builds a snippet for each of up to maxCount results.
func (e *Evaluator) Search(ctx context.Context, queryText string, maxCount int) ([]Result, error) {
	tokens := tokenizer.Tokenize(queryText, tokenizer.Options{})

	var nonStop []string

	for _, w := range tokens.Words {
		if !tokenizer.IsStopWord(tokenizer.Lower(w), e.StopWords) {
			nonStop = append(nonStop, w)
		}
	}

	if len(nonStop) == 0 {
		return nil, nil
	}

	iters := make([]Iterator[uint32], len(nonStop))
	lowerTerms := make([]string, len(nonStop))

	for i, w := range nonStop {
		lower := tokenizer.Lower(w)
		lowerTerms[i] = lower

		it, err := e.Storage.WordIterator(ctx, lower)
		if err != nil {
			return nil, fmt.Errorf("word iterator %q: %w", w, err)
		}

		iters[i] = WrapWordIterator(it)
	}

	candidates, err := Merge[uint32](ctx, iters, mergeCandidateCap, e.quoteOK(tokens.Words, tokens.Quotes))
	if err != nil {
		return nil, fmt.Errorf("intersect query terms: %w", err)
	}

	type scoredDoc struct {
		docID uint32
		score int
	}

	seen := make(map[uint32]struct{}, len(candidates))
	recs := make(map[uint32]storage.ForwardRecord, len(candidates))
	rows := make([]scoredDoc, 0, len(candidates))

	for _, docID := range candidates {
		if _, dup := seen[docID]; dup {
			continue
		}

		seen[docID] = struct{}{}

		rec, ok, err := e.Storage.GetPage(ctx, docID)
		if err != nil {
			return nil, fmt.Errorf("get page %d: %w", docID, err)
		}

		if !ok {
			continue
		}

		recs[docID] = rec
		rows = append(rows, scoredDoc{docID: docID, score: Score(rec, lowerTerms, e.Weights)})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}

		return rows[i].docID < rows[j].docID
	})

	if maxCount > 0 && len(rows) > maxCount {
		rows = rows[:maxCount]
	}

	results := make([]Result, 0, len(rows))

	for _, row := range rows {
		rec := recs[row.docID]

		intro, err := Snippet(ctx, tokens.Words, tokens.Quotes, rec.Index, rec.Words)
		if err != nil {
			return nil, fmt.Errorf("build snippet for doc %d: %w", row.docID, err)
		}

		results = append(results, Result{Title: rec.Title, URL: rec.URL, Introduction: intro})
	}

	return results, nil
}

// quoteOK returns the merge accept predicate: true when there are no
// quoted ranges, or at least one of them is satisfied as an adjacent
// phrase in the candidate document.
func (e *Evaluator) quoteOK(queryWords []string, quotes []int) AcceptFunc[uint32] {
	pairs := quotes
	if len(pairs)%2 == 1 {
		pairs = pairs[:len(pairs)-1]
	}

	return func(ctx context.Context, docID uint32) (bool, error) {
		if len(pairs) == 0 {
			return true, nil
		}

		rec, ok, err := e.Storage.GetPage(ctx, docID)
		if err != nil {
			return false, fmt.Errorf("get page %d: %w", docID, err)
		}

		if !ok {
			return false, nil
		}

		for i := 0; i+1 < len(pairs); i += 2 {
			_, matched, err := PhraseMatch(ctx, rec.Index, queryWords[pairs[i]:pairs[i+1]])
			if err != nil {
				return false, err
			}

			if matched {
				return true, nil
			}
		}

		return false, nil
	}
}
