package query

import (
	"context"

	"github.com/quietmark/litesearch/pkg/tokenizer"
)

// PhraseMatch reports whether terms occur as a consecutive run somewhere in
// a document's per-term position index, per the shifted-position-list
// intersection: term j's positions are each shifted left by j, and the
// phrase is present iff the shifted lists share a value — that shared
// value is the phrase's anchor (start) position.
func PhraseMatch(ctx context.Context, index map[string][]int, terms []string) (int, bool, error) {
	if len(terms) == 0 {
		return 0, false, nil
	}

	iters := make([]Iterator[int], len(terms))

	for j, term := range terms {
		positions := index[tokenizer.Lower(term)]
		shifted := make([]int, len(positions))

		for i, p := range positions {
			shifted[i] = p - j
		}

		iters[j] = SliceIterator(shifted)
	}

	anchors, err := Merge[int](ctx, iters, 1, nil)
	if err != nil {
		return 0, false, err
	}

	if len(anchors) == 0 {
		return 0, false, nil
	}

	return anchors[0], true, nil
}
