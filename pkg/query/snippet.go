package query

import (
	"context"
	"sort"
	"strings"

	"github.com/quietmark/litesearch/pkg/tokenizer"
)

const (
	openMarker  = `"-`
	closeMarker = `-"`
	ellipsis    = "..."
)

// Snippet builds the ingress/introduction for a matched document: matched
// runs enclosed in straight double quotes, non-adjacent runs separated by
// "...".
func Snippet(
	ctx context.Context, queryWords []string, quotes []int, index map[string][]int, docWords []string,
) (string, error) {
	pairs := quotes
	if len(pairs)%2 == 1 {
		pairs = pairs[:len(pairs)-1]
	}

	quotedIdx := make(map[int]struct{})
	positions := make(map[int]struct{})

	for i := 0; i+1 < len(pairs); i += 2 {
		start, end := pairs[i], pairs[i+1]

		for idx := start; idx < end; idx++ {
			quotedIdx[idx] = struct{}{}
		}

		anchor, ok, err := PhraseMatch(ctx, index, queryWords[start:end])
		if err != nil {
			return "", err
		}

		if !ok {
			continue
		}

		for j := range end - start {
			positions[anchor+j] = struct{}{}
		}
	}

	for i, w := range queryWords {
		if _, inQuote := quotedIdx[i]; inQuote {
			continue
		}

		for _, p := range index[tokenizer.Lower(w)] {
			positions[p] = struct{}{}
		}
	}

	if len(positions) == 0 {
		return "", nil
	}

	sorted := make([]int, 0, len(positions))
	for p := range positions {
		sorted = append(sorted, p)
	}

	sort.Ints(sorted)

	var tokens []string

	for i, p := range sorted {
		runStart := i == 0 || p-sorted[i-1] > 1
		runEnd := i == len(sorted)-1 || sorted[i+1]-p > 1

		if runStart {
			if i > 0 {
				tokens = append(tokens, ellipsis)
			}

			tokens = append(tokens, contextTokens(docWords, p-2, p-1)...)
			tokens = append(tokens, openMarker)
		}

		if p >= 0 && p < len(docWords) {
			tokens = append(tokens, docWords[p])
		}

		if runEnd {
			tokens = append(tokens, closeMarker)
			tokens = append(tokens, contextTokens(docWords, p+1, p+2)...)
		}
	}

	joined := strings.Join(tokens, " ")
	joined = strings.ReplaceAll(joined, openMarker+" ", `"`)
	joined = strings.ReplaceAll(joined, " "+closeMarker, `"`)

	return joined, nil
}

func contextTokens(words []string, positions ...int) []string {
	var out []string

	for _, p := range positions {
		if p >= 0 && p < len(words) {
			out = append(out, words[p])
		}
	}

	return out
}
