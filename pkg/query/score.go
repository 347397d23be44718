package query

import (
	"github.com/quietmark/litesearch/pkg/storage"
	"github.com/quietmark/litesearch/pkg/tokenizer"
)

// Weights assigns points to the title-match family (exclusive, first
// satisfied wins) and the additive url_contains signal. A zero Weights
// leaves every score at zero, so ordering reduces to ascending doc-id.
type Weights struct {
	TitleExactMatch          int `json:"title_exact_match"`
	TitleBegins              int `json:"title_begins"`
	TitleContainsInBeginning int `json:"title_contains_in_beginning"`
	URLContains              int `json:"url_contains"`
}

// Score computes a candidate document's score against the lower-cased
// query terms. The terms need not be distinct.
func Score(rec storage.ForwardRecord, terms []string, weights Weights) int {
	titleLen := len(tokenizer.Tokenize(rec.Title, tokenizer.Options{}).Words)

	score := 0

	switch {
	case isTitleExactMatch(rec, terms, titleLen):
		score += weights.TitleExactMatch
	case isTitleBegins(rec, terms):
		score += weights.TitleBegins
	case isTitleContainsInBeginning(rec, terms, titleLen):
		score += weights.TitleContainsInBeginning
	}

	if isURLContains(rec.URL, terms) {
		score += weights.URLContains
	}

	return score
}

func isTitleExactMatch(rec storage.ForwardRecord, terms []string, titleLen int) bool {
	if titleLen == 0 {
		return false
	}

	seen := make(map[int]struct{}, titleLen)

	for _, term := range terms {
		for _, p := range rec.Index[tokenizer.Lower(term)] {
			if p < titleLen {
				seen[p] = struct{}{}
			}
		}
	}

	if len(seen) != titleLen {
		return false
	}

	for p := 0; p < titleLen; p++ {
		if _, ok := seen[p]; !ok {
			return false
		}
	}

	return true
}

func isTitleBegins(rec storage.ForwardRecord, terms []string) bool {
	for _, term := range terms {
		for _, p := range rec.Index[tokenizer.Lower(term)] {
			if p == 0 {
				return true
			}
		}
	}

	return false
}

func isTitleContainsInBeginning(rec storage.ForwardRecord, terms []string, titleLen int) bool {
	min := -1

	for _, term := range terms {
		for _, p := range rec.Index[tokenizer.Lower(term)] {
			if p >= titleLen {
				continue
			}

			if min == -1 || p < min {
				min = p
			}
		}
	}

	return min >= 0 && min < 3
}

func isURLContains(url string, terms []string) bool {
	tokens := tokenizer.Tokenize(url, tokenizer.Options{LowerCase: true})

	set := make(map[string]struct{}, len(tokens.Words))
	for _, w := range tokens.Words {
		set[w] = struct{}{}
	}

	for _, term := range terms {
		if _, ok := set[tokenizer.Lower(term)]; !ok {
			return false
		}
	}

	return true
}
