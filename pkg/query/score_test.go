package query_test

import (
	"testing"

	"github.com/quietmark/litesearch/pkg/query"
	"github.com/quietmark/litesearch/pkg/storage"
	"github.com/stretchr/testify/require"
)

func TestScoreTitleExactMatch(t *testing.T) {
	rec := storage.ForwardRecord{
		Title: "Jupiter",
		URL:   "https://en.wikipedia.org/wiki/Jupiter",
		Index: map[string][]int{"jupiter": {0}},
	}

	weights := query.Weights{TitleExactMatch: 10, TitleBegins: 5, TitleContainsInBeginning: 1}

	got := query.Score(rec, []string{"jupiter"}, weights)
	require.Equal(t, 10, got)
}

func TestScoreTitleBeginsBeatsContainsInBeginning(t *testing.T) {
	rec := storage.ForwardRecord{
		Title: "Saturn and its rings",
		Index: map[string][]int{"saturn": {0}},
	}

	weights := query.Weights{TitleExactMatch: 10, TitleBegins: 5, TitleContainsInBeginning: 1}

	got := query.Score(rec, []string{"saturn"}, weights)
	require.Equal(t, 5, got)
}

func TestScoreTitleContainsInBeginning(t *testing.T) {
	rec := storage.ForwardRecord{
		Title: "Giant Planet Saturn",
		Index: map[string][]int{"saturn": {2}},
	}

	weights := query.Weights{TitleExactMatch: 10, TitleBegins: 5, TitleContainsInBeginning: 1}

	got := query.Score(rec, []string{"saturn"}, weights)
	require.Equal(t, 1, got)
}

func TestScoreTitleFamilyIsExclusive(t *testing.T) {
	rec := storage.ForwardRecord{
		Title: "Process",
		Index: map[string][]int{"process": {0}},
	}

	// title_exact_match and title_begins both hold; only the highest
	// priority weight is applied, never both.
	weights := query.Weights{TitleExactMatch: 10, TitleBegins: 5}

	got := query.Score(rec, []string{"process"}, weights)
	require.Equal(t, 10, got)
}

func TestScoreURLContainsIsAdditive(t *testing.T) {
	rec := storage.ForwardRecord{
		Title: "Process",
		URL:   "https://hackapedia.org/process",
		Index: map[string][]int{"process": {0}},
	}

	weights := query.Weights{TitleExactMatch: 10, URLContains: 3}

	got := query.Score(rec, []string{"process"}, weights)
	require.Equal(t, 13, got)
}

func TestScoreZeroWeightsYieldsZero(t *testing.T) {
	rec := storage.ForwardRecord{Title: "Process", Index: map[string][]int{"process": {0}}}

	got := query.Score(rec, []string{"process"}, query.Weights{})
	require.Zero(t, got)
}
