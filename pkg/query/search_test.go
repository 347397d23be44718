package query_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/quietmark/litesearch/internal/indexer"
	"github.com/quietmark/litesearch/pkg/query"
	"github.com/quietmark/litesearch/pkg/storage/memstore"
	"github.com/quietmark/litesearch/pkg/tokenizer"
	"github.com/stretchr/testify/require"
)

func TestSearchBagOfWordsReturnsSnippet(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	_, err := ix.Add(ctx, indexer.Document{
		Title: "Jupiter", Text: "the largest gas giant", URL: "https://x/jupiter", Rank: 2,
	})
	require.NoError(t, err)

	eval := &query.Evaluator{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	results, err := eval.Search(ctx, "giant", 100)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "https://x/jupiter", results[0].URL)
	require.Contains(t, results[0].Introduction, `"giant"`)
}

func TestSearchPhraseRequiresAdjacency(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	_, err := ix.Add(ctx, indexer.Document{
		Title: "Saturn", Text: "is the sixth planet from the Sun", URL: "https://x/saturn", Rank: 1,
	})
	require.NoError(t, err)

	eval := &query.Evaluator{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	results, err := eval.Search(ctx, `"sixth planet"`, 100)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = eval.Search(ctx, `"planet sixth"`, 100)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchStopWordOnlyQueryIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	_, err := ix.Add(ctx, indexer.Document{
		Title: "x", Text: "the giant planet", URL: "https://x/a", Rank: 1,
	})
	require.NoError(t, err)

	eval := &query.Evaluator{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	results, err := eval.Search(ctx, "the of a", 100)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	_, err := ix.Add(ctx, indexer.Document{
		Title: "x", Text: "Giant Planet", URL: "https://x/a", Rank: 1,
	})
	require.NoError(t, err)

	eval := &query.Evaluator{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	results, err := eval.Search(ctx, "GIANT", 100)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	_, err := ix.Add(ctx, indexer.Document{
		Title: "x", Text: "petrochemicals from refineries", URL: "https://x/a", Rank: 1,
	})
	require.NoError(t, err)

	eval := &query.Evaluator{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	results, err := eval.Search(ctx, "from country he", 100)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchURLContainsBreaksTie(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	// first added gets the lower (better) doc-id, so without scoring it
	// would sort first; its URL doesn't contain the query term.
	_, err := ix.Add(ctx, indexer.Document{
		Title: "Process", Text: "", URL: "https://hackapedia.org/article", Rank: 1,
	})
	require.NoError(t, err)

	_, err = ix.Add(ctx, indexer.Document{
		Title: "Process", Text: "", URL: "https://en.wikipedia.org/wiki/process", Rank: 2,
	})
	require.NoError(t, err)

	eval := &query.Evaluator{
		Storage:   store,
		StopWords: tokenizer.DefaultStopWords(),
		Weights:   query.Weights{URLContains: 3},
	}

	results, err := eval.Search(ctx, "process", 100)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://en.wikipedia.org/wiki/process", results[0].URL)
}

func TestSearchMaxCountTruncates(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	for i, url := range []string{"https://x/a", "https://x/b", "https://x/c"} {
		_, err := ix.Add(ctx, indexer.Document{
			Title: "x", Text: "giant", URL: url, Rank: uint32(i + 1), //nolint:gosec // small loop bound
		})
		require.NoError(t, err)
	}

	eval := &query.Evaluator{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	results, err := eval.Search(ctx, "giant", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestSearchOrdersByScoreThenAscendingDocID(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	// lower rank -> lower (better) doc-id; "Nebula" has no title match so it
	// should sort after the two "Giant" titles despite its better doc-id.
	docs := []indexer.Document{
		{Title: "Nebula", Text: "a giant cloud of dust", URL: "https://x/nebula", Rank: 1},
		{Title: "Giant Squid", Text: "a cephalopod", URL: "https://x/squid", Rank: 2},
		{Title: "Giant Panda", Text: "a bear", URL: "https://x/panda", Rank: 3},
	}

	for _, doc := range docs {
		_, err := ix.Add(ctx, doc)
		require.NoError(t, err)
	}

	eval := &query.Evaluator{
		Storage:   store,
		StopWords: tokenizer.DefaultStopWords(),
		Weights:   query.Weights{TitleBegins: 10},
	}

	results, err := eval.Search(ctx, "giant", 100)
	require.NoError(t, err)

	var urls []string
	for _, r := range results {
		urls = append(urls, r.URL)
	}

	want := []string{"https://x/squid", "https://x/panda", "https://x/nebula"}
	if diff := cmp.Diff(want, urls); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}
}
