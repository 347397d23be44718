package indexer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quietmark/litesearch/internal/indexer"
	"github.com/quietmark/litesearch/pkg/storage"
	"github.com/quietmark/litesearch/pkg/storage/memstore"
	"github.com/quietmark/litesearch/pkg/tokenizer"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsDocIDFromRank(t *testing.T) {
	ctx := context.Background()
	ix := &indexer.Indexer{Storage: memstore.New(), StopWords: tokenizer.DefaultStopWords()}

	docID, err := ix.Add(ctx, indexer.Document{
		Title: "Jupiter",
		Text:  "the largest planet",
		URL:   "https://en.wikipedia.org/wiki/Jupiter",
		Rank:  5,
	})
	require.NoError(t, err)
	require.Equal(t, uint32(5), docID)
}

func TestAddRejectsDuplicateURL(t *testing.T) {
	ctx := context.Background()
	ix := &indexer.Indexer{Storage: memstore.New(), StopWords: tokenizer.DefaultStopWords()}

	doc := indexer.Document{Title: "Jupiter", Text: "gas giant", URL: "https://x/jupiter", Rank: 1}

	_, err := ix.Add(ctx, doc)
	require.NoError(t, err)

	_, err = ix.Add(ctx, doc)
	require.True(t, errors.Is(err, indexer.ErrDuplicateURL))
}

func TestAddBuildsForwardRecordAndPostings(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	docID, err := ix.Add(ctx, indexer.Document{
		Title: "Saturn",
		Text:  "Saturn is the sixth planet",
		URL:   "https://x/saturn",
		Rank:  3,
	})
	require.NoError(t, err)

	rec, ok, err := store.GetPage(ctx, docID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Saturn", rec.Title)
	require.Equal(t, []int{0, 1}, rec.Index["saturn"])

	it, err := store.WordIterator(ctx, "planet")
	require.NoError(t, err)

	id, ok, err := it.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, docID, id)
}

func TestAddSkipsStopWordsWhenIndexingPostings(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	_, err := ix.Add(ctx, indexer.Document{Title: "x", Text: "the giant", URL: "https://x/a", Rank: 1})
	require.NoError(t, err)

	it, err := store.WordIterator(ctx, "the")
	require.NoError(t, err)

	_, ok, err := it.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAddDedupsRepeatedTermWithinDocument(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ix := &indexer.Indexer{Storage: store, StopWords: tokenizer.DefaultStopWords()}

	docID, err := ix.Add(ctx, indexer.Document{
		Title: "x",
		Text:  "giant giant giant",
		URL:   "https://x/a",
		Rank:  1,
	})
	require.NoError(t, err)

	it, err := store.WordIterator(ctx, "giant")
	require.NoError(t, err)

	var ids []uint32

	for {
		id, ok, err := it.Next(ctx)
		require.NoError(t, err)

		if !ok {
			break
		}

		ids = append(ids, id)
	}

	require.Equal(t, []uint32{docID}, ids)
}

var _ storage.Storage = (*memstore.Store)(nil)
