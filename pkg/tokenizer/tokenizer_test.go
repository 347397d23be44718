package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/quietmark/litesearch/pkg/tokenizer"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	got := tokenizer.Tokenize("Jupiter, the gas giant!", tokenizer.Options{})
	require.Equal(t, []string{"Jupiter", "the", "gas", "giant"}, got.Words)
	require.Empty(t, got.Quotes)
}

func TestTokenizeLowerCase(t *testing.T) {
	got := tokenizer.Tokenize("Saturn IS the Sixth Planet", tokenizer.Options{LowerCase: true})
	require.Equal(t, []string{"saturn", "is", "the", "sixth", "planet"}, got.Words)
}

func TestTokenizeQuoteMarksRecordBoundaries(t *testing.T) {
	got := tokenizer.Tokenize(`"from the Sun" Moon`, tokenizer.Options{})
	require.Equal(t, []string{"from", "the", "Sun", "Moon"}, got.Words)
	require.Equal(t, []int{0, 3}, got.Quotes)
}

func TestTokenizeUnpairedTrailingQuoteIsOdd(t *testing.T) {
	got := tokenizer.Tokenize(`ancient "civilizations`, tokenizer.Options{})
	require.Equal(t, []string{"ancient", "civilizations"}, got.Words)
	require.Equal(t, []int{1}, got.Quotes)
}

func TestTokenizeKeepsNordicLetters(t *testing.T) {
	got := tokenizer.Tokenize("Åland ö ä", tokenizer.Options{LowerCase: true})
	require.Equal(t, []string{"åland", "ö", "ä"}, got.Words)
}

func TestTokenizeEmptyInputYieldsNoWords(t *testing.T) {
	got := tokenizer.Tokenize("   ", tokenizer.Options{})
	require.Empty(t, got.Words)
	require.Empty(t, got.Quotes)
}

func TestTokenizeRoundTripOnASCIISafeInput(t *testing.T) {
	first := tokenizer.Tokenize(`gas "giant" planet`, tokenizer.Options{})
	normalized := strings.Join(first.Words, " ")

	second := tokenizer.Tokenize(normalized, tokenizer.Options{})

	// The quote markers themselves don't survive a plain space-join of
	// Words (they were stripped into Quotes), so the round trip is over
	// the words only.
	require.Equal(t, first.Words, second.Words)
	require.Empty(t, second.Quotes)
}

func TestIsStopWord(t *testing.T) {
	stop := tokenizer.DefaultStopWords()

	require.True(t, tokenizer.IsStopWord("a", stop))
	require.True(t, tokenizer.IsStopWord("the", stop))
	require.False(t, tokenizer.IsStopWord("giant", stop))
}

func TestIsStopWordShortTermAlwaysStops(t *testing.T) {
	require.False(t, tokenizer.IsStopWord("ok", map[string]struct{}{}))
	require.True(t, tokenizer.IsStopWord("o", map[string]struct{}{}))
}
