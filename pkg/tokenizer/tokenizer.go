// Package tokenizer splits raw text into a sequence of terms plus the
// quote-group boundaries needed for phrase matching.
package tokenizer

import (
	"strings"
	"unicode"
)

// Options configures Tokenize.
type Options struct {
	// LowerCase lower-cases each kept token (ASCII plus å, ä, ö).
	LowerCase bool
}

// Result is a tokenized text.
type Result struct {
	// Words is the ordered sequence of kept tokens.
	Words []string

	// Quotes holds indices into Words. Taken pairwise (the i-th and
	// (i+1)-th entries), they delimit the [start, end) range of a quoted
	// phrase. An unpaired trailing entry means the source text had an odd
	// number of quote marks; callers must ignore it.
	Quotes []int
}

const quoteRune = '"'

func isWordRune(r rune) bool {
	switch r {
	case 'å', 'ä', 'ö', 'Å', 'Ä', 'Ö':
		return true
	}

	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isKeepRune(r rune) bool {
	return isWordRune(r) || r == quoteRune || unicode.IsSpace(r)
}

// Tokenize runs the character-class replacement / quote-surround / split /
// strip pipeline over text.
func Tokenize(text string, opts Options) Result {
	var classified strings.Builder

	for _, r := range text {
		if isKeepRune(r) {
			classified.WriteRune(r)
		} else {
			classified.WriteRune(' ')
		}
	}

	var surrounded strings.Builder

	for _, r := range classified.String() {
		if r == quoteRune {
			surrounded.WriteByte(' ')
			surrounded.WriteRune(r)
			surrounded.WriteByte(' ')
		} else {
			surrounded.WriteRune(r)
		}
	}

	pieces := strings.Fields(surrounded.String())

	var out Result

	k := 0

	for _, piece := range pieces {
		piece = strings.TrimFunc(piece, func(r rune) bool { return !isKeepRune(r) })
		if piece == "" {
			continue
		}

		if piece == `"` {
			out.Quotes = append(out.Quotes, k)
			continue
		}

		if opts.LowerCase {
			piece = lower(piece)
		}

		out.Words = append(out.Words, piece)
		k++
	}

	return out
}

// Lower lower-cases s over the same alphabet Tokenize recognizes: ASCII
// plus å, ä, ö.
func Lower(s string) string {
	return lower(s)
}

func lower(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case 'Å':
			r = 'å'
		case 'Ä':
			r = 'ä'
		case 'Ö':
			r = 'ö'
		default:
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
		}

		b.WriteRune(r)
	}

	return b.String()
}

// IsStopWord reports whether term (already lower-cased) is excluded from
// indexing and querying: fewer than two runes, or present in stopWords.
func IsStopWord(term string, stopWords map[string]struct{}) bool {
	if len([]rune(term)) < 2 {
		return true
	}

	_, ok := stopWords[term]

	return ok
}
