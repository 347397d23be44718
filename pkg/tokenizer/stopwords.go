package tokenizer

// DefaultStopWords returns a small set of common English function words,
// used when a Config does not supply its own list.
func DefaultStopWords() map[string]struct{} {
	words := []string{
		"the", "a", "an", "of", "to", "in", "on", "at", "by", "for",
		"and", "or", "but", "nor", "so",
		"is", "are", "was", "were", "be", "been", "being",
		"it", "its", "this", "that", "these", "those",
		"as", "from", "with", "into", "than", "then",
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	return set
}
