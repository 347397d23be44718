package engine_test

import (
	"path/filepath"
	"testing"

	"github.com/quietmark/litesearch/pkg/engine"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := engine.DefaultConfig()

	require.Positive(t, cfg.KeySize)
	require.Positive(t, cfg.HashRows)
	require.Positive(t, cfg.NodeSize)
	require.Equal(t, 100, cfg.Weights.TitleExactMatch)
}

func TestLoadConfigFileMissingYieldsDefaults(t *testing.T) {
	cfg, err := engine.LoadConfigFile(filepath.Join(t.TempDir(), "missing.jsonc"))
	require.NoError(t, err)
	require.Equal(t, engine.DefaultConfig(), cfg)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")

	writeFile(t, path, `{
		// trailing commas and comments are fine, this is hujson
		"hash_rows": 8192,
		"stop_words": ["the", "a"],
		"score_weights": {"title_exact_match": 200, "title_begins": 50, "title_contains_in_beginning": 10, "url_contains": 5},
	}`)

	cfg, err := engine.LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, 8192, cfg.HashRows)
	require.Equal(t, engine.DefaultConfig().KeySize, cfg.KeySize)
	require.Equal(t, []string{"the", "a"}, cfg.StopWords)
	require.Equal(t, 200, cfg.Weights.TitleExactMatch)
}

func TestLoadConfigFileRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")

	writeFile(t, path, `{ not json at all`)

	_, err := engine.LoadConfigFile(path)
	require.Error(t, err)
}

func TestLoadConfigFileRejectsNonPositiveGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")

	writeFile(t, path, `{"hash_rows": -1}`)

	_, err := engine.LoadConfigFile(path)
	require.Error(t, err)
}
