package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/quietmark/litesearch/pkg/query"
)

// Config holds the engine's tunable parameters: disk posting-store
// geometry, the stop-word list, and score weights.
type Config struct {
	KeySize   int            `json:"key_size"`
	HashRows  int            `json:"hash_rows"`
	NodeSize  int            `json:"node_size"`
	StopWords []string       `json:"stop_words,omitempty"`
	Weights   query.Weights  `json:"score_weights"`
}

// DefaultConfig returns the engine's baseline configuration.
func DefaultConfig() Config {
	return Config{
		KeySize:  64,
		HashRows: 4096,
		NodeSize: 4,
		Weights: query.Weights{
			TitleExactMatch:          100,
			TitleBegins:              50,
			TitleContainsInBeginning: 10,
			URLContains:              5,
		},
	}
}

// LoadConfigFile loads a JSONC config file at path over DefaultConfig. A
// missing file is not an error; it yields the defaults unchanged.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // caller-controlled path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var overlay Config
	if err := json.Unmarshal(standardized, &overlay); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	cfg = mergeConfig(cfg, overlay)

	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.KeySize != 0 {
		base.KeySize = overlay.KeySize
	}

	if overlay.HashRows != 0 {
		base.HashRows = overlay.HashRows
	}

	if overlay.NodeSize != 0 {
		base.NodeSize = overlay.NodeSize
	}

	if len(overlay.StopWords) > 0 {
		base.StopWords = overlay.StopWords
	}

	if overlay.Weights != (query.Weights{}) {
		base.Weights = overlay.Weights
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.KeySize <= 0 {
		return fmt.Errorf("key_size must be positive: %w", errConfigValue)
	}

	if cfg.HashRows <= 0 {
		return fmt.Errorf("hash_rows must be positive: %w", errConfigValue)
	}

	if cfg.NodeSize <= 0 {
		return fmt.Errorf("node_size must be positive: %w", errConfigValue)
	}

	return nil
}
