package engine

import (
	"errors"

	"github.com/quietmark/litesearch/internal/indexer"
	"github.com/quietmark/litesearch/pkg/storage"
)

// ErrDuplicateURL reports that Add was called with a URL already bound to
// a doc-id.
var ErrDuplicateURL = indexer.ErrDuplicateURL

// ErrRankExhausted reports that Add's rank decremented to zero before a
// free doc-id slot was found.
var ErrRankExhausted = storage.ErrRankExhausted

var (
	errConfigFileRead = errors.New("cannot read config file")
	errConfigInvalid  = errors.New("invalid config file")
	errConfigValue    = errors.New("invalid config value")
)
