package indexer

import "errors"

// ErrDuplicateURL reports that a document's URL is already bound to a
// doc-id.
var ErrDuplicateURL = errors.New("indexer: duplicate url")
