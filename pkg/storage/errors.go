package storage

import "errors"

// ErrRankExhausted indicates ReserveDocID decremented the proposed rank to
// zero before finding a free doc-id slot.
var ErrRankExhausted = errors.New("storage: rank exhausted")
