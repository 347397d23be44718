package poststore

import "errors"

// Sentinel errors returned by Store operations.
//
// Callers should classify errors with [errors.Is].
var (
	// ErrKeyTooLong indicates a key exceeds the store's configured KeySize.
	ErrKeyTooLong = errors.New("poststore: key too long")

	// ErrPayloadTooLarge indicates a payload exceeds the store's configured NodeSize.
	ErrPayloadTooLarge = errors.New("poststore: payload too large")

	// ErrBucketFull indicates that hash_rows quadratic probes found neither a
	// vacant slot nor a matching key. The probe sequence does not visit every
	// bucket for every table size, so this can be returned while some buckets
	// are still vacant.
	ErrBucketFull = errors.New("poststore: bucket table full")

	// ErrKeyMissing indicates InsertAt or Append was called for a key that was
	// never initialized with Set.
	ErrKeyMissing = errors.New("poststore: key missing")

	// ErrClosed indicates an operation was attempted on a closed Store.
	ErrClosed = errors.New("poststore: closed")

	// ErrInvalidOptions indicates the options passed to Open are invalid.
	ErrInvalidOptions = errors.New("poststore: invalid options")

	// ErrIncompatible indicates an existing file's header does not match the
	// geometry requested in Options.
	ErrIncompatible = errors.New("poststore: incompatible file")

	// ErrCorrupt indicates the file's on-disk structure is inconsistent.
	ErrCorrupt = errors.New("poststore: corrupt")
)
