package poststore

import "github.com/quietmark/litesearch/internal/bcodec"

// Header layout: free-node offset, then the geometry the file was created
// with (key size, hash rows, node size), each a big-endian u32. The
// geometry fields let Open detect a caller requesting a different layout
// than the one the file was built with.
const (
	headerFreeOffOffset  = 0
	headerKeySizeOffset  = bcodec.Size32
	headerHashRowsOffset = 2 * bcodec.Size32
	headerNodeSizeOffset = 3 * bcodec.Size32

	// headerSize is the fixed size, in bytes, of the file header.
	headerSize = 4 * bcodec.Size32
)

// bucket layout: key bytes (zero-padded to keySize), head offset (u32),
// tail offset (u32).
const bucketOffsetFieldSize = bcodec.Size32

// node layout: payload bytes, next offset (u32).
const nodeNextFieldSize = bcodec.Size32

// hashRowSize returns the on-disk size of one bucket row.
func hashRowSize(keySize int) int {
	return keySize + bucketOffsetFieldSize + bucketOffsetFieldSize
}

// nodeSize returns the on-disk size of one node (payload + next pointer).
func nodeSize(nodeSizePayload int) int {
	return nodeSizePayload + nodeNextFieldSize
}

// bucketTableSize returns the total size of the bucket table region.
func bucketTableSize(keySize, hashRows int) int64 {
	return int64(hashRows) * int64(hashRowSize(keySize))
}

// bucketFileOffset returns the file offset of bucket b.
func bucketFileOffset(keySize int, b uint32) int64 {
	return int64(headerSize) + int64(b)*int64(hashRowSize(keySize))
}

// initialFreeOffset is the value the header holds right after creation:
// header_size + hash_rows*hash_row_size.
func initialFreeOffset(keySize, hashRows int) uint32 {
	return uint32(int64(headerSize) + bucketTableSize(keySize, hashRows))
}
