package poststore

import (
	"fmt"

	"github.com/quietmark/litesearch/internal/bcodec"
)

// fileHeader is the decoded form of the store's fixed-size file header.
type fileHeader struct {
	freeOff  uint32
	keySize  uint32
	hashRows uint32
	nodeSize uint32
}

// readHeader reads the free-offset and geometry header fields.
func (s *Store) readHeader() (fileHeader, error) {
	var buf [headerSize]byte

	if _, err := s.file.ReadAt(buf[:], 0); err != nil {
		return fileHeader{}, fmt.Errorf("read header: %w", err)
	}

	return fileHeader{
		freeOff:  bcodec.Uint32(buf[headerFreeOffOffset:]),
		keySize:  bcodec.Uint32(buf[headerKeySizeOffset:]),
		hashRows: bcodec.Uint32(buf[headerHashRowsOffset:]),
		nodeSize: bcodec.Uint32(buf[headerNodeSizeOffset:]),
	}, nil
}

// writeHeader persists the current free offset and geometry. Per §5, the
// free pointer is updated after the node write it accompanies, so a crash
// between the two leaves an orphaned node rather than a dangling pointer.
// The geometry fields never change after creation; rewriting them alongside
// freeOff is harmless.
func (s *Store) writeHeader() error {
	var buf [headerSize]byte

	bcodec.PutUint32(buf[headerFreeOffOffset:], s.freeOff)
	bcodec.PutUint32(buf[headerKeySizeOffset:], uint32(s.keySize))
	bcodec.PutUint32(buf[headerHashRowsOffset:], uint32(s.hashRows))
	bcodec.PutUint32(buf[headerNodeSizeOffset:], uint32(s.nodePay))

	if _, err := s.file.WriteAt(buf[:], 0); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	return nil
}
