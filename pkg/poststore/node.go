package poststore

import (
	"fmt"

	"github.com/quietmark/litesearch/internal/bcodec"
)

// padPayload zero-pads payload to the store's node size, or returns
// ErrPayloadTooLarge.
func (s *Store) padPayload(payload []byte) ([]byte, error) {
	if len(payload) > s.nodePay {
		return nil, fmt.Errorf("payload length %d exceeds node_size %d: %w", len(payload), s.nodePay, ErrPayloadTooLarge)
	}

	padded := make([]byte, s.nodePay)
	copy(padded, payload)

	return padded, nil
}

func (s *Store) readNode(offset uint32) (payload []byte, next uint32, err error) {
	buf := make([]byte, s.nodeSz)

	if _, err := s.file.ReadAt(buf, int64(offset)); err != nil {
		return nil, 0, fmt.Errorf("read node at %d: %w", offset, err)
	}

	return buf[:s.nodePay], bcodec.Uint32(buf[s.nodePay:]), nil
}

func (s *Store) writeNode(offset uint32, payload []byte, next uint32) error {
	buf := make([]byte, s.nodeSz)
	copy(buf, payload)
	bcodec.PutUint32(buf[s.nodePay:], next)

	if _, err := s.file.WriteAt(buf, int64(offset)); err != nil {
		return fmt.Errorf("write node at %d: %w", offset, err)
	}

	return nil
}

// writeNodeNext patches only the next-offset field of an existing node.
func (s *Store) writeNodeNext(offset uint32, next uint32) error {
	var buf [4]byte
	bcodec.PutUint32(buf[:], next)

	if _, err := s.file.WriteAt(buf[:], int64(offset)+int64(s.nodePay)); err != nil {
		return fmt.Errorf("write node %d next: %w", offset, err)
	}

	return nil
}

// allocateNode bump-allocates a new node, writes its contents, and persists
// the advanced free pointer. The free pointer is written after the node
// contents, per §5's crash-safety note.
func (s *Store) allocateNode(payload []byte, next uint32) (uint32, error) {
	padded, err := s.padPayload(payload)
	if err != nil {
		return 0, err
	}

	offset := s.freeOff

	if err := s.writeNode(offset, padded, next); err != nil {
		return 0, err
	}

	s.freeOff += uint32(s.nodeSz)

	if err := s.writeHeader(); err != nil {
		return 0, err
	}

	return offset, nil
}
