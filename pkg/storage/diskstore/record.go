package diskstore

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/quietmark/litesearch/internal/bcodec"
	"github.com/quietmark/litesearch/pkg/fs"
	"github.com/quietmark/litesearch/pkg/storage"
)

// frameHeaderSize is docID (4 bytes) + payload length (4 bytes).
const frameHeaderSize = 2 * bcodec.Size32

// pageLog is an append-only log of JSON-encoded storage.ForwardRecord
// frames, each prefixed with its doc-id and byte length. An in-memory index
// of offset/length per doc-id is rebuilt by scanning the whole file on open,
// the same forward-scan-on-open approach internal/store's WAL uses to
// rebuild its in-memory state.
type pageLog struct {
	mu sync.Mutex

	fsys fs.FS
	path string
	file fs.File
	size int64

	index map[uint32]pageLocation
}

type pageLocation struct {
	offset int64
	length uint32
}

func openPageLog(fsys fs.FS, path string) (*pageLog, error) {
	file, err := fsys.OpenFile(path, osAppendCreateRDWR, 0o644) //nolint:gosec // caller-controlled path
	if err != nil {
		return nil, fmt.Errorf("open page log %q: %w", path, err)
	}

	pl := &pageLog{fsys: fsys, path: path, file: file, index: make(map[uint32]pageLocation)}

	if err := pl.rebuildIndex(); err != nil {
		_ = file.Close()

		return nil, err
	}

	return pl, nil
}

func (p *pageLog) rebuildIndex() error {
	var offset int64

	header := make([]byte, frameHeaderSize)

	for {
		if _, err := readFullAt(p.file, header, offset); err != nil {
			if err == io.EOF { //nolint:errorlint // sentinel from readFullAt
				break
			}

			return fmt.Errorf("scan page log %q: %w", p.path, err)
		}

		docID := bcodec.Uint32(header[:bcodec.Size32])
		length := bcodec.Uint32(header[bcodec.Size32:])

		p.index[docID] = pageLocation{offset: offset + frameHeaderSize, length: length}
		offset += frameHeaderSize + int64(length)
	}

	p.size = offset

	return nil
}

func (p *pageLog) put(docID uint32, rec storage.ForwardRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode page %d: %w", docID, err)
	}

	frame := make([]byte, 0, frameHeaderSize+len(payload))
	frame = bcodec.AppendUint32(frame, docID)
	frame = bcodec.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)

	n, err := p.file.Write(frame)
	if err != nil {
		return fmt.Errorf("append page %d: %w", docID, err)
	}

	p.index[docID] = pageLocation{offset: p.size + frameHeaderSize, length: uint32(len(payload))}
	p.size += int64(n)

	return nil
}

func (p *pageLog) get(docID uint32) (storage.ForwardRecord, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	loc, ok := p.index[docID]
	if !ok {
		return storage.ForwardRecord{}, false, nil
	}

	buf := make([]byte, loc.length)
	if _, err := readFullAt(p.file, buf, loc.offset); err != nil {
		return storage.ForwardRecord{}, false, fmt.Errorf("read page %d: %w", docID, err)
	}

	var rec storage.ForwardRecord
	if err := json.Unmarshal(buf, &rec); err != nil {
		return storage.ForwardRecord{}, false, fmt.Errorf("decode page %d: %w", docID, err)
	}

	return rec, true, nil
}

func (p *pageLog) count() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return uint64(len(p.index))
}

func (p *pageLog) fileSize() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.size
}

func (p *pageLog) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.file.Close(); err != nil {
		return fmt.Errorf("close page log %q: %w", p.path, err)
	}

	return nil
}

// readFullAt reads exactly len(buf) bytes starting at offset, using Seek
// plus Read since fs.File does not expose pread-style random access. It
// returns io.EOF if offset is at or past the current end of file.
func readFullAt(f fs.File, buf []byte, offset int64) (int, error) {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek: %w", err)
	}

	return io.ReadFull(f, buf)
}
