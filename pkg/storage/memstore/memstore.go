// Package memstore is the in-memory Storage implementation: an ordered
// slice per term for postings, and plain maps for pages and the URL
// lookup.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/quietmark/litesearch/pkg/storage"
)

// Store is an in-memory storage.Storage.
type Store struct {
	mu sync.Mutex

	postings map[string][]uint32
	pages    map[uint32]storage.ForwardRecord
	urls     map[string]uint32
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		postings: make(map[string][]uint32),
		pages:    make(map[uint32]storage.ForwardRecord),
		urls:     make(map[string]uint32),
	}
}

// wordIterator walks a snapshot of a term's posting slice.
type wordIterator struct {
	ids []uint32
	pos int
}

func (it *wordIterator) Next(_ context.Context) (uint32, bool, error) {
	if it.pos >= len(it.ids) {
		return 0, false, nil
	}

	id := it.ids[it.pos]
	it.pos++

	return id, true, nil
}

func (s *Store) WordIterator(_ context.Context, term string) (storage.WordIterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.postings[term]
	snapshot := make([]uint32, len(ids))
	copy(snapshot, ids)

	return &wordIterator{ids: snapshot}, nil
}

func (s *Store) InitTerm(_ context.Context, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postings[term]; !ok {
		s.postings[term] = nil
	}

	return nil
}

func (s *Store) ResetTerm(_ context.Context, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postings[term] = nil

	return nil
}

func (s *Store) AddDocID(_ context.Context, term string, docID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.postings[term]

	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= docID })
	if i < len(ids) && ids[i] == docID {
		return nil // (term, docID) already present; uniqueness per §3
	}

	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = docID
	s.postings[term] = ids

	return nil
}

func (s *Store) InitPage(_ context.Context, docID uint32, rec storage.ForwardRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages[docID] = rec

	return nil
}

func (s *Store) GetPage(_ context.Context, docID uint32) (storage.ForwardRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.pages[docID]

	return rec, ok, nil
}

func (s *Store) GetURLToPage(_ context.Context, url string) (uint32, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.urls[url]

	return id, ok, nil
}

func (s *Store) SetURLToPage(_ context.Context, url string, docID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.urls[url] = docID

	return nil
}

func (s *Store) ReserveDocID(_ context.Context, proposedRank uint32) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for r := proposedRank; r >= 1; r-- {
		if _, exists := s.pages[r]; !exists {
			return r, nil
		}

		if r == 1 {
			break
		}
	}

	return 0, storage.ErrRankExhausted
}

func (s *Store) DocumentCount(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.pages)), nil
}

// TermCount implements storage.TermCounter.
func (s *Store) TermCount(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.postings)), nil
}
