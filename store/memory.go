package store

import (
	"sync"

	"github.com/Luismorlan/fileshare_in_go/utils"
)

// MemoryStore is a content-addressed in-memory store. The content ref is
// the hex SHA256 of the bytes, mirroring how a real content-addressed
// store derives identifiers. Used in tests and in offline mode.
type MemoryStore struct {
	m     sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(data []byte) (string, error) {
	ref := utils.BytesToHex(utils.SHA256(data))
	s.m.Lock()
	defer s.m.Unlock()
	// Store a private copy so later caller mutation can't corrupt the blob.
	blob := make([]byte, len(data))
	copy(blob, data)
	s.blobs[ref] = blob
	return ref, nil
}

func (s *MemoryStore) Get(contentRef string) ([]byte, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	blob, ok := s.blobs[contentRef]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}
