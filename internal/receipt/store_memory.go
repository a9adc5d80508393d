package receipt

import (
	"context"
	"sync"

	"github.com/google/uuid"

	dErrors "tally/pkg/domain-errors"
)

// MemoryStore keeps receipts for the lifetime of the process. Two maps are
// held consistent under one mutex: identifiers to receipts, and content
// fingerprints to the identifier first assigned to that content.
type MemoryStore struct {
	mu           sync.RWMutex
	receipts     map[string]Receipt
	fingerprints map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		receipts:     make(map[string]Receipt),
		fingerprints: make(map[string]string),
	}
}

// Submit stores the receipt and returns its identifier. Resubmitting content
// that is already stored returns the original identifier with created=false
// and mutates nothing. The fingerprint check and the insert happen under one
// lock so concurrent identical submissions cannot mint two identifiers.
func (s *MemoryStore) Submit(_ context.Context, r Receipt) (id string, created bool, err error) {
	fingerprint := r.Fingerprint()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.fingerprints[fingerprint]; ok {
		return existing, false, nil
	}

	id = uuid.NewString()
	s.receipts[id] = r
	s.fingerprints[fingerprint] = id
	return id, true, nil
}

// Get returns the receipt stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.receipts[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "no receipt stored under that id")
	}
	return &r, nil
}

// Len reports how many distinct receipts are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}
