package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/leagueworks/schedparse/internal/model"
)

// Store is the persistence collaborator boundary. The pipeline saves each
// record best-effort and never depends on success: a storage failure must
// not block returning the parsed result to the caller.
type Store interface {
	// Save persists a record with its raw segment text under an opaque
	// constraint-set identifier, returning the stored-record identifier.
	Save(ctx context.Context, record model.ParsedConstraint, rawText, setID string) (string, error)
}

// NopStore discards records. It is the default when no collaborator is
// installed.
type NopStore struct{}

// Save discards the record and returns an empty identifier
func (NopStore) Save(ctx context.Context, record model.ParsedConstraint, rawText, setID string) (string, error) {
	return "", nil
}

// MemoryStore keeps records in memory, mainly for tests and ad-hoc
// inspection
type MemoryStore struct {
	mu      sync.Mutex
	records []StoredRecord
}

// StoredRecord is one persisted entry
type StoredRecord struct {
	ID      string
	SetID   string
	RawText string
	Record  model.ParsedConstraint
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends the record and returns a sequential identifier
func (s *MemoryStore) Save(ctx context.Context, record model.ParsedConstraint, rawText, setID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("rec-%d", len(s.records)+1)
	s.records = append(s.records, StoredRecord{
		ID:      id,
		SetID:   setID,
		RawText: rawText,
		Record:  record,
	})
	return id, nil
}

// Records returns a copy of everything saved so far
func (s *MemoryStore) Records() []StoredRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StoredRecord, len(s.records))
	copy(out, s.records)
	return out
}
