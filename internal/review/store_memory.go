package review

import (
	"context"
	"sync"

	"github.com/savegress/vaxtriage/pkg/models"
)

// MemoryStore is an in-process Store used in tests and for ephemeral
// runs. It loses all state on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]models.ReviewState
	audit  map[string][]*AuditEvent
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]models.ReviewState),
		audit:  make(map[string][]*AuditEvent),
	}
}

// Get returns the stored state for a record id, or nil when unseen.
func (s *MemoryStore) Get(ctx context.Context, docID string) (*models.ReviewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[docID]
	if !ok {
		return nil, nil
	}
	out := st
	return &out, nil
}

// Set writes the full state for a record id.
func (s *MemoryStore) Set(ctx context.Context, state *models.ReviewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.DocID] = *state
	return nil
}

// Delete removes the entry for a record id.
func (s *MemoryStore) Delete(ctx context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, docID)
	return nil
}

// AppendAudit records one disposition change.
func (s *MemoryStore) AppendAudit(ctx context.Context, event *AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := *event
	s.audit[event.DocID] = append(s.audit[event.DocID], &ev)
	return nil
}

// ListAudit returns the audit trail for a record id, oldest first.
func (s *MemoryStore) ListAudit(ctx context.Context, docID string) ([]*AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.audit[docID]
	out := make([]*AuditEvent, len(events))
	copy(out, events)
	return out, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
