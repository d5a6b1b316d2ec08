// Package memory provides in-memory adapters for the ports interfaces,
// used by tests and single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// FlowStore implements ports.FlowStore in memory.
// Safe for concurrent use.
type FlowStore struct {
	flows map[string]*domain.Flow
	mu    sync.RWMutex
}

// NewFlowStore creates a new in-memory flow store.
func NewFlowStore() *FlowStore {
	return &FlowStore{flows: make(map[string]*domain.Flow)}
}

// Save persists the flow. The stored copy is deep-copied so later edits by
// the caller do not leak into the store.
func (s *FlowStore) Save(ctx context.Context, flow *domain.Flow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[flow.ID] = flow.Clone()
	return nil
}

// Load retrieves a flow by ID. The returned flow is a copy.
func (s *FlowStore) Load(ctx context.Context, flowID string) (*domain.Flow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flow, ok := s.flows[flowID]
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	return flow.Clone(), nil
}

// Delete removes the flow.
func (s *FlowStore) Delete(ctx context.Context, flowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, flowID)
	return nil
}

// List returns all stored flow IDs.
func (s *FlowStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.flows))
	for id := range s.flows {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
