// Package memory provides in-memory store adapters, used as the default
// backend for tests and single-process deployments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aryarajalves/zapflow/pkg/domain"
)

// Store implements ports.FunnelStore and ports.MappingStore in memory.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	funnels  map[domain.FunnelID][]byte
	mappings map[string][]byte
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		funnels:  make(map[domain.FunnelID][]byte),
		mappings: make(map[string][]byte),
	}
}

// SaveFunnel persists the funnel. Documents are stored serialized so callers
// can't mutate stored state through shared pointers.
func (s *Store) SaveFunnel(ctx context.Context, funnel *domain.FunnelDefinition) error {
	data, err := json.Marshal(funnel)
	if err != nil {
		return fmt.Errorf("failed to marshal funnel: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.funnels[funnel.ID] = data
	return nil
}

// LoadFunnel retrieves a funnel by ID.
func (s *Store) LoadFunnel(ctx context.Context, id domain.FunnelID) (*domain.FunnelDefinition, error) {
	s.mu.RLock()
	data, ok := s.funnels[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrFunnelNotFound
	}

	var funnel domain.FunnelDefinition
	if err := json.Unmarshal(data, &funnel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal funnel: %w", err)
	}
	return &funnel, nil
}

// DeleteFunnel removes a funnel.
func (s *Store) DeleteFunnel(ctx context.Context, id domain.FunnelID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.funnels, id)
	return nil
}

// ListFunnels returns all stored funnel IDs.
func (s *Store) ListFunnels(ctx context.Context) ([]domain.FunnelID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]domain.FunnelID, 0, len(s.funnels))
	for id := range s.funnels {
		ids = append(ids, id)
	}
	return ids, nil
}

// SaveMapping persists the webhook mapping.
func (s *Store) SaveMapping(ctx context.Context, mapping *domain.WebhookMapping) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[mapping.ID] = data
	return nil
}

// LoadMapping retrieves a mapping by ID.
func (s *Store) LoadMapping(ctx context.Context, id string) (*domain.WebhookMapping, error) {
	s.mu.RLock()
	data, ok := s.mappings[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrMappingNotFound
	}

	var mapping domain.WebhookMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mapping: %w", err)
	}
	return &mapping, nil
}

// DeleteMapping removes a mapping.
func (s *Store) DeleteMapping(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mappings, id)
	return nil
}
