package store

import (
	"context"
	"sync"

	"phytoguard/internal/registry"
)

type productEntry struct {
	hazard registry.ProductHazard
	usage  []registry.UsageRow
}

// InMemoryStore is an in-memory registry gateway for unit tests and local
// runs without a database.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[string]productEntry
}

// NewInMemory creates an empty in-memory registry.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[string]productEntry),
	}
}

// AddProduct registers a product with its hazard phrases and usage rows.
func (s *InMemoryStore) AddProduct(hazard registry.ProductHazard, usage ...registry.UsageRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[hazard.ProductID] = productEntry{hazard: hazard, usage: usage}
}

// UsageRowsByProduct returns usage rows for every resolvable id in one pass.
func (s *InMemoryStore) UsageRowsByProduct(_ context.Context, ids []string) (map[string][]registry.UsageRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[string][]registry.UsageRow, len(ids))
	for _, id := range ids {
		if entry, ok := s.products[id]; ok && len(entry.usage) > 0 {
			rows[id] = append([]registry.UsageRow(nil), entry.usage...)
		}
	}
	return rows, nil
}

// HazardPhrasesByProduct returns hazard phrases for every resolvable id in one pass.
func (s *InMemoryStore) HazardPhrasesByProduct(_ context.Context, ids []string) (map[string]registry.ProductHazard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hazards := make(map[string]registry.ProductHazard, len(ids))
	for _, id := range ids {
		if entry, ok := s.products[id]; ok {
			hazards[id] = entry.hazard
		}
	}
	return hazards, nil
}
