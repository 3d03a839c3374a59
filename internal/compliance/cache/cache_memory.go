package cache

import (
	"context"
	"sync"
	"time"

	"phytoguard/internal/compliance/models"
)

type entry struct {
	data     []byte
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired() bool {
	return time.Since(e.storedAt) >= e.ttl
}

// InMemoryCache is a TTL cache for unit tests and single-instance runs.
type InMemoryCache struct {
	mu         sync.RWMutex
	reports    map[string]entry
	profiles   map[string][]models.ProductEnvironmentalProfile
	profileExp map[string]entry
	reportTTL  time.Duration
	profileTTL time.Duration
}

// NewInMemory creates an in-memory cache with the given TTLs.
func NewInMemory(reportTTL, profileTTL time.Duration) *InMemoryCache {
	return &InMemoryCache{
		reports:    make(map[string]entry),
		profiles:   make(map[string][]models.ProductEnvironmentalProfile),
		profileExp: make(map[string]entry),
		reportTTL:  reportTTL,
		profileTTL: profileTTL,
	}
}

func (c *InMemoryCache) GetReport(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.reports[key]; ok && !e.expired() {
		return e.data, nil
	}
	return nil, ErrNotFound
}

func (c *InMemoryCache) SetReport(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[key] = entry{data: data, storedAt: time.Now(), ttl: c.reportTTL}
	return nil
}

func (c *InMemoryCache) GetProfiles(_ context.Context, key string) ([]models.ProductEnvironmentalProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.profileExp[key]; ok && !e.expired() {
		return c.profiles[key], nil
	}
	return nil, ErrNotFound
}

func (c *InMemoryCache) SetProfiles(_ context.Context, key string, profiles []models.ProductEnvironmentalProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[key] = profiles
	c.profileExp[key] = entry{storedAt: time.Now(), ttl: c.profileTTL}
	return nil
}
