// Package cache provides the read-through cache collaborator for compliance
// reports and product hazard profiles. Reports are stored as raw JSON so a
// warm hit returns a byte-identical report. Concurrent writers may race to
// populate an entry; last-writer-wins is fine because entries are never
// read-modified-written.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"phytoguard/internal/compliance/models"
)

// ErrNotFound is returned when a cache entry does not exist or has expired.
var ErrNotFound = errors.New("cache entry not found")

// Cache is the engine's external read-through cache.
type Cache interface {
	// GetReport returns the raw JSON of a cached report, or ErrNotFound.
	GetReport(ctx context.Context, key string) ([]byte, error)
	// SetReport stores the raw JSON of a report under the report TTL.
	SetReport(ctx context.Context, key string, data []byte) error
	// GetProfiles returns cached hazard profiles, or ErrNotFound.
	GetProfiles(ctx context.Context, key string) ([]models.ProductEnvironmentalProfile, error)
	// SetProfiles stores hazard profiles under the profile TTL.
	SetProfiles(ctx context.Context, key string, profiles []models.ProductEnvironmentalProfile) error
}

// Key builds a deterministic cache key from any JSON-serializable input.
// Equal inputs always hash to the same key; map-free inputs keep the
// serialization stable across processes.
func Key(prefix string, input any) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("serialize cache key input: %w", err)
	}
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:]), nil
}
