// Package registry defines the product-registry collaborator: the engine's
// only external data source. It resolves product identifiers to per-buffer
// usage distances and hazard-phrase associations.
package registry

import (
	"phytoguard/internal/compliance/models"
)

// UsageRow is one authorized-use record for a product: the base untreated
// distance required for one buffer type.
type UsageRow struct {
	ProductID  string            `json:"product_id"`
	BufferType models.BufferType `json:"buffer_type"`
	DistanceM  float64           `json:"distance_m"`
}

// ProductHazard is the resolved hazard-phrase set for a product.
type ProductHazard struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Phrases   []string `json:"phrases"`
}
