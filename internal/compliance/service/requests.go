package service

import (
	"time"

	"phytoguard/internal/compliance/models"
	dErrors "phytoguard/pkg/domerrors"
)

// maxProductIDs bounds one check so a single request cannot turn the bulk
// registry fetch into an unbounded scan.
const maxProductIDs = 200

// CheckRequest is the domain-level input of one compliance check.
type CheckRequest struct {
	PracticeType    models.PracticeType
	Location        string
	CropCode        string
	FieldSizeHa     *float64
	ApplicationDate *time.Time
	Impact          models.EnvironmentalImpact
	ProductIDs      []string
}

// Validate enforces basic type/range checks. Malformed inputs are surfaced
// immediately and never silently defaulted.
func (r CheckRequest) Validate() error {
	if !r.PracticeType.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "practice_type is required and must be a known practice")
	}
	if r.Impact.WaterDistanceM != nil && *r.Impact.WaterDistanceM < 0 {
		return dErrors.New(dErrors.CodeValidation, "water_distance_m must not be negative")
	}
	if r.Impact.WaterBodyWidthM != nil && *r.Impact.WaterBodyWidthM < 0 {
		return dErrors.New(dErrors.CodeValidation, "water_body_width_m must not be negative")
	}
	if r.FieldSizeHa != nil && *r.FieldSizeHa < 0 {
		return dErrors.New(dErrors.CodeValidation, "field_size_ha must not be negative")
	}
	if r.Impact.EquipmentTier != "" && !r.Impact.EquipmentTier.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid equipment_tier")
	}
	if len(r.ProductIDs) > maxProductIDs {
		return dErrors.New(dErrors.CodeValidation, "too many product ids in a single check")
	}
	for _, id := range r.ProductIDs {
		if id == "" {
			return dErrors.New(dErrors.CodeValidation, "product ids must not be empty")
		}
	}
	return nil
}

// keyInput is the canonical, deterministic serialization input for the
// report cache key. Field order is fixed; identical requests always produce
// identical keys.
type keyInput struct {
	Practice    models.PracticeType        `json:"practice"`
	Location    string                     `json:"location"`
	Impact      models.EnvironmentalImpact `json:"impact"`
	ProductIDs  []string                   `json:"product_ids"`
	CropCode    string                     `json:"crop_code"`
	FieldSizeHa *float64                   `json:"field_size_ha"`
	Date        *time.Time                 `json:"date"`
}

func (r CheckRequest) cacheKeyInput() keyInput {
	return keyInput{
		Practice:    r.PracticeType,
		Location:    r.Location,
		Impact:      r.Impact,
		ProductIDs:  r.ProductIDs,
		CropCode:    r.CropCode,
		FieldSizeHa: r.FieldSizeHa,
		Date:        r.ApplicationDate,
	}
}
