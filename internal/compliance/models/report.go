package models

import "time"

// EnvironmentalImpact is the environmental block of an application context:
// everything the buffer rules need to know about the field's surroundings.
type EnvironmentalImpact struct {
	// WaterDistanceM is the observed distance to the nearest water body in
	// meters. Nil means the caller could not measure it.
	WaterDistanceM   *float64      `json:"water_distance_m,omitempty"`
	WaterBodyType    WaterBodyType `json:"water_body_type"`
	WaterBodyWidthM  *float64      `json:"water_body_width_m,omitempty"`
	EquipmentTier    EquipmentTier `json:"equipment_tier"`
	VegetationBuffer bool          `json:"vegetation_buffer"`
}

// ApplicationContext describes one planned agrochemical application. It is
// supplied per call and never persisted by the engine.
type ApplicationContext struct {
	PracticeType    PracticeType        `json:"practice_type"`
	Location        string              `json:"location,omitempty"`
	CropCode        string              `json:"crop_code,omitempty"`
	FieldSizeHa     *float64            `json:"field_size_ha,omitempty"`
	ApplicationDate *time.Time          `json:"application_date,omitempty"`
	Impact          EnvironmentalImpact `json:"environmental_impact"`
}

// WaterBodyClassification is the rule-table view of a water body.
type WaterBodyClassification struct {
	Type              WaterBodyType `json:"type"`
	BaseDistanceM     float64       `json:"base_distance_m"`
	ReductionAllowed  bool          `json:"reduction_allowed"`
	SpecialProtection string        `json:"special_protection,omitempty"`
	DrinkingSource    bool          `json:"drinking_source"`
	FishBearing       bool          `json:"fish_bearing"`
}

// BufferRequirement is one buffer-distance obligation, after reduction rules
// have been applied.
//
// Invariants: RequiredDistanceM > 0 whenever the buffer type applies;
// ReducedDistanceM >= FloorDistanceM; total reduction never exceeds the cap.
type BufferRequirement struct {
	BufferType          BufferType       `json:"buffer_type"`
	RequiredDistanceM   float64          `json:"required_distance_m"`
	ActualDistanceM     *float64         `json:"actual_distance_m,omitempty"`
	ReducedDistanceM    float64          `json:"reduced_distance_m"`
	ReductionApplied    bool             `json:"reduction_applied"`
	ReductionConditions []string         `json:"reduction_conditions,omitempty"`
	FloorDistanceM      float64          `json:"floor_distance_m"`
	Compliance          ComplianceStatus `json:"compliance"`
	SourceProductID     string           `json:"source_product_id,omitempty"`
}

// EffectiveDistanceM is the distance the applicator must actually respect:
// the reduced distance when a reduction applies, otherwise the base.
func (r BufferRequirement) EffectiveDistanceM() float64 {
	if r.ReductionApplied {
		return r.ReducedDistanceM
	}
	return r.RequiredDistanceM
}

// ProductEnvironmentalProfile captures the per-product hazard tiers derived
// from the product's hazard-phrase set.
type ProductEnvironmentalProfile struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name,omitempty"`
	CMR             bool            `json:"cmr"`
	AquaticToxicity AquaticToxicity `json:"aquatic_toxicity"`
	BeeToxicity     BeeToxicity     `json:"bee_toxicity"`
}

// EnvironmentalRiskAssessment is the weighted risk summary of a check.
type EnvironmentalRiskAssessment struct {
	Level   RiskLevel `json:"level"`
	Score   float64   `json:"score"`
	Factors []string  `json:"factors,omitempty"`
}

// ComplianceReport is the aggregate result of a compliance check. It is built
// fresh per call and never mutated after being returned; callers may memoize
// it externally by content-hash key.
type ComplianceReport struct {
	ReportID             string                        `json:"report_id"`
	OverallCompliance    ComplianceStatus              `json:"overall_compliance"`
	WaterBody            *WaterBodyClassification      `json:"water_body,omitempty"`
	Requirements         []BufferRequirement           `json:"requirements"`
	Profiles             []ProductEnvironmentalProfile `json:"profiles,omitempty"`
	Risk                 EnvironmentalRiskAssessment   `json:"risk"`
	Recommendations      []string                      `json:"recommendations,omitempty"`
	CriticalWarnings     []string                      `json:"critical_warnings,omitempty"`
	SeasonalRestrictions []string                      `json:"seasonal_restrictions,omitempty"`
	Warnings             []string                      `json:"warnings,omitempty"`
	Degraded             bool                          `json:"degraded,omitempty"`
	GeneratedAt          time.Time                     `json:"generated_at"`
}
