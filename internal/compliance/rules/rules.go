// Package rules holds the declarative rule tables the compliance engine runs
// on: equipment drift-reduction percentages, water-body baselines and floors,
// hazard-phrase category sets, severity weights, risk thresholds, and the
// seasonal restriction calendar.
//
// A Set is constructed once, never mutated, and injected into the engine
// components. Keeping the tables as data rather than branching code lets each
// table be tested independently and swapped for doubles.
package rules

import (
	"time"

	"phytoguard/internal/compliance/models"
)

// WaterBodyRule is the protection baseline for one water-body type.
type WaterBodyRule struct {
	BaseDistanceM     float64
	FloorDistanceM    float64
	ReductionAllowed  bool
	SpecialProtection string
	DrinkingSource    bool
	FishBearing       bool
}

// SeasonalRule maps a practice type and calendar months to a restriction notice.
type SeasonalRule struct {
	Practice models.PracticeType
	Months   map[time.Month]bool
	Notice   string
}

// RiskThresholds are the fixed score cut-offs for risk levels.
type RiskThresholds struct {
	Critical float64
	High     float64
	Moderate float64
	// CriticalNonCompliantCount forces critical when more than this many
	// requirements are non-compliant, regardless of score.
	CriticalNonCompliantCount int
}

// Factor tags used as keys into the impact-weight table.
const (
	FactorBufferAquatic   = "buffer_aquatic"
	FactorBufferArthropod = "buffer_arthropod"
	FactorBufferPlant     = "buffer_plant"
	FactorBufferDrinking  = "buffer_drinking"
	FactorCMR             = "hazard_cmr"
	FactorAquaticVeryHigh = "hazard_aquatic_very_high"
	FactorAquaticHigh     = "hazard_aquatic_high"
	FactorBeeHighlyToxic  = "hazard_bee_highly_toxic"
	FactorBeeToxic        = "hazard_bee_toxic"
)

// Set is the complete, immutable rule configuration for the engine.
type Set struct {
	// EquipmentReduction maps a drift-reduction tier to the fraction of the
	// base distance it legally removes.
	EquipmentReduction map[models.EquipmentTier]float64
	// VegetationBonus is the additional reduction fraction for a vegetation buffer.
	VegetationBonus float64
	// MaxTotalReduction caps the combined reduction fraction.
	MaxTotalReduction float64

	WaterBodies   map[models.WaterBodyType]WaterBodyRule
	DefaultFloorM float64

	// Hazard-phrase category sets.
	CMRPhrases   map[string]bool
	AquaticTiers map[string]models.AquaticToxicity
	BeeTiers     map[string]models.BeeToxicity

	// Risk scoring tables.
	ImpactWeights     map[string]float64
	ComplianceWeights map[models.ComplianceStatus]float64
	Thresholds        RiskThresholds

	Seasonal []SeasonalRule
}

// Default returns the encoded rule set for the supported jurisdiction.
func Default() *Set {
	return &Set{
		EquipmentReduction: map[models.EquipmentTier]float64{
			models.EquipmentNone:      0,
			models.EquipmentOneStar:   0.25,
			models.EquipmentThreeStar: 0.33,
			models.EquipmentFiveStar:  0.50,
		},
		VegetationBonus:   0.20,
		MaxTotalReduction: 0.66,

		WaterBodies: map[models.WaterBodyType]WaterBodyRule{
			models.WaterBodyStream: {
				BaseDistanceM:    5,
				FloorDistanceM:   5,
				ReductionAllowed: true,
				FishBearing:      true,
			},
			models.WaterBodyPondLake: {
				BaseDistanceM:    10,
				FloorDistanceM:   5,
				ReductionAllowed: true,
				FishBearing:      true,
			},
			models.WaterBodyIrrigationCanal: {
				BaseDistanceM:    5,
				FloorDistanceM:   5,
				ReductionAllowed: true,
			},
			models.WaterBodyWetland: {
				BaseDistanceM:     20,
				FloorDistanceM:    10,
				ReductionAllowed:  false,
				SpecialProtection: "Wetland: protected habitat, no reduction of the untreated zone is permitted",
				FishBearing:       true,
			},
			models.WaterBodyDrinkingSource: {
				BaseDistanceM:     50,
				FloorDistanceM:    50,
				ReductionAllowed:  false,
				SpecialProtection: "Drinking-water catchment: full buffer distance applies without exception",
				DrinkingSource:    true,
			},
			models.WaterBodyUnknown: {
				BaseDistanceM:    5,
				FloorDistanceM:   5,
				ReductionAllowed: true,
			},
		},
		DefaultFloorM: 5,

		CMRPhrases: map[string]bool{
			"H340": true, "H341": true,
			"H350": true, "H351": true,
			"H360": true, "H361": true, "H362": true,
		},
		AquaticTiers: map[string]models.AquaticToxicity{
			"H400": models.AquaticVeryHigh,
			"H410": models.AquaticVeryHigh,
			"H411": models.AquaticHigh,
			"H412": models.AquaticModerate,
			"H413": models.AquaticModerate,
		},
		BeeTiers: map[string]models.BeeToxicity{
			"SPe8": models.BeeHighlyToxic,
			"R57":  models.BeeToxic,
		},

		ImpactWeights: map[string]float64{
			FactorBufferDrinking:  1.0,
			FactorBufferAquatic:   0.9,
			FactorBufferArthropod: 0.6,
			FactorBufferPlant:     0.5,
			FactorCMR:             0.7,
			FactorAquaticVeryHigh: 0.6,
			FactorAquaticHigh:     0.4,
			FactorBeeHighlyToxic:  0.5,
			FactorBeeToxic:        0.3,
		},
		ComplianceWeights: map[models.ComplianceStatus]float64{
			models.StatusCompliant:    0.1,
			models.StatusNonCompliant: 1.0,
			models.StatusUnknown:      0.5,
		},
		Thresholds: RiskThresholds{
			Critical:                  0.8,
			High:                      0.6,
			Moderate:                  0.4,
			CriticalNonCompliantCount: 2,
		},

		Seasonal: []SeasonalRule{
			{
				Practice: models.PracticeFertilization,
				Months: map[time.Month]bool{
					time.November: true, time.December: true,
					time.January: true, time.February: true,
				},
				Notice: "Fertilizer spreading is banned from November through February in nitrate-vulnerable zones",
			},
			{
				Practice: models.PracticeSpraying,
				Months: map[time.Month]bool{
					time.April: true, time.May: true, time.June: true,
				},
				Notice: "Flowering period: spray outside pollinator foraging hours and check bee-toxicity labels",
			},
		},
	}
}

// WaterBodyFor returns the rule for a water-body type, falling back to the
// unknown-type rule so lookups are always total.
func (s *Set) WaterBodyFor(t models.WaterBodyType) WaterBodyRule {
	if rule, ok := s.WaterBodies[t]; ok {
		return rule
	}
	return s.WaterBodies[models.WaterBodyUnknown]
}

// FloorFor returns the minimum distance the reduced buffer may reach for a
// water-body type.
func (s *Set) FloorFor(t models.WaterBodyType) float64 {
	if rule, ok := s.WaterBodies[t]; ok {
		return rule.FloorDistanceM
	}
	return s.DefaultFloorM
}

// ReductionFor returns the reduction fraction an equipment tier earns.
// Unknown tiers earn nothing.
func (s *Set) ReductionFor(tier models.EquipmentTier) float64 {
	return s.EquipmentReduction[tier]
}

// BufferFactor maps a buffer type to its impact-weight factor tag.
func BufferFactor(t models.BufferType) string {
	switch t {
	case models.BufferDrinking:
		return FactorBufferDrinking
	case models.BufferArthropod:
		return FactorBufferArthropod
	case models.BufferPlant:
		return FactorBufferPlant
	default:
		return FactorBufferAquatic
	}
}
