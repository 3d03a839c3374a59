package models

import (
	dErrors "phytoguard/pkg/domerrors"
)

// PracticeType categorizes the planned field operation.
type PracticeType string

const (
	PracticeSpraying      PracticeType = "spraying"
	PracticeFertilization PracticeType = "fertilization"
	PracticeSeeding       PracticeType = "seeding"
)

// IsValid checks if the practice type is one of the supported enum values.
func (p PracticeType) IsValid() bool {
	switch p {
	case PracticeSpraying, PracticeFertilization, PracticeSeeding:
		return true
	}
	return false
}

// ParsePracticeType creates a PracticeType from a string, validating it.
func ParsePracticeType(s string) (PracticeType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "practice_type is required")
	}
	p := PracticeType(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid practice_type: must be 'spraying', 'fertilization' or 'seeding'")
	}
	return p, nil
}

// WaterBodyType enumerates the kinds of water bodies the buffer rules know.
// Unrecognized inputs resolve to WaterBodyUnknown rather than failing; the
// classifier always falls back to conservative defaults.
type WaterBodyType string

const (
	WaterBodyStream          WaterBodyType = "stream"
	WaterBodyPondLake        WaterBodyType = "pond_lake"
	WaterBodyIrrigationCanal WaterBodyType = "irrigation_canal"
	WaterBodyDrinkingSource  WaterBodyType = "drinking_water_source"
	WaterBodyWetland         WaterBodyType = "wetland"
	WaterBodyUnknown         WaterBodyType = "unknown"
)

// ParseWaterBodyType maps a string to a known water-body type, defaulting to
// WaterBodyUnknown. It never returns an error: unknown types get safe defaults.
func ParseWaterBodyType(s string) WaterBodyType {
	switch t := WaterBodyType(s); t {
	case WaterBodyStream, WaterBodyPondLake, WaterBodyIrrigationCanal,
		WaterBodyDrinkingSource, WaterBodyWetland:
		return t
	}
	return WaterBodyUnknown
}

// EquipmentTier is the graded drift-reduction rating of spraying equipment.
type EquipmentTier string

const (
	EquipmentNone      EquipmentTier = "none"
	EquipmentOneStar   EquipmentTier = "one_star"
	EquipmentThreeStar EquipmentTier = "three_star"
	EquipmentFiveStar  EquipmentTier = "five_star"
)

// IsValid checks if the tier is one of the supported enum values.
func (t EquipmentTier) IsValid() bool {
	switch t {
	case EquipmentNone, EquipmentOneStar, EquipmentThreeStar, EquipmentFiveStar:
		return true
	}
	return false
}

// ParseEquipmentTier creates an EquipmentTier from a string. An empty string
// defaults to EquipmentNone; anything else must be a known tier.
func ParseEquipmentTier(s string) (EquipmentTier, error) {
	if s == "" {
		return EquipmentNone, nil
	}
	t := EquipmentTier(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid equipment_tier: must be 'none', 'one_star', 'three_star' or 'five_star'")
	}
	return t, nil
}

// BufferType identifies the protected target a buffer distance shields.
type BufferType string

const (
	BufferAquatic   BufferType = "aquatic"
	BufferArthropod BufferType = "arthropod"
	BufferPlant     BufferType = "plant"
	BufferDrinking  BufferType = "drinking"
)

// ComplianceStatus is the tri-state verdict for a requirement, extended with
// "error" for reports produced by the top-boundary failure handler.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "compliant"
	StatusNonCompliant ComplianceStatus = "non_compliant"
	StatusUnknown      ComplianceStatus = "unknown"
	StatusError        ComplianceStatus = "error"
)

// AquaticToxicity tiers a product's hazard to aquatic life.
type AquaticToxicity string

const (
	AquaticLow      AquaticToxicity = "low"
	AquaticModerate AquaticToxicity = "moderate"
	AquaticHigh     AquaticToxicity = "high"
	AquaticVeryHigh AquaticToxicity = "very_high"
)

// Rank returns a numeric ordering for precedence (higher = more toxic).
func (t AquaticToxicity) Rank() int {
	switch t {
	case AquaticVeryHigh:
		return 3
	case AquaticHigh:
		return 2
	case AquaticModerate:
		return 1
	default:
		return 0
	}
}

// BeeToxicity tiers a product's hazard to pollinators.
type BeeToxicity string

const (
	BeeNotToxic    BeeToxicity = "not_toxic"
	BeeToxic       BeeToxicity = "toxic"
	BeeHighlyToxic BeeToxicity = "highly_toxic"
)

// Rank returns a numeric ordering for precedence (higher = more toxic).
func (t BeeToxicity) Rank() int {
	switch t {
	case BeeHighlyToxic:
		return 2
	case BeeToxic:
		return 1
	default:
		return 0
	}
}

// RiskLevel is the ordinal environmental risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)
