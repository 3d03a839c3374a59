// Package reduction computes legally permitted buffer-distance reductions
// from drift-reducing equipment and vegetation buffers.
package reduction

import (
	"fmt"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
	dErrors "phytoguard/pkg/domerrors"
)

// Result is the outcome of applying the reduction rules to one base distance.
type Result struct {
	// ReducedDistanceM is the distance after reduction, never below the floor.
	ReducedDistanceM float64
	// ReductionApplied is true when any reduction actually lowered the base.
	ReductionApplied bool
	// Conditions lists, in order, which inputs produced the reduction.
	Conditions []string
	// FloorDistanceM is the floor used for this water-body type.
	FloorDistanceM float64
	// Clamped is true when the naive reduced distance fell below the floor.
	Clamped bool
	// TierForFloor is the lowest equipment tier that would bring the base
	// down to the floor given the vegetation flag, or empty if none can.
	TierForFloor models.EquipmentTier
}

// Calculator applies the equipment/vegetation reduction rules.
type Calculator struct {
	rules *rules.Set
}

// New constructs a calculator over an immutable rule set.
func New(ruleSet *rules.Set) (*Calculator, error) {
	if ruleSet == nil {
		return nil, fmt.Errorf("rule set is required")
	}
	return &Calculator{rules: ruleSet}, nil
}

// tiersAscending orders tiers by the reduction they earn.
var tiersAscending = []models.EquipmentTier{
	models.EquipmentOneStar,
	models.EquipmentThreeStar,
	models.EquipmentFiveStar,
}

// Reduce computes the reduced buffer distance for one base requirement.
//
// Drinking-water sources and any water body whose rule forbids reduction keep
// the base distance unchanged. The combined reduction fraction is capped, and
// the result never falls below the floor for the water-body type.
func (c *Calculator) Reduce(baseM float64, tier models.EquipmentTier, vegetationBuffer bool, waterBody models.WaterBodyType) (Result, error) {
	if baseM <= 0 {
		return Result{}, dErrors.New(dErrors.CodeValidation, "base distance must be positive")
	}

	rule := c.rules.WaterBodyFor(waterBody)
	floor := rule.FloorDistanceM
	result := Result{
		ReducedDistanceM: baseM,
		FloorDistanceM:   floor,
	}

	if !rule.ReductionAllowed {
		return result, nil
	}
	result.TierForFloor = c.tierForFloor(baseM, floor, vegetationBuffer)

	total := c.rules.ReductionFor(tier)
	if total > 0 {
		result.Conditions = append(result.Conditions,
			fmt.Sprintf("%s drift-reduction equipment: -%.0f%%", tier, total*100))
	}
	if vegetationBuffer {
		total += c.rules.VegetationBonus
		result.Conditions = append(result.Conditions,
			fmt.Sprintf("vegetation buffer: -%.0f%%", c.rules.VegetationBonus*100))
	}
	if total > c.rules.MaxTotalReduction {
		total = c.rules.MaxTotalReduction
		result.Conditions = append(result.Conditions,
			fmt.Sprintf("total reduction capped at %.0f%%", c.rules.MaxTotalReduction*100))
	}
	if total <= 0 {
		return result, nil
	}

	reduced := baseM * (1 - total)
	if reduced < floor {
		// The floor bounds reductions; it never raises a requirement whose
		// base already sits below it.
		reduced = floor
		if reduced > baseM {
			reduced = baseM
		}
		result.Clamped = true
		result.Conditions = append(result.Conditions,
			fmt.Sprintf("clamped to the %.0f m floor", floor))
	}

	result.ReducedDistanceM = reduced
	result.ReductionApplied = reduced < baseM
	return result, nil
}

// tierForFloor finds the lowest tier whose capped total reduction reaches the
// floor. Returns empty when even the best tier cannot.
func (c *Calculator) tierForFloor(baseM, floor float64, vegetationBuffer bool) models.EquipmentTier {
	if baseM <= floor {
		return models.EquipmentNone
	}
	for _, tier := range tiersAscending {
		total := c.rules.ReductionFor(tier)
		if vegetationBuffer {
			total += c.rules.VegetationBonus
		}
		if total > c.rules.MaxTotalReduction {
			total = c.rules.MaxTotalReduction
		}
		if baseM*(1-total) <= floor {
			return tier
		}
	}
	return ""
}
