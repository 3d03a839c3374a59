// Package waterbody maps water-body types to their baseline protection
// parameters from the rule tables.
package waterbody

import (
	"fmt"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
)

// Classifier resolves a water-body type to its protection baseline.
// Unknown types always resolve to conservative defaults; classification
// never fails.
type Classifier struct {
	rules *rules.Set
}

// New constructs a classifier over an immutable rule set.
func New(ruleSet *rules.Set) (*Classifier, error) {
	if ruleSet == nil {
		return nil, fmt.Errorf("rule set is required")
	}
	return &Classifier{rules: ruleSet}, nil
}

// Classify returns the protection baseline for a water-body type. The width
// parameter is accepted for future width-dependent rules; the current rule
// table keys on type alone, so it does not affect the result.
func (c *Classifier) Classify(t models.WaterBodyType, _ *float64) models.WaterBodyClassification {
	rule := c.rules.WaterBodyFor(t)

	return models.WaterBodyClassification{
		Type:              t,
		BaseDistanceM:     rule.BaseDistanceM,
		ReductionAllowed:  rule.ReductionAllowed,
		SpecialProtection: rule.SpecialProtection,
		DrinkingSource:    rule.DrinkingSource,
		FishBearing:       rule.FishBearing,
	}
}
