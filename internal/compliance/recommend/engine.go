// Package recommend turns aggregated compliance state into an ordered list
// of warnings and recommendations.
package recommend

import (
	"fmt"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
)

// genericReminders are fixed best-practice reminders, always appended last
// and never promoted to critical warnings.
var genericReminders = []string{
	"Check wind speed before treating: do not spray above 19 km/h",
	"Record the application in the field logbook with product, dose and date",
	"Rinse equipment on the farm, never near a water body",
}

// Engine produces a deterministic, strictly ordered recommendation list:
// urgent fixes, optimization suggestions, per-product hazard callouts,
// drinking-water hard stops, then generic reminders.
type Engine struct {
	rules *rules.Set
}

// New constructs a recommendation engine over an immutable rule set.
func New(ruleSet *rules.Set) (*Engine, error) {
	if ruleSet == nil {
		return nil, fmt.Errorf("rule set is required")
	}
	return &Engine{rules: ruleSet}, nil
}

// Build returns (recommendations, criticalWarnings). Critical warnings are a
// strict subset: non-compliance and severe hazard flags only.
func (e *Engine) Build(
	requirements []models.BufferRequirement,
	profiles []models.ProductEnvironmentalProfile,
	waterBody models.WaterBodyClassification,
	impact models.EnvironmentalImpact,
) ([]string, []string) {
	var recs, critical []string

	// 1. Urgent fixes for non-compliant buffers, with exact distances.
	for _, req := range requirements {
		if req.Compliance != models.StatusNonCompliant {
			continue
		}
		actual := 0.0
		if req.ActualDistanceM != nil {
			actual = *req.ActualDistanceM
		}
		msg := fmt.Sprintf("URGENT: the %s buffer requires %.1f m but only %.1f m is available; do not treat inside the buffer",
			req.BufferType, req.EffectiveDistanceM(), actual)
		recs = append(recs, msg)
		critical = append(critical, msg)
	}

	// 2. Optimization suggestions where an unused reduction is available.
	for _, req := range requirements {
		if req.BufferType == models.BufferDrinking || !waterBody.ReductionAllowed {
			continue
		}
		if req.ReducedDistanceM <= req.FloorDistanceM {
			continue
		}
		if impact.EquipmentTier == models.EquipmentNone {
			recs = append(recs, fmt.Sprintf("Fitting drift-reduction nozzles would allow reducing the %.1f m %s buffer",
				req.RequiredDistanceM, req.BufferType))
		}
		if !impact.VegetationBuffer {
			recs = append(recs, fmt.Sprintf("A vegetation buffer strip adds a further %.0f%% reduction on the %s buffer",
				e.rules.VegetationBonus*100, req.BufferType))
		}
	}

	// 3. Per-product hazard callouts, in registry order.
	for _, p := range profiles {
		if p.CMR {
			msg := fmt.Sprintf("Product %s is CMR classified: use certified protective equipment and restrict re-entry", p.ProductID)
			recs = append(recs, msg)
			critical = append(critical, msg)
		}
		switch p.AquaticToxicity {
		case models.AquaticVeryHigh:
			msg := fmt.Sprintf("Product %s is very highly toxic to aquatic life: respect the full buffer without exception", p.ProductID)
			recs = append(recs, msg)
			critical = append(critical, msg)
		case models.AquaticHigh:
			recs = append(recs, fmt.Sprintf("Product %s is highly toxic to aquatic life: avoid any drift toward the water body", p.ProductID))
		}
		switch p.BeeToxicity {
		case models.BeeHighlyToxic:
			msg := fmt.Sprintf("Product %s is highly toxic to bees: never treat during flowering or when bees forage", p.ProductID)
			recs = append(recs, msg)
			critical = append(critical, msg)
		case models.BeeToxic:
			recs = append(recs, fmt.Sprintf("Product %s is toxic to bees: treat outside foraging hours", p.ProductID))
		}
	}

	// 4. Drinking-water-source hard stop.
	if waterBody.DrinkingSource {
		msg := fmt.Sprintf("STOP: drinking-water catchment nearby; the %.0f m buffer is absolute and no reduction applies", waterBody.BaseDistanceM)
		recs = append(recs, msg)
		critical = append(critical, msg)
	}

	// 5. Generic reminders, always last, never critical.
	recs = append(recs, genericReminders...)

	return recs, critical
}
