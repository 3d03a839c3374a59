// Package aggregator consolidates per-product buffer requirements with the
// water-body baseline and hazard profiles into an overall compliance verdict
// and a weighted risk score.
package aggregator

import (
	"fmt"
	"sort"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/reduction"
	"phytoguard/internal/compliance/rules"
	"phytoguard/internal/registry"
)

// Input carries everything a single aggregation pass needs. The aggregator
// itself is pure: no I/O, no side effects.
type Input struct {
	Impact    models.EnvironmentalImpact
	WaterBody models.WaterBodyClassification
	// UsageRows are the per-product base requirements from the registry.
	// Empty in degraded mode; the water-body baseline still applies.
	UsageRows map[string][]registry.UsageRow
	Profiles  []models.ProductEnvironmentalProfile
	Degraded  bool
}

// Outcome is the consolidated aggregation result.
type Outcome struct {
	Requirements      []models.BufferRequirement
	Overall           models.ComplianceStatus
	Risk              models.EnvironmentalRiskAssessment
	NonCompliantCount int
}

// Aggregator combines requirements, reductions, and hazard profiles.
type Aggregator struct {
	rules *rules.Set
	calc  *reduction.Calculator
}

// New constructs an aggregator over an immutable rule set.
func New(ruleSet *rules.Set, calc *reduction.Calculator) (*Aggregator, error) {
	if ruleSet == nil {
		return nil, fmt.Errorf("rule set is required")
	}
	if calc == nil {
		return nil, fmt.Errorf("reduction calculator is required")
	}
	return &Aggregator{rules: ruleSet, calc: calc}, nil
}

// candidate is one pre-consolidation requirement.
type candidate struct {
	distanceM float64
	productID string
}

// Aggregate consolidates all requirements (most restrictive wins per buffer
// type), applies the reduction rules, evaluates compliance per requirement,
// and scores the overall environmental risk.
func (a *Aggregator) Aggregate(in Input) (Outcome, error) {
	byType := a.consolidate(in)

	// Deterministic requirement order: by buffer type name.
	types := make([]models.BufferType, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	out := Outcome{}
	var (
		contributions []float64
		factors       []string
	)

	for _, bufferType := range types {
		cand := byType[bufferType]
		req, err := a.buildRequirement(bufferType, cand, in.Impact)
		if err != nil {
			return Outcome{}, err
		}

		if req.Compliance == models.StatusNonCompliant {
			out.NonCompliantCount++
		}
		out.Requirements = append(out.Requirements, req)

		tag := rules.BufferFactor(bufferType)
		contributions = append(contributions, a.rules.ImpactWeights[tag]*a.rules.ComplianceWeights[req.Compliance])
		factors = append(factors, fmt.Sprintf("%s buffer %s", bufferType, req.Compliance))
	}

	hazardContribs, hazardFactors := a.hazardContributions(in.Profiles)
	contributions = append(contributions, hazardContribs...)
	factors = append(factors, hazardFactors...)

	score := mean(contributions)
	out.Risk = models.EnvironmentalRiskAssessment{
		Level:   a.LevelFor(score, out.NonCompliantCount),
		Score:   score,
		Factors: factors,
	}
	out.Overall = a.overall(out.Requirements, in.Degraded)
	return out, nil
}

// consolidate keeps, per buffer type, the candidate with the largest base
// requirement across all products plus the water-body baseline. Requirements
// are never averaged or summed.
func (a *Aggregator) consolidate(in Input) map[models.BufferType]candidate {
	byType := make(map[models.BufferType]candidate)

	keep := func(t models.BufferType, c candidate) {
		if c.distanceM <= 0 {
			return
		}
		if existing, ok := byType[t]; !ok || c.distanceM > existing.distanceM {
			byType[t] = c
		}
	}

	// Rule-table baseline from the water-body classification. This is the
	// only requirement source in degraded mode.
	baselineType := models.BufferAquatic
	if in.WaterBody.DrinkingSource {
		baselineType = models.BufferDrinking
	}
	keep(baselineType, candidate{distanceM: in.WaterBody.BaseDistanceM})

	for productID, usage := range in.UsageRows {
		for _, row := range usage {
			keep(row.BufferType, candidate{distanceM: row.DistanceM, productID: productID})
		}
	}
	return byType
}

// buildRequirement applies the reduction rules and the compliance check to
// one consolidated requirement.
func (a *Aggregator) buildRequirement(bufferType models.BufferType, cand candidate, impact models.EnvironmentalImpact) (models.BufferRequirement, error) {
	req := models.BufferRequirement{
		BufferType:        bufferType,
		RequiredDistanceM: cand.distanceM,
		ActualDistanceM:   impact.WaterDistanceM,
		ReducedDistanceM:  cand.distanceM,
		FloorDistanceM:    a.rules.FloorFor(impact.WaterBodyType),
		SourceProductID:   cand.productID,
	}

	// Drinking-water buffers are never reducible, whatever the surrounding
	// water body allows.
	if bufferType != models.BufferDrinking {
		result, err := a.calc.Reduce(cand.distanceM, impact.EquipmentTier, impact.VegetationBuffer, impact.WaterBodyType)
		if err != nil {
			return models.BufferRequirement{}, err
		}
		req.ReducedDistanceM = result.ReducedDistanceM
		req.ReductionApplied = result.ReductionApplied
		req.ReductionConditions = result.Conditions
		req.FloorDistanceM = result.FloorDistanceM
	}

	// Unknown actual distance defaults to compliant. This optimistic default
	// mirrors the observed source behavior and is pinned by tests; changing
	// it must be a deliberate decision.
	if impact.WaterDistanceM == nil {
		req.Compliance = models.StatusCompliant
	} else if *impact.WaterDistanceM >= req.EffectiveDistanceM() {
		req.Compliance = models.StatusCompliant
	} else {
		req.Compliance = models.StatusNonCompliant
	}
	return req, nil
}

// hazardContributions scores per-product hazard flags. Hazard presence is a
// risk regardless of buffer compliance, so each flag contributes at the
// "unknown" compliance weight.
func (a *Aggregator) hazardContributions(profiles []models.ProductEnvironmentalProfile) ([]float64, []string) {
	unknown := a.rules.ComplianceWeights[models.StatusUnknown]

	var (
		contributions []float64
		factors       []string
	)
	add := func(tag, factor string) {
		contributions = append(contributions, a.rules.ImpactWeights[tag]*unknown)
		factors = append(factors, factor)
	}

	for _, p := range profiles {
		if p.CMR {
			add(rules.FactorCMR, fmt.Sprintf("product %s: CMR classified", p.ProductID))
		}
		switch p.AquaticToxicity {
		case models.AquaticVeryHigh:
			add(rules.FactorAquaticVeryHigh, fmt.Sprintf("product %s: very high aquatic toxicity", p.ProductID))
		case models.AquaticHigh:
			add(rules.FactorAquaticHigh, fmt.Sprintf("product %s: high aquatic toxicity", p.ProductID))
		}
		switch p.BeeToxicity {
		case models.BeeHighlyToxic:
			add(rules.FactorBeeHighlyToxic, fmt.Sprintf("product %s: highly toxic to bees", p.ProductID))
		case models.BeeToxic:
			add(rules.FactorBeeToxic, fmt.Sprintf("product %s: toxic to bees", p.ProductID))
		}
	}
	return contributions, factors
}

// LevelFor maps a risk score and non-compliance count to the ordinal level
// under the fixed thresholds.
func (a *Aggregator) LevelFor(score float64, nonCompliantCount int) models.RiskLevel {
	th := a.rules.Thresholds
	switch {
	case score >= th.Critical || nonCompliantCount > th.CriticalNonCompliantCount:
		return models.RiskCritical
	case score >= th.High || nonCompliantCount > 0:
		return models.RiskHigh
	case score >= th.Moderate:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

func (a *Aggregator) overall(reqs []models.BufferRequirement, degraded bool) models.ComplianceStatus {
	for _, req := range reqs {
		if req.Compliance == models.StatusNonCompliant {
			return models.StatusNonCompliant
		}
	}
	if degraded {
		return models.StatusUnknown
	}
	return models.StatusCompliant
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	if m > 1 {
		return 1
	}
	if m < 0 {
		return 0
	}
	return m
}
