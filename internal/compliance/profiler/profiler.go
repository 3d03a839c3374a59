// Package profiler derives per-product environmental hazard tiers from the
// registry's hazard-phrase associations.
package profiler

import (
	"context"
	"fmt"
	"log/slog"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
	"phytoguard/internal/registry"
)

// Profiler classifies products by hazard phrases. It issues exactly one bulk
// registry call per Profile invocation regardless of how many products are
// requested.
type Profiler struct {
	gateway registry.Gateway
	rules   *rules.Set
	logger  *slog.Logger
}

// Option configures a Profiler.
type Option func(*Profiler)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// New constructs a profiler over the registry gateway and rule set.
func New(gateway registry.Gateway, ruleSet *rules.Set, opts ...Option) (*Profiler, error) {
	if gateway == nil {
		return nil, fmt.Errorf("registry gateway is required")
	}
	if ruleSet == nil {
		return nil, fmt.Errorf("rule set is required")
	}

	p := &Profiler{gateway: gateway, rules: ruleSet}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Profile resolves the given product ids and returns their environmental
// profiles in input order. Unresolved ids are silently omitted; only a
// registry-level failure makes the whole batch fail.
func (p *Profiler) Profile(ctx context.Context, ids []string) ([]models.ProductEnvironmentalProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	hazards, err := p.gateway.HazardPhrasesByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.ProductEnvironmentalProfile, 0, len(hazards))
	for _, id := range ids {
		hazard, ok := hazards[id]
		if !ok {
			if p.logger != nil {
				p.logger.WarnContext(ctx, "product not found in registry, skipping", "product_id", id)
			}
			continue
		}
		profiles = append(profiles, p.classify(hazard))
	}
	return profiles, nil
}

// classify folds a hazard-phrase set into tiered hazard flags. Aquatic and
// bee tiers keep the most severe matching phrase.
func (p *Profiler) classify(hazard registry.ProductHazard) models.ProductEnvironmentalProfile {
	profile := models.ProductEnvironmentalProfile{
		ProductID:       hazard.ProductID,
		Name:            hazard.Name,
		AquaticToxicity: models.AquaticLow,
		BeeToxicity:     models.BeeNotToxic,
	}

	for _, phrase := range hazard.Phrases {
		if p.rules.CMRPhrases[phrase] {
			profile.CMR = true
		}
		if tier, ok := p.rules.AquaticTiers[phrase]; ok && tier.Rank() > profile.AquaticToxicity.Rank() {
			profile.AquaticToxicity = tier
		}
		if tier, ok := p.rules.BeeTiers[phrase]; ok && tier.Rank() > profile.BeeToxicity.Rank() {
			profile.BeeToxicity = tier
		}
	}
	return profile
}
