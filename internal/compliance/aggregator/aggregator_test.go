package aggregator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/reduction"
	"phytoguard/internal/compliance/rules"
	"phytoguard/internal/registry"
)

// =============================================================================
// Compliance Aggregator Test Suite
// =============================================================================
// Justification for unit tests: consolidation, the optimistic unknown-distance
// default, and the risk thresholds are pure rules that must stay pinned.

type AggregatorSuite struct {
	suite.Suite
	agg *Aggregator
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	ruleSet := rules.Default()
	calc, err := reduction.New(ruleSet)
	s.Require().NoError(err)
	s.agg, err = New(ruleSet, calc)
	s.Require().NoError(err)
}

func floatPtr(v float64) *float64 { return &v }

func streamInput() Input {
	return Input{
		Impact: models.EnvironmentalImpact{
			WaterBodyType: models.WaterBodyStream,
			EquipmentTier: models.EquipmentNone,
		},
		WaterBody: models.WaterBodyClassification{
			Type:             models.WaterBodyStream,
			BaseDistanceM:    5,
			ReductionAllowed: true,
			FishBearing:      true,
		},
	}
}

// =============================================================================
// Consolidation Tests (Most Restrictive Wins)
// =============================================================================

func (s *AggregatorSuite) TestConsolidation() {
	s.Run("conflicting same-type requirements keep the maximum", func() {
		in := streamInput()
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 10}},
			"p-2": {{ProductID: "p-2", BufferType: models.BufferAquatic, DistanceM: 20}},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Require().Len(out.Requirements, 1)
		s.Equal(models.BufferAquatic, out.Requirements[0].BufferType)
		s.Equal(20.0, out.Requirements[0].RequiredDistanceM)
		s.Equal("p-2", out.Requirements[0].SourceProductID)
	})

	s.Run("distinct buffer types each survive", func() {
		in := streamInput()
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {
				{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 20},
				{ProductID: "p-1", BufferType: models.BufferArthropod, DistanceM: 10},
			},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Len(out.Requirements, 2)
	})

	s.Run("water body baseline participates in consolidation", func() {
		in := streamInput()
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 3}},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Require().Len(out.Requirements, 1)
		// the 5m stream baseline beats the 3m product row
		s.Equal(5.0, out.Requirements[0].RequiredDistanceM)
	})

	s.Run("requirement order is deterministic", func() {
		in := streamInput()
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {
				{ProductID: "p-1", BufferType: models.BufferPlant, DistanceM: 5},
				{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 20},
				{ProductID: "p-1", BufferType: models.BufferArthropod, DistanceM: 10},
			},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Require().Len(out.Requirements, 3)
		s.Equal(models.BufferAquatic, out.Requirements[0].BufferType)
		s.Equal(models.BufferArthropod, out.Requirements[1].BufferType)
		s.Equal(models.BufferPlant, out.Requirements[2].BufferType)
	})
}

// =============================================================================
// Per-Requirement Compliance
// =============================================================================

func (s *AggregatorSuite) TestCompliance() {
	s.Run("actual distance above effective distance is compliant", func() {
		in := streamInput()
		in.Impact.WaterDistanceM = floatPtr(25)
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 20}},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Equal(models.StatusCompliant, out.Requirements[0].Compliance)
		s.Equal(models.StatusCompliant, out.Overall)
	})

	s.Run("actual distance below effective distance is non compliant", func() {
		in := streamInput()
		in.Impact.WaterDistanceM = floatPtr(15)
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 20}},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Equal(models.StatusNonCompliant, out.Requirements[0].Compliance)
		s.Equal(models.StatusNonCompliant, out.Overall)
		s.Equal(1, out.NonCompliantCount)
	})

	s.Run("reduction can turn a violation into compliance", func() {
		in := streamInput()
		in.Impact.WaterDistanceM = floatPtr(15)
		in.Impact.EquipmentTier = models.EquipmentFiveStar
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 20}},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		// 20m reduced by 50% -> 10m <= 15m actual
		s.Equal(models.StatusCompliant, out.Requirements[0].Compliance)
	})

	s.Run("unknown actual distance defaults to compliant", func() {
		// Preserved source behavior, pinned deliberately: changing the
		// optimistic default must break this test first.
		in := streamInput()
		in.Impact.WaterDistanceM = nil
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 100}},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Equal(models.StatusCompliant, out.Requirements[0].Compliance)
		s.Equal(models.StatusCompliant, out.Overall)
	})
}

// =============================================================================
// Drinking-Water Requirements
// =============================================================================

func (s *AggregatorSuite) TestDrinkingWater() {
	s.Run("drinking buffer ignores equipment and vegetation", func() {
		in := Input{
			Impact: models.EnvironmentalImpact{
				WaterBodyType:    models.WaterBodyDrinkingSource,
				EquipmentTier:    models.EquipmentFiveStar,
				VegetationBuffer: true,
			},
			WaterBody: models.WaterBodyClassification{
				Type:           models.WaterBodyDrinkingSource,
				BaseDistanceM:  50,
				DrinkingSource: true,
			},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Require().Len(out.Requirements, 1)
		s.Equal(models.BufferDrinking, out.Requirements[0].BufferType)
		s.Equal(50.0, out.Requirements[0].ReducedDistanceM)
		s.False(out.Requirements[0].ReductionApplied)
	})
}

// =============================================================================
// Degraded Mode
// =============================================================================

func (s *AggregatorSuite) TestDegradedMode() {
	s.Run("rule table baseline still applies without registry data", func() {
		in := streamInput()
		in.Degraded = true

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Require().Len(out.Requirements, 1)
		s.Equal(5.0, out.Requirements[0].RequiredDistanceM)
		s.Equal(models.StatusUnknown, out.Overall)
	})

	s.Run("degraded non compliance still surfaces", func() {
		in := streamInput()
		in.Degraded = true
		in.Impact.WaterDistanceM = floatPtr(2)

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Equal(models.StatusNonCompliant, out.Overall)
	})
}

// =============================================================================
// Risk Level Thresholds
// =============================================================================

func (s *AggregatorSuite) TestRiskLevels() {
	s.Run("levels are monotonic in score", func() {
		s.Equal(models.RiskCritical, s.agg.LevelFor(0.85, 0))
		s.Equal(models.RiskHigh, s.agg.LevelFor(0.65, 0))
		s.Equal(models.RiskModerate, s.agg.LevelFor(0.45, 0))
		s.Equal(models.RiskLow, s.agg.LevelFor(0.1, 0))
	})

	s.Run("any non compliance forces at least high", func() {
		s.Equal(models.RiskHigh, s.agg.LevelFor(0.1, 1))
	})

	s.Run("more than two non compliances force critical", func() {
		s.Equal(models.RiskCritical, s.agg.LevelFor(0.1, 3))
	})

	s.Run("hazard profiles contribute factors", func() {
		in := streamInput()
		in.Profiles = []models.ProductEnvironmentalProfile{
			{ProductID: "p-1", CMR: true, AquaticToxicity: models.AquaticVeryHigh, BeeToxicity: models.BeeToxic},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.Len(out.Risk.Factors, 4) // baseline requirement + three hazard flags
		s.Greater(out.Risk.Score, 0.0)
	})

	s.Run("score stays within the unit interval", func() {
		in := streamInput()
		in.Impact.WaterDistanceM = floatPtr(0)
		in.UsageRows = map[string][]registry.UsageRow{
			"p-1": {
				{ProductID: "p-1", BufferType: models.BufferAquatic, DistanceM: 50},
				{ProductID: "p-1", BufferType: models.BufferArthropod, DistanceM: 50},
				{ProductID: "p-1", BufferType: models.BufferPlant, DistanceM: 50},
			},
		}

		out, err := s.agg.Aggregate(in)
		s.NoError(err)
		s.GreaterOrEqual(out.Risk.Score, 0.0)
		s.LessOrEqual(out.Risk.Score, 1.0)
	})
}
