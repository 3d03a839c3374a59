package reduction

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
)

// =============================================================================
// Reduction Calculator Test Suite
// =============================================================================
// Justification for unit tests: the calculator carries the cap and floor
// invariants the rest of the engine relies on; they must hold for every
// equipment/vegetation combination, including hypothetical future ones.

type CalculatorSuite struct {
	suite.Suite
	calc *Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorSuite))
}

func (s *CalculatorSuite) SetupTest() {
	var err error
	s.calc, err = New(rules.Default())
	s.Require().NoError(err)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *CalculatorSuite) TestNew() {
	s.Run("nil rule set returns error", func() {
		_, err := New(nil)
		s.Error(err)
	})
}

// =============================================================================
// Reduction Scenarios
// =============================================================================

func (s *CalculatorSuite) TestReduce() {
	s.Run("five star with vegetation caps at 66 percent", func() {
		// base 20m, 50% + 20% = 70% -> capped at 66% -> 20 * 0.34 = 6.8m
		result, err := s.calc.Reduce(20, models.EquipmentFiveStar, true, models.WaterBodyStream)
		s.NoError(err)
		s.InDelta(6.8, result.ReducedDistanceM, 0.0001)
		s.True(result.ReductionApplied)
		s.False(result.Clamped)
		s.Contains(result.Conditions[len(result.Conditions)-1], "capped at 66%")
	})

	s.Run("one star on small base clamps to floor", func() {
		// base 5m, 25% -> 3.75m < 5m floor -> clamped back to 5m
		result, err := s.calc.Reduce(5, models.EquipmentOneStar, false, models.WaterBodyUnknown)
		s.NoError(err)
		s.Equal(5.0, result.ReducedDistanceM)
		s.True(result.Clamped)
		s.False(result.ReductionApplied) // clamp brought it back to the base
	})

	s.Run("no equipment and no vegetation leaves base unchanged", func() {
		result, err := s.calc.Reduce(20, models.EquipmentNone, false, models.WaterBodyStream)
		s.NoError(err)
		s.Equal(20.0, result.ReducedDistanceM)
		s.False(result.ReductionApplied)
		s.Empty(result.Conditions)
	})

	s.Run("vegetation buffer alone reduces twenty percent", func() {
		result, err := s.calc.Reduce(20, models.EquipmentNone, true, models.WaterBodyStream)
		s.NoError(err)
		s.InDelta(16.0, result.ReducedDistanceM, 0.0001)
		s.True(result.ReductionApplied)
	})

	s.Run("conditions list names each contributing input", func() {
		result, err := s.calc.Reduce(50, models.EquipmentThreeStar, true, models.WaterBodyPondLake)
		s.NoError(err)
		s.Len(result.Conditions, 2)
		s.Contains(result.Conditions[0], "three_star")
		s.Contains(result.Conditions[1], "vegetation buffer")
	})
}

// =============================================================================
// Drinking-Water and Protected Types
// =============================================================================

func (s *CalculatorSuite) TestNoReductionTypes() {
	s.Run("drinking water source never reduces", func() {
		for _, tier := range []models.EquipmentTier{
			models.EquipmentNone, models.EquipmentOneStar,
			models.EquipmentThreeStar, models.EquipmentFiveStar,
		} {
			for _, vegetation := range []bool{false, true} {
				result, err := s.calc.Reduce(50, tier, vegetation, models.WaterBodyDrinkingSource)
				s.NoError(err)
				s.Equal(50.0, result.ReducedDistanceM)
				s.False(result.ReductionApplied)
			}
		}
	})

	s.Run("wetland never reduces", func() {
		result, err := s.calc.Reduce(20, models.EquipmentFiveStar, true, models.WaterBodyWetland)
		s.NoError(err)
		s.Equal(20.0, result.ReducedDistanceM)
		s.False(result.ReductionApplied)
	})
}

// =============================================================================
// Invariants
// =============================================================================

func (s *CalculatorSuite) TestInvariants() {
	tiers := []models.EquipmentTier{
		models.EquipmentNone, models.EquipmentOneStar,
		models.EquipmentThreeStar, models.EquipmentFiveStar,
	}
	types := []models.WaterBodyType{
		models.WaterBodyStream, models.WaterBodyPondLake,
		models.WaterBodyIrrigationCanal, models.WaterBodyWetland,
		models.WaterBodyDrinkingSource, models.WaterBodyUnknown,
	}
	bases := []float64{1, 5, 10, 20, 50, 100}

	s.Run("reduced distance never falls below the floor", func() {
		for _, base := range bases {
			for _, tier := range tiers {
				for _, vegetation := range []bool{false, true} {
					for _, waterBody := range types {
						result, err := s.calc.Reduce(base, tier, vegetation, waterBody)
						s.Require().NoError(err)
						if result.ReductionApplied {
							s.GreaterOrEqual(result.ReducedDistanceM, result.FloorDistanceM)
						}
					}
				}
			}
		}
	})

	s.Run("total reduction never exceeds 66 percent", func() {
		for _, base := range bases {
			for _, tier := range tiers {
				for _, vegetation := range []bool{false, true} {
					result, err := s.calc.Reduce(base, tier, vegetation, models.WaterBodyStream)
					s.Require().NoError(err)
					s.GreaterOrEqual(result.ReducedDistanceM, base*(1-0.66)-0.0001)
				}
			}
		}
	})

	s.Run("floor never raises a base already below it", func() {
		// base 3m on a 5m-floor stream: the clamp bounds reductions, it must
		// not strengthen a requirement that was already under the floor
		result, err := s.calc.Reduce(3, models.EquipmentFiveStar, true, models.WaterBodyStream)
		s.NoError(err)
		s.Equal(3.0, result.ReducedDistanceM)
		s.True(result.Clamped)
		s.False(result.ReductionApplied)
	})

	s.Run("cap holds for hypothetical oversized reductions", func() {
		ruleSet := rules.Default()
		ruleSet.EquipmentReduction[models.EquipmentFiveStar] = 0.90

		calc, err := New(ruleSet)
		s.Require().NoError(err)

		result, err := calc.Reduce(100, models.EquipmentFiveStar, true, models.WaterBodyStream)
		s.NoError(err)
		s.InDelta(34.0, result.ReducedDistanceM, 0.0001)
	})
}

// =============================================================================
// Validation
// =============================================================================

func (s *CalculatorSuite) TestValidation() {
	s.Run("zero base distance is rejected", func() {
		_, err := s.calc.Reduce(0, models.EquipmentNone, false, models.WaterBodyStream)
		s.Error(err)
	})

	s.Run("negative base distance is rejected", func() {
		_, err := s.calc.Reduce(-5, models.EquipmentFiveStar, true, models.WaterBodyStream)
		s.Error(err)
	})
}

// =============================================================================
// Tier Needed to Reach the Floor
// =============================================================================

func (s *CalculatorSuite) TestTierForFloor() {
	s.Run("large base needs the top tier", func() {
		// floor 5m from 20m needs 75%; unreachable under the 66% cap
		result, err := s.calc.Reduce(20, models.EquipmentNone, false, models.WaterBodyStream)
		s.NoError(err)
		s.Equal(models.EquipmentTier(""), result.TierForFloor)
	})

	s.Run("moderate base reachable with one star and vegetation", func() {
		// floor 5m from 8m needs 37.5%; one_star (25%) + vegetation (20%) = 45%
		result, err := s.calc.Reduce(8, models.EquipmentNone, true, models.WaterBodyStream)
		s.NoError(err)
		s.Equal(models.EquipmentOneStar, result.TierForFloor)
	})

	s.Run("base at the floor needs nothing", func() {
		result, err := s.calc.Reduce(5, models.EquipmentNone, false, models.WaterBodyStream)
		s.NoError(err)
		s.Equal(models.EquipmentNone, result.TierForFloor)
	})
}
