package profiler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
	"phytoguard/internal/registry"
	registrystore "phytoguard/internal/registry/store"
	registrymocks "phytoguard/mocks/registry"
)

// =============================================================================
// Product Environmental Profiler Test Suite
// =============================================================================
// Justification for unit tests: tier precedence and the O(1) batching
// contract cannot be exercised through the HTTP boundary without a registry.

type ProfilerSuite struct {
	suite.Suite
	store    *registrystore.InMemoryStore
	profiler *Profiler
}

func TestProfilerSuite(t *testing.T) {
	suite.Run(t, new(ProfilerSuite))
}

func (s *ProfilerSuite) SetupTest() {
	s.store = registrystore.NewInMemory()

	var err error
	s.profiler, err = New(s.store, rules.Default())
	s.Require().NoError(err)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ProfilerSuite) TestNew() {
	s.Run("nil gateway returns error", func() {
		_, err := New(nil, rules.Default())
		s.Error(err)
	})

	s.Run("nil rule set returns error", func() {
		_, err := New(s.store, nil)
		s.Error(err)
	})
}

// =============================================================================
// Classification Tests
// =============================================================================

func (s *ProfilerSuite) TestProfile() {
	ctx := context.Background()

	s.Run("empty id list yields no profiles and no registry call", func() {
		profiles, err := s.profiler.Profile(ctx, nil)
		s.NoError(err)
		s.Empty(profiles)
	})

	s.Run("CMR phrase sets the CMR flag", func() {
		s.store.AddProduct(registry.ProductHazard{
			ProductID: "p-cmr", Name: "Folpan", Phrases: []string{"H351"},
		})

		profiles, err := s.profiler.Profile(ctx, []string{"p-cmr"})
		s.NoError(err)
		s.Require().Len(profiles, 1)
		s.True(profiles[0].CMR)
		s.Equal(models.AquaticLow, profiles[0].AquaticToxicity)
		s.Equal(models.BeeNotToxic, profiles[0].BeeToxicity)
	})

	s.Run("most severe aquatic phrase wins", func() {
		s.store.AddProduct(registry.ProductHazard{
			ProductID: "p-aqua", Phrases: []string{"H412", "H410", "H411"},
		})

		profiles, err := s.profiler.Profile(ctx, []string{"p-aqua"})
		s.NoError(err)
		s.Require().Len(profiles, 1)
		s.Equal(models.AquaticVeryHigh, profiles[0].AquaticToxicity)
	})

	s.Run("most severe bee phrase wins", func() {
		s.store.AddProduct(registry.ProductHazard{
			ProductID: "p-bee", Phrases: []string{"R57", "SPe8"},
		})

		profiles, err := s.profiler.Profile(ctx, []string{"p-bee"})
		s.NoError(err)
		s.Require().Len(profiles, 1)
		s.Equal(models.BeeHighlyToxic, profiles[0].BeeToxicity)
	})

	s.Run("no matching phrases default to the lowest tiers", func() {
		s.store.AddProduct(registry.ProductHazard{
			ProductID: "p-benign", Phrases: []string{"H319"},
		})

		profiles, err := s.profiler.Profile(ctx, []string{"p-benign"})
		s.NoError(err)
		s.Require().Len(profiles, 1)
		s.False(profiles[0].CMR)
		s.Equal(models.AquaticLow, profiles[0].AquaticToxicity)
		s.Equal(models.BeeNotToxic, profiles[0].BeeToxicity)
	})

	s.Run("unresolved ids are skipped, not fatal", func() {
		s.store.AddProduct(registry.ProductHazard{ProductID: "p-1", Phrases: []string{"H411"}})

		profiles, err := s.profiler.Profile(ctx, []string{"missing", "p-1", "also-missing"})
		s.NoError(err)
		s.Require().Len(profiles, 1)
		s.Equal("p-1", profiles[0].ProductID)
	})

	s.Run("output preserves input order", func() {
		s.store.AddProduct(registry.ProductHazard{ProductID: "p-b", Phrases: nil})
		s.store.AddProduct(registry.ProductHazard{ProductID: "p-a", Phrases: nil})

		profiles, err := s.profiler.Profile(ctx, []string{"p-b", "p-a"})
		s.NoError(err)
		s.Require().Len(profiles, 2)
		s.Equal("p-b", profiles[0].ProductID)
		s.Equal("p-a", profiles[1].ProductID)
	})
}

// =============================================================================
// Batching Contract
// =============================================================================
// The registry must see a constant number of calls regardless of N.

func (s *ProfilerSuite) TestBatchingContract() {
	ctx := context.Background()

	s.Run("fifty products cost exactly one registry call", func() {
		ctrl := gomock.NewController(s.T())
		gateway := registrymocks.NewMockGateway(ctrl)

		ids := make([]string, 50)
		hazards := make(map[string]registry.ProductHazard, 50)
		for i := range ids {
			id := fmt.Sprintf("p-%02d", i)
			ids[i] = id
			hazards[id] = registry.ProductHazard{ProductID: id}
		}

		gateway.EXPECT().
			HazardPhrasesByProduct(gomock.Any(), ids).
			Return(hazards, nil).
			Times(1)

		p, err := New(gateway, rules.Default())
		s.Require().NoError(err)

		profiles, err := p.Profile(ctx, ids)
		s.NoError(err)
		s.Len(profiles, 50)
	})
}
