// Package service exposes the compliance engine's single entry point: a
// stateless, single-pass check that turns an application context and product
// list into a ComplianceReport. The boundary never raises an unexpected
// error; anything but a validation failure or caller cancellation becomes a
// report with overall status "error".
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"phytoguard/internal/audit"
	"phytoguard/internal/compliance/aggregator"
	"phytoguard/internal/compliance/cache"
	"phytoguard/internal/compliance/metrics"
	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/profiler"
	"phytoguard/internal/compliance/recommend"
	"phytoguard/internal/compliance/reduction"
	"phytoguard/internal/compliance/rules"
	"phytoguard/internal/compliance/seasonal"
	"phytoguard/internal/compliance/waterbody"
	"phytoguard/internal/registry"
)

const degradedWarning = "product registry unreachable: requirements derived from rule tables only"

// Auditor records check outcomes on the audit trail.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the compliance checker facade.
type Service struct {
	rules       *rules.Set
	gateway     registry.Gateway
	cache       cache.Cache
	classifier  *waterbody.Classifier
	profiler    *profiler.Profiler
	aggregator  *aggregator.Aggregator
	recommender *recommend.Engine
	seasonal    *seasonal.Resolver
	logger      *slog.Logger
	metrics     *metrics.Metrics
	auditor     Auditor
	now         func() time.Time
	newID       func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRules overrides the default rule set.
func WithRules(ruleSet *rules.Set) Option {
	return func(s *Service) { s.rules = ruleSet }
}

// WithCache attaches the read-through report/profile cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditor attaches the compliance audit trail.
func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides report id generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New constructs the service and its engine components.
func New(gateway registry.Gateway, opts ...Option) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("registry gateway is required")
	}

	svc := &Service{
		rules:   rules.Default(),
		gateway: gateway,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}

	var err error
	if svc.classifier, err = waterbody.New(svc.rules); err != nil {
		return nil, err
	}
	calc, err := reduction.New(svc.rules)
	if err != nil {
		return nil, err
	}
	profilerOpts := []profiler.Option{}
	if svc.logger != nil {
		profilerOpts = append(profilerOpts, profiler.WithLogger(svc.logger))
	}
	if svc.profiler, err = profiler.New(gateway, svc.rules, profilerOpts...); err != nil {
		return nil, err
	}
	if svc.aggregator, err = aggregator.New(svc.rules, calc); err != nil {
		return nil, err
	}
	if svc.recommender, err = recommend.New(svc.rules); err != nil {
		return nil, err
	}
	if svc.seasonal, err = seasonal.New(svc.rules); err != nil {
		return nil, err
	}
	return svc, nil
}

// Check runs one compliance check. The only errors it returns are validation
// failures and caller cancellation; every other failure is converted into a
// report with overall status "error".
func (s *Service) Check(ctx context.Context, req CheckRequest) (report *models.ComplianceReport, err error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	reportKey, keyErr := cache.Key("report", req.cacheKeyInput())
	if cached := s.cachedReport(ctx, reportKey, keyErr); cached != nil {
		// Cache-served checks are still served checks: they get the same
		// metrics and audit-trail treatment as computed ones.
		s.observe(ctx, req, cached, time.Since(start))
		return cached, nil
	}

	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "compliance check panicked", "panic", r)
			}
			report = s.errorReport(fmt.Sprintf("unexpected failure: %v", r))
			err = nil
		}
	}()

	report, err = s.check(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "compliance check failed", "error", err)
		}
		report = s.errorReport(err.Error())
		err = nil
	}

	s.storeReport(ctx, reportKey, keyErr, report)
	s.observe(ctx, req, report, time.Since(start))
	return report, nil
}

// check is the single-pass pipeline: classify, fetch, profile, aggregate,
// recommend, resolve seasonal restrictions.
func (s *Service) check(ctx context.Context, req CheckRequest) (*models.ComplianceReport, error) {
	classification := s.classifier.Classify(req.Impact.WaterBodyType, req.Impact.WaterBodyWidthM)

	usage, profiles, degraded, warnings, err := s.fetchRegistryData(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	outcome, err := s.aggregator.Aggregate(aggregator.Input{
		Impact:    req.Impact,
		WaterBody: classification,
		UsageRows: usage,
		Profiles:  profiles,
		Degraded:  degraded,
	})
	if err != nil {
		return nil, err
	}

	recommendations, critical := s.recommender.Build(outcome.Requirements, profiles, classification, req.Impact)
	restrictions := s.seasonal.Restrictions(req.PracticeType, req.ApplicationDate, req.Location)

	return &models.ComplianceReport{
		ReportID:             s.newID(),
		OverallCompliance:    outcome.Overall,
		WaterBody:            &classification,
		Requirements:         outcome.Requirements,
		Profiles:             profiles,
		Risk:                 outcome.Risk,
		Recommendations:      recommendations,
		CriticalWarnings:     critical,
		SeasonalRestrictions: restrictions,
		Warnings:             warnings,
		Degraded:             degraded,
		GeneratedAt:          s.now().UTC(),
	}, nil
}

// fetchRegistryData issues the two bulk registry calls concurrently: usage
// rows and hazard phrases, one round trip each regardless of product count.
// Cancellation of the check propagates to both. When the registry is
// unreachable the check degrades to rule-table-only results.
func (s *Service) fetchRegistryData(ctx context.Context, ids []string) (map[string][]registry.UsageRow, []models.ProductEnvironmentalProfile, bool, []string, error) {
	if len(ids) == 0 {
		return nil, nil, false, nil, nil
	}

	profileKey, profileKeyErr := cache.Key("profiles", ids)
	profiles, profilesCached := s.cachedProfiles(ctx, profileKey, profileKeyErr)

	var usage map[string][]registry.UsageRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		rows, err := s.gateway.UsageRowsByProduct(gctx, ids)
		s.metrics.ObserveRegistryLatency("usage_rows", time.Since(start))
		if err != nil {
			return err
		}
		usage = rows
		return nil
	})
	if !profilesCached {
		g.Go(func() error {
			start := time.Now()
			p, err := s.profiler.Profile(gctx, ids)
			s.metrics.ObserveRegistryLatency("hazard_phrases", time.Since(start))
			if err != nil {
				return err
			}
			profiles = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, false, nil, err
		}
		if registry.IsUnavailable(err) {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "registry unavailable, degrading to rule tables", "error", err)
			}
			s.metrics.IncrementDegraded()
			return nil, nil, true, []string{degradedWarning}, nil
		}
		return nil, nil, false, nil, err
	}

	if !profilesCached {
		s.storeProfiles(ctx, profileKey, profileKeyErr, profiles)
	}
	return usage, profiles, false, nil, nil
}

func (s *Service) cachedReport(ctx context.Context, key string, keyErr error) *models.ComplianceReport {
	if s.cache == nil || keyErr != nil {
		return nil
	}
	data, err := s.cache.GetReport(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.metrics.RecordCacheMiss("report")
		} else if s.logger != nil {
			s.logger.WarnContext(ctx, "report cache read failed", "error", err)
		}
		return nil
	}

	var cached models.ComplianceReport
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	s.metrics.RecordCacheHit("report")
	return &cached
}

func (s *Service) storeReport(ctx context.Context, key string, keyErr error, report *models.ComplianceReport) {
	// Error reports are transient and never memoized.
	if s.cache == nil || keyErr != nil || report == nil || report.OverallCompliance == models.StatusError {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.SetReport(ctx, key, data); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "report cache write failed", "error", err)
	}
}

func (s *Service) cachedProfiles(ctx context.Context, key string, keyErr error) ([]models.ProductEnvironmentalProfile, bool) {
	if s.cache == nil || keyErr != nil {
		return nil, false
	}
	profiles, err := s.cache.GetProfiles(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.metrics.RecordCacheMiss("profiles")
		}
		return nil, false
	}
	s.metrics.RecordCacheHit("profiles")
	return profiles, true
}

func (s *Service) storeProfiles(ctx context.Context, key string, keyErr error, profiles []models.ProductEnvironmentalProfile) {
	if s.cache == nil || keyErr != nil || len(profiles) == 0 {
		return
	}
	if err := s.cache.SetProfiles(ctx, key, profiles); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "profile cache write failed", "error", err)
	}
}

// errorReport is the top-boundary conversion of an unexpected failure: empty
// requirement list, a critical warning naming the failure, and a fail-safe
// risk level.
func (s *Service) errorReport(reason string) *models.ComplianceReport {
	return &models.ComplianceReport{
		ReportID:          s.newID(),
		OverallCompliance: models.StatusError,
		Requirements:      []models.BufferRequirement{},
		Risk: models.EnvironmentalRiskAssessment{
			Level:   models.RiskCritical,
			Score:   1,
			Factors: []string{"compliance evaluation failed"},
		},
		CriticalWarnings: []string{fmt.Sprintf("compliance check failed: %s", reason)},
		GeneratedAt:      s.now().UTC(),
	}
}

func (s *Service) observe(ctx context.Context, req CheckRequest, report *models.ComplianceReport, elapsed time.Duration) {
	s.metrics.ObserveCheckLatency(elapsed)
	s.metrics.IncrementOutcome(string(report.OverallCompliance), string(report.Risk.Level))

	if s.auditor != nil {
		event := audit.Event{
			Timestamp:    report.GeneratedAt,
			ReportID:     report.ReportID,
			PracticeType: string(req.PracticeType),
			Location:     req.Location,
			Status:       string(report.OverallCompliance),
			RiskLevel:    string(report.Risk.Level),
			RiskScore:    report.Risk.Score,
			Degraded:     report.Degraded,
		}
		if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "audit event emit failed", "error", err)
		}
	}

	if s.logger == nil {
		return
	}
	if report.OverallCompliance == models.StatusNonCompliant {
		s.logger.WarnContext(ctx, "non-compliant application detected",
			"event", "compliance_check_failed",
			"log_type", "audit",
			"practice_type", req.PracticeType,
			"location", req.Location,
			"risk_level", report.Risk.Level,
			"risk_score", report.Risk.Score,
			"duration_ms", elapsed.Milliseconds(),
		)
		return
	}
	s.logger.InfoContext(ctx, "compliance check completed",
		"practice_type", req.PracticeType,
		"status", report.OverallCompliance,
		"risk_level", report.Risk.Level,
		"degraded", report.Degraded,
		"duration_ms", elapsed.Milliseconds(),
	)
}
