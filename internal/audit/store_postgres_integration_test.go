//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"phytoguard/pkg/testutil/containers"
)

// =============================================================================
// PostgreSQL Audit Store Integration Test Suite
// =============================================================================

const auditSchema = `
CREATE TABLE compliance_audit_event (
	id            BIGSERIAL PRIMARY KEY,
	occurred_at   TIMESTAMPTZ NOT NULL,
	report_id     TEXT NOT NULL,
	practice_type TEXT NOT NULL,
	location      TEXT NOT NULL,
	status        TEXT NOT NULL,
	risk_level    TEXT NOT NULL,
	risk_score    DOUBLE PRECISION NOT NULL,
	degraded      BOOLEAN NOT NULL
);
CREATE INDEX idx_audit_location ON compliance_audit_event (location, occurred_at DESC);`

type PostgresAuditSuite struct {
	suite.Suite
	store *PostgresStore
}

func TestPostgresAuditSuite(t *testing.T) {
	suite.Run(t, new(PostgresAuditSuite))
}

func (s *PostgresAuditSuite) SetupSuite() {
	pg := containers.NewPostgresContainer(s.T())

	_, err := pg.Pool.Exec(context.Background(), auditSchema)
	s.Require().NoError(err)

	s.store = NewPostgresStore(pg.Pool)
}

func (s *PostgresAuditSuite) TestAppendAndList() {
	ctx := context.Background()

	base := time.Date(2026, time.May, 10, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, ReportID: "r-1", PracticeType: "spraying", Location: "FR-33", Status: "compliant", RiskLevel: "low", RiskScore: 0.1},
		{Timestamp: base.Add(time.Hour), ReportID: "r-2", PracticeType: "spraying", Location: "FR-33", Status: "non_compliant", RiskLevel: "critical", RiskScore: 0.9},
		{Timestamp: base, ReportID: "r-3", PracticeType: "fertilization", Location: "FR-24", Status: "unknown", RiskLevel: "low", RiskScore: 0, Degraded: true},
	}
	for _, e := range events {
		s.Require().NoError(s.store.Append(ctx, e))
	}

	s.Run("list filters by location, newest first", func() {
		got, err := s.store.ListByLocation(ctx, "FR-33")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("r-2", got[0].ReportID)
		s.Equal("r-1", got[1].ReportID)
	})

	s.Run("round trip preserves every field", func() {
		got, err := s.store.ListByLocation(ctx, "FR-24")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("fertilization", got[0].PracticeType)
		s.True(got[0].Degraded)
		s.True(got[0].Timestamp.Equal(base))
	})

	s.Run("unknown location returns empty", func() {
		got, err := s.store.ListByLocation(ctx, "FR-99")
		s.Require().NoError(err)
		s.Empty(got)
	})
}
