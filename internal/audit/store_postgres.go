package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	dErrors "phytoguard/pkg/domerrors"
)

// PostgresStore persists audit events for regulatory retention.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const appendQuery = `
INSERT INTO compliance_audit_event
	(occurred_at, report_id, practice_type, location, status, risk_level, risk_score, degraded)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.pool.Exec(ctx, appendQuery,
		event.Timestamp, event.ReportID, event.PracticeType, event.Location,
		event.Status, event.RiskLevel, event.RiskScore, event.Degraded)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "append audit event")
	}
	return nil
}

const listByLocationQuery = `
SELECT occurred_at, report_id, practice_type, location, status, risk_level, risk_score, degraded
FROM compliance_audit_event
WHERE location = $1
ORDER BY occurred_at DESC`

func (s *PostgresStore) ListByLocation(ctx context.Context, location string) ([]Event, error) {
	rows, err := s.pool.Query(ctx, listByLocationQuery, location)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "list audit events")
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.ReportID, &e.PracticeType, &e.Location,
			&e.Status, &e.RiskLevel, &e.RiskScore, &e.Degraded); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "scan audit event")
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "iterate audit events")
	}
	return events, nil
}
