package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/registry"
	dErrors "phytoguard/pkg/domerrors"
)

// PostgresStore is the production registry gateway backed by PostgreSQL.
// Both lookups use a single array-parameter query so the round-trip count
// stays constant regardless of how many products are requested.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed registry gateway.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const usageRowsQuery = `
SELECT product_id, buffer_type, distance_m
FROM product_usage
WHERE product_id = ANY($1)
ORDER BY product_id, buffer_type`

func (s *PostgresStore) UsageRowsByProduct(ctx context.Context, ids []string) (map[string][]registry.UsageRow, error) {
	if len(ids) == 0 {
		return map[string][]registry.UsageRow{}, nil
	}

	rows, err := s.pool.Query(ctx, usageRowsQuery, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "query product usage rows")
	}
	defer rows.Close()

	result := make(map[string][]registry.UsageRow, len(ids))
	for rows.Next() {
		var (
			row        registry.UsageRow
			bufferType string
		)
		if err := rows.Scan(&row.ProductID, &bufferType, &row.DistanceM); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "scan product usage row")
		}
		row.BufferType = models.BufferType(bufferType)
		result[row.ProductID] = append(result[row.ProductID], row)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "iterate product usage rows")
	}
	return result, nil
}

const hazardPhrasesQuery = `
SELECT p.id, p.name, COALESCE(array_agg(h.phrase) FILTER (WHERE h.phrase IS NOT NULL), '{}')
FROM product p
LEFT JOIN product_hazard_phrase h ON h.product_id = p.id
WHERE p.id = ANY($1)
GROUP BY p.id, p.name`

func (s *PostgresStore) HazardPhrasesByProduct(ctx context.Context, ids []string) (map[string]registry.ProductHazard, error) {
	if len(ids) == 0 {
		return map[string]registry.ProductHazard{}, nil
	}

	rows, err := s.pool.Query(ctx, hazardPhrasesQuery, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "query product hazard phrases")
	}
	defer rows.Close()

	result := make(map[string]registry.ProductHazard, len(ids))
	for rows.Next() {
		var hazard registry.ProductHazard
		if err := rows.Scan(&hazard.ProductID, &hazard.Name, &hazard.Phrases); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "scan product hazard row")
		}
		result[hazard.ProductID] = hazard
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "iterate product hazard rows")
	}
	return result, nil
}
