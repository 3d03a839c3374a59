package registry

import (
	"context"

	dErrors "phytoguard/pkg/domerrors"
)

//go:generate mockgen -source=gateway.go -destination=../../mocks/registry/gateway_mock.go -package=registrymocks

// Gateway is the bulk-fetch port onto the product registry. Both operations
// take the full identifier list and answer in a single round trip; callers
// must never loop over ids issuing per-product queries.
//
// Identifiers that do not resolve are simply absent from the result maps.
type Gateway interface {
	// UsageRowsByProduct returns the buffer-distance usage rows for each
	// resolvable product id.
	UsageRowsByProduct(ctx context.Context, ids []string) (map[string][]UsageRow, error)

	// HazardPhrasesByProduct returns the hazard-phrase association for each
	// resolvable product id.
	HazardPhrasesByProduct(ctx context.Context, ids []string) (map[string]ProductHazard, error)
}

// ErrUnavailable signals that the registry cannot be reached. The compliance
// service degrades to rule-table-only results instead of failing the request.
var ErrUnavailable = dErrors.New(dErrors.CodeUnavailable, "product registry unavailable")

// IsUnavailable reports whether an error means the registry is unreachable.
func IsUnavailable(err error) bool {
	return err != nil && dErrors.CodeOf(err) == dErrors.CodeUnavailable
}
