// Package domain declares the resolution engine's ports
package domain

import (
	"context"

	"github.com/Kropiunig/domain-radar/internal/core/check"
)

// BulkChecker answers a whole batch with one call. The returned map only
// carries names the source answered; everything else stays undecided
type BulkChecker interface {
	Status(ctx context.Context, domains []string) (map[string]check.Verdict, error)
}

// ZoneChecker answers one domain through its zone's registry endpoint.
// The only error it may return is the fatal no-endpoint-map condition
type ZoneChecker interface {
	Check(ctx context.Context, domain string) (check.Verdict, error)
}

// DelegationChecker answers one domain from its delegation state.
// It has no fatal failure mode; anything unclear degrades to unknown
type DelegationChecker interface {
	Check(ctx context.Context, domain string) check.Verdict
}

// CheckerPort is the resolution engine as its consumers see it
type CheckerPort interface {
	// Check resolves one domain through the tiers in strict order
	Check(ctx context.Context, domain string) (check.Verdict, error)

	// CheckBatch resolves a batch: one bulk call, then concurrent
	// per-domain fallbacks for whatever stayed undecided. The result
	// map has an entry for every requested name
	CheckBatch(ctx context.Context, domains []string) (map[string]check.Verdict, error)
}

// Ports are the collaborators injected into the resolve module
type Ports struct {
	Bulk       BulkChecker       // optional; engine degrades to the per-domain tiers
	Zone       ZoneChecker       // required
	Delegation DelegationChecker // required
}
