package domain

import (
	"context"
	"time"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	"github.com/Kropiunig/domain-radar/internal/core/namegen"
	resolvedom "github.com/Kropiunig/domain-radar/internal/services/resolve/domain"
)

// GeneratorPort feeds candidates to the orchestrator
type GeneratorPort interface {
	Next() (namegen.Candidate, bool)
}

// StateStore persists the run's three artifacts. Load calls on a fresh
// installation return empty state, not errors
type StateStore interface {
	LoadChecked(ctx context.Context) ([]string, error)
	LoadFound(ctx context.Context) ([]Finding, error)
	LoadStatus(ctx context.Context) (RunStatus, error)

	// SaveChecked persists the checked set. snapshot is the full sorted
	// membership; added is what joined since the last successful save,
	// for stores that persist incrementally
	SaveChecked(ctx context.Context, snapshot, added []string) error
	SaveFound(ctx context.Context, findings []Finding) error
	SaveStatus(ctx context.Context, st RunStatus) error
}

// Reporter renders each decision for the operator
type Reporter interface {
	Found(v check.Verdict, strategy string)
	Taken(v check.Verdict)
	Inconclusive(v check.Verdict)
	SkippedPremium(v check.Verdict)
	RoundDone(round, checked, found, skipped int, elapsed time.Duration)
}

// HistoryRow is one verdict in the append-only history sink
type HistoryRow struct {
	Domain       string
	Zone         string
	Strategy     string
	Method       string
	Availability string
	Premium      bool
	Price        float64
	CheckedAt    time.Time
}

// History records every verdict for later analysis. Best effort; a
// failing sink never affects the run
type History interface {
	AppendVerdicts(ctx context.Context, runID string, rows []HistoryRow) error
}

// Ports are the collaborators injected into the scan module
type Ports struct {
	Generator GeneratorPort
	Checker   resolvedom.CheckerPort
	Store     StateStore
	Reporter  Reporter
	History   History // optional
}
