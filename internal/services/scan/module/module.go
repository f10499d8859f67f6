// Package module wires the scan: generator from the profile, state
// store by backend, reporter, optional history sink
package module

import (
	"context"

	"github.com/Kropiunig/domain-radar/internal/adapters/report"
	"github.com/Kropiunig/domain-radar/internal/core/namegen"
	"github.com/Kropiunig/domain-radar/internal/core/profile"
	"github.com/Kropiunig/domain-radar/internal/platform/config"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
	"github.com/Kropiunig/domain-radar/internal/platform/metrics"
	"github.com/Kropiunig/domain-radar/internal/platform/store"
	resolvedom "github.com/Kropiunig/domain-radar/internal/services/resolve/domain"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
	"github.com/Kropiunig/domain-radar/internal/services/scan/repo"
	"github.com/Kropiunig/domain-radar/internal/services/scan/service"
)

// Deps are the externally-owned collaborators
type Deps struct {
	// Checker is the resolution engine port
	Checker resolvedom.CheckerPort

	// Store carries the optional shared backends; nil is fine for the
	// file state backend without a history sink
	Store *store.Store

	// Overrides replace wired pieces in tests; zero value wires everything
	Overrides domain.Ports
}

// Module exposes the scan orchestrator
type Module struct {
	svc  *service.Service
	prof profile.Profile
}

// New wires the orchestrator from config and the scan profile
func New(ctx context.Context, cfg config.Conf, prof profile.Profile, deps Deps, mx *metrics.Metrics) (*Module, error) {
	o := FromConfig(cfg)

	ports := deps.Overrides
	ports.Checker = deps.Checker

	if ports.Generator == nil {
		strategies, err := namegen.Catalog(prof.GeneratorConfig())
		if err != nil {
			return nil, err
		}
		ports.Generator = namegen.NewGenerator(strategies...)
	}

	if ports.Store == nil {
		st, err := OpenState(ctx, o, deps.Store)
		if err != nil {
			return nil, err
		}
		ports.Store = st
	}

	if ports.Reporter == nil {
		ports.Reporter = report.NewConsole(report.Options{Verbose: o.Verbose})
	}

	if ports.History == nil && deps.Store != nil && deps.Store.CH != nil {
		hist, err := repo.NewHistory(ctx, deps.Store.CH)
		if err != nil {
			logger.Named("scan").Warn().Err(err).Msg("history sink unavailable, scanning without it")
		} else {
			ports.History = hist
		}
	}

	svc := service.New(ports, prof.PriceTable(), service.Config{
		RoundSize:  prof.RoundSize,
		BatchSize:  prof.BatchSize,
		MaxBatches: prof.MaxBatches,
		RoundDelay: prof.RoundDelay.Std(),
		SaveEvery:  prof.SaveEvery,
		Deadline:   prof.Deadline.Std(),
	}, mx)

	return &Module{svc: svc, prof: prof}, nil
}

// Service returns the orchestrator
func (m *Module) Service() *service.Service { return m.svc }

// Profile returns the profile this module was wired with
func (m *Module) Profile() profile.Profile { return m.prof }

// OpenState builds the state store o selects against the store facade.
// The status and found commands use it without wiring a whole scan
func OpenState(ctx context.Context, o Options, st *store.Store) (domain.StateStore, error) {
	switch o.StateBackend {
	case "redis":
		if st == nil || st.RDS == nil {
			return nil, perr.InvalidArgf("state backend redis needs a configured redis connection")
		}
		return repo.NewRedis(st.RDS)
	case "postgres":
		if st == nil || st.PG == nil {
			return nil, perr.InvalidArgf("state backend postgres needs a configured postgres connection")
		}
		return repo.NewPostgres(ctx, st.PG)
	default:
		return repo.NewFile(o.StateDir)
	}
}
