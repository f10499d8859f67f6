// Package service runs the scan: rounds of generate, filter, resolve,
// settle, persist. Rounds are the synchronization barrier; all shared
// state is owned here and published to readers as copies
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	"github.com/Kropiunig/domain-radar/internal/core/namegen"
	"github.com/Kropiunig/domain-radar/internal/core/pricing"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
	"github.com/Kropiunig/domain-radar/internal/platform/metrics"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

// Config shapes the rounds
type Config struct {
	RoundSize  int
	BatchSize  int
	MaxBatches int

	// RoundDelay is the politeness pacing applied once per round
	RoundDelay time.Duration

	// SaveEvery checkpoints state every N processed domains
	SaveEvery int

	// Deadline bounds the whole run; zero means none
	Deadline time.Duration
}

func (c *Config) setDefaults() {
	if c.RoundSize <= 0 {
		c.RoundSize = 100
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.MaxBatches <= 0 {
		c.MaxBatches = 4
	}
	if c.SaveEvery <= 0 {
		c.SaveEvery = 500
	}
}

// Service is the scan orchestrator
type Service struct {
	ports  domain.Ports
	prices *pricing.Table
	cfg    Config
	log    logger.Logger
	mx     *metrics.Metrics

	limiter *rate.Limiter

	// run-owned state, touched only by the run goroutine
	runID          string
	checked        *domain.CheckedSet
	found          *domain.FoundRegistry
	pendingChecked []string
	sinceSave      int
	skipped        int

	// published view for the status API and concurrent readers
	mu        sync.Mutex
	view      domain.RunStatus
	viewFound []domain.Finding
}

// New constructs the orchestrator
func New(ports domain.Ports, prices *pricing.Table, cfg Config, mx *metrics.Metrics) *Service {
	cfg.setDefaults()
	s := &Service{
		ports:  ports,
		prices: prices,
		cfg:    cfg,
		log:    *logger.Named("scan"),
		mx:     mx,
	}
	if cfg.RoundDelay > 0 {
		s.limiter = rate.NewLimiter(rate.Every(cfg.RoundDelay), 1)
	}
	return s
}

// Status returns the current run view
func (s *Service) Status() domain.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Findings returns the published findings snapshot
func (s *Service) Findings() []domain.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Finding, len(s.viewFound))
	copy(out, s.viewFound)
	return out
}

// Run executes rounds until the generator exhausts, the deadline hits,
// or ctx is canceled. Cancellation is cooperative: the round in flight
// settles, then the final state is persisted with Running false.
// The returned status is the finalized one
func (s *Service) Run(ctx context.Context) (domain.RunStatus, error) {
	s.runID = uuid.NewString()
	ctx = logger.WithRun(ctx, s.runID)
	log := logger.C(ctx)

	checkedList, err := s.ports.Store.LoadChecked(ctx)
	if err != nil {
		return domain.RunStatus{}, perr.Wrap(err, perr.ErrorCodeDB, "load checked set")
	}
	foundList, err := s.ports.Store.LoadFound(ctx)
	if err != nil {
		return domain.RunStatus{}, perr.Wrap(err, perr.ErrorCodeDB, "load found registry")
	}
	s.checked = domain.NewCheckedSet(checkedList...)
	s.found = domain.NewFoundRegistry(foundList...)

	start := time.Now()
	s.mu.Lock()
	s.view = domain.RunStatus{
		RunID:     s.runID,
		Running:   true,
		StartedAt: start,
		Checked:   s.checked.Len(),
		Found:     s.found.Len(),
	}
	s.viewFound = s.found.All()
	s.mu.Unlock()
	if err := s.ports.Store.SaveStatus(ctx, s.Status()); err != nil {
		log.Warn().Err(err).Msg("persist run status failed, continuing")
	}

	log.Info().
		Int("checked", s.checked.Len()).
		Int("found", s.found.Len()).
		Int("round_size", s.cfg.RoundSize).
		Msg("scan starting")

	runCtx := ctx
	if s.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.Deadline)
		defer cancel()
	}

	round := 0
	for {
		round++
		res := s.runRound(logger.WithRound(runCtx, round), round)
		if res.err != nil {
			st := s.finalize(ctx, round)
			return st, res.err
		}
		if runCtx.Err() != nil {
			log.Info().Int("round", round).Msg("stop requested, run settled")
			break
		}
		if res.exhausted && res.processed == 0 {
			log.Info().Int("round", round).Msg("generator exhausted")
			break
		}
	}
	return s.finalize(ctx, round), nil
}

type roundResult struct {
	processed int
	found     int
	skipped   int
	exhausted bool
	err       error
}

// runRound executes one full round and settles it
func (s *Service) runRound(ctx context.Context, round int) roundResult {
	log := logger.C(ctx)
	start := time.Now()
	var res roundResult

	// pull up to RoundSize candidates, filtering before resolution
	var cands []namegen.Candidate
	for i := 0; i < s.cfg.RoundSize; i++ {
		c, ok := s.ports.Generator.Next()
		if !ok {
			res.exhausted = true
			break
		}
		s.mx.IncrementCandidates(c.Strategy, 1)
		if s.checked.Has(c.Name) {
			continue
		}
		if s.prices != nil && !s.prices.Affordable(pricing.ZoneOf(c.Name)) {
			continue
		}
		cands = append(cands, c)
	}
	if len(cands) == 0 {
		return res
	}

	// one politeness wait per round, never per domain
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			// canceled while pacing; nothing dispatched yet
			return res
		}
	}

	domains := make([]string, len(cands))
	for i, c := range cands {
		domains[i] = c.Name
	}

	results := make(map[string]check.Verdict, len(cands))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxBatches)
	for _, batch := range chunk(domains, s.cfg.BatchSize) {
		batch := batch
		g.Go(func() error {
			s.mx.BatchStarted()
			defer s.mx.BatchDone()
			vs, err := s.ports.Checker.CheckBatch(gctx, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			for d, v := range vs {
				results[d] = v
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if perr.IsCode(err, perr.ErrorCodeBootstrap) {
			res.err = err
			return res
		}
		log.Warn().Err(err).Msg("round dispatch degraded, settling with partial results")
	}

	// settle in enumeration order, whatever order the network answered in
	now := time.Now()
	rows := make([]domain.HistoryRow, 0, len(cands))
	for _, c := range cands {
		v, ok := results[c.Name]
		if !ok {
			v = check.Undecided(c.Name, "batch never settled")
		}
		if s.checked.Add(c.Name) {
			s.pendingChecked = append(s.pendingChecked, c.Name)
		}
		res.processed++
		zone := pricing.ZoneOf(c.Name)

		switch v.Availability {
		case check.Available:
			if v.Premium && s.prices != nil && s.prices.Over(v.Price) {
				res.skipped++
				s.skipped++
				s.mx.IncrementSkippedPremium()
				s.ports.Reporter.SkippedPremium(v)
				break
			}
			price := v.Price
			if price == 0 && s.prices != nil {
				price = s.prices.Price(zone)
			}
			f := domain.Finding{
				Domain:    c.Name,
				Strategy:  c.Strategy,
				Zone:      zone,
				Price:     price,
				Premium:   v.Premium,
				CheckedAt: now,
			}
			if s.found.Append(f) {
				res.found++
				s.mx.IncrementFindings(1)
				s.ports.Reporter.Found(v, c.Strategy)
			}
		case check.Taken:
			s.ports.Reporter.Taken(v)
		default:
			s.ports.Reporter.Inconclusive(v)
		}

		rows = append(rows, domain.HistoryRow{
			Domain:       c.Name,
			Zone:         zone,
			Strategy:     c.Strategy,
			Method:       string(v.Method),
			Availability: string(v.Availability),
			Premium:      v.Premium,
			Price:        v.Price,
			CheckedAt:    now,
		})

		s.sinceSave++
		if s.sinceSave >= s.cfg.SaveEvery {
			s.publish(round)
			s.checkpoint(ctx, true)
		}
	}

	if s.ports.History != nil {
		if err := s.ports.History.AppendVerdicts(ctx, s.runID, rows); err != nil {
			log.Warn().Err(err).Msg("history append failed, continuing")
		}
	}

	elapsed := time.Since(start)
	s.mx.IncrementRound(elapsed)
	s.ports.Reporter.RoundDone(round, res.processed, res.found, res.skipped, elapsed)
	s.publish(round)
	if res.found > 0 {
		s.checkpoint(ctx, true)
	}
	return res
}

// publish refreshes the read view from the run-owned state
func (s *Service) publish(round int) {
	s.mu.Lock()
	s.view.Checked = s.checked.Len()
	s.view.Found = s.found.Len()
	s.view.Skipped = s.skipped
	s.view.Rounds = round
	s.view.Duration = time.Since(s.view.StartedAt)
	s.viewFound = s.found.All()
	s.mu.Unlock()
}

// checkpoint persists all three artifacts. Failures are logged and the
// run continues; unsaved checked members stay pending for the next try
func (s *Service) checkpoint(ctx context.Context, running bool) {
	if err := s.ports.Store.SaveChecked(ctx, s.checked.Sorted(), s.pendingChecked); err != nil {
		s.log.Warn().Err(err).Int("pending", len(s.pendingChecked)).Msg("persist checked set failed, continuing")
	} else {
		s.pendingChecked = s.pendingChecked[:0]
	}
	if err := s.ports.Store.SaveFound(ctx, s.found.All()); err != nil {
		s.log.Warn().Err(err).Msg("persist found registry failed, continuing")
	}
	st := s.Status()
	st.Running = running
	if err := s.ports.Store.SaveStatus(ctx, st); err != nil {
		s.log.Warn().Err(err).Msg("persist run status failed, continuing")
	}
	s.sinceSave = 0
	s.mx.IncrementCheckpoints()
}

// finalize runs the single termination path shared by graceful stop,
// deadline and exhaustion: mark the run done and persist everything,
// detached from the (possibly canceled) run context
func (s *Service) finalize(ctx context.Context, rounds int) domain.RunStatus {
	now := time.Now()
	s.mu.Lock()
	s.view.Running = false
	s.view.LastCompleted = now
	s.view.Duration = now.Sub(s.view.StartedAt)
	s.view.Rounds = rounds
	s.view.Checked = s.checked.Len()
	s.view.Found = s.found.Len()
	s.view.Skipped = s.skipped
	s.viewFound = s.found.All()
	st := s.view
	s.mu.Unlock()

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	s.checkpoint(fctx, false)

	s.log.Info().
		Int("checked", st.Checked).
		Int("found", st.Found).
		Dur("duration", st.Duration).
		Msg("scan finished")
	return st
}

func chunk(xs []string, size int) [][]string {
	if size <= 0 {
		size = len(xs)
	}
	var out [][]string
	for len(xs) > size {
		out = append(out, xs[:size])
		xs = xs[size:]
	}
	if len(xs) > 0 {
		out = append(out, xs)
	}
	return out
}
