// Package service implements tiered domain resolution: bulk status first,
// then the zone's registry endpoint, then a delegation probe. The first
// definite answer wins; tier failures degrade instead of propagating
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
	"github.com/Kropiunig/domain-radar/internal/platform/metrics"
	"github.com/Kropiunig/domain-radar/internal/services/resolve/domain"
)

// Config tunes the tier timeouts and fallback concurrency
type Config struct {
	BulkTimeout time.Duration
	RDAPTimeout time.Duration
	NSTimeout   time.Duration

	// MaxFallback bounds concurrent per-domain fallbacks within a batch
	MaxFallback int
}

func (c *Config) setDefaults() {
	if c.BulkTimeout <= 0 {
		c.BulkTimeout = 15 * time.Second
	}
	if c.RDAPTimeout <= 0 {
		c.RDAPTimeout = 8 * time.Second
	}
	if c.NSTimeout <= 0 {
		c.NSTimeout = 5 * time.Second
	}
	if c.MaxFallback <= 0 {
		c.MaxFallback = 8
	}
}

// Service implements domain.CheckerPort
type Service struct {
	ports domain.Ports
	cfg   Config
	log   logger.Logger
	mx    *metrics.Metrics
}

// New constructs the resolution service
func New(ports domain.Ports, cfg Config, mx *metrics.Metrics) *Service {
	cfg.setDefaults()
	return &Service{
		ports: ports,
		cfg:   cfg,
		log:   *logger.Named("resolve"),
		mx:    mx,
	}
}

// Check resolves one domain through the tiers in strict order
func (s *Service) Check(ctx context.Context, dom string) (check.Verdict, error) {
	if s.ports.Bulk != nil {
		bctx, cancel := context.WithTimeout(ctx, s.cfg.BulkTimeout)
		vs, err := s.ports.Bulk.Status(bctx, []string{dom})
		cancel()
		if err != nil {
			s.log.Debug().Err(err).Str("domain", dom).Msg("bulk tier inconclusive")
		} else if v, ok := vs[dom]; ok && v.Availability.Definite() {
			s.observe(v, time.Time{})
			return v, nil
		}
	}
	return s.fallback(ctx, dom)
}

// CheckBatch resolves a batch: one bulk call for everything, then the
// per-domain tiers, concurrently and bounded, for names still undecided.
// Every requested name has an entry in the returned map
func (s *Service) CheckBatch(ctx context.Context, domains []string) (map[string]check.Verdict, error) {
	out := make(map[string]check.Verdict, len(domains))
	for _, d := range domains {
		out[d] = check.Undecided(d, "unresolved")
	}
	if len(domains) == 0 {
		return out, nil
	}

	if s.ports.Bulk != nil {
		start := time.Now()
		bctx, cancel := context.WithTimeout(ctx, s.cfg.BulkTimeout)
		vs, err := s.ports.Bulk.Status(bctx, domains)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Int("batch", len(domains)).Msg("bulk tier inconclusive for batch")
		} else {
			for d, v := range vs {
				if _, requested := out[d]; requested && v.Availability.Definite() {
					s.observe(v, start)
					out[d] = v
				}
			}
		}
	}

	var unresolved []string
	for _, d := range domains {
		if !out[d].Availability.Definite() {
			unresolved = append(unresolved, d)
		}
	}
	if len(unresolved) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxFallback)
	for _, d := range unresolved {
		d := d
		g.Go(func() error {
			v, err := s.fallback(gctx, d)
			if err != nil {
				return err
			}
			mu.Lock()
			out[d] = v
			mu.Unlock()
			return nil
		})
	}
	// only the fatal bootstrap condition can surface here
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fallback runs the per-domain tiers: zone endpoint, then delegation
func (s *Service) fallback(ctx context.Context, dom string) (check.Verdict, error) {
	last := check.Undecided(dom, "no tier reached a verdict")

	if s.ports.Zone != nil {
		start := time.Now()
		rctx, cancel := context.WithTimeout(ctx, s.cfg.RDAPTimeout)
		v, err := s.ports.Zone.Check(rctx, dom)
		cancel()
		switch {
		case perr.IsCode(err, perr.ErrorCodeBootstrap):
			return check.Verdict{}, err
		case err != nil:
			s.log.Debug().Err(err).Str("domain", dom).Msg("rdap tier inconclusive")
		case v.Availability.Definite():
			s.observe(v, start)
			return v, nil
		default:
			last = v
		}
	}

	if s.ports.Delegation != nil {
		start := time.Now()
		nctx, cancel := context.WithTimeout(ctx, s.cfg.NSTimeout)
		v := s.ports.Delegation.Check(nctx, dom)
		cancel()
		if v.Availability.Definite() {
			s.observe(v, start)
			return v, nil
		}
		last = v
	}

	s.mx.IncrementProbe("none", string(check.Unknown))
	return last, nil
}

func (s *Service) observe(v check.Verdict, start time.Time) {
	s.mx.IncrementProbe(string(v.Method), string(v.Availability))
	if !start.IsZero() {
		s.mx.ObserveProbeLatency(string(v.Method), time.Since(start))
	}
}
