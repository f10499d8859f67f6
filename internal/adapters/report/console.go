// Package report renders scan decisions for the operator watching a run
package report

import (
	"time"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
)

// Options configures the console reporter
type Options struct {
	// Verbose also reports taken and inconclusive names, not just findings
	Verbose bool

	// Log overrides the component logger
	Log *logger.Logger
}

// Console reports decisions through the structured log stream
type Console struct {
	log     logger.Logger
	verbose bool
}

// NewConsole creates a Console reporter
func NewConsole(o Options) *Console {
	l := o.Log
	if l == nil {
		l = logger.Named("report")
	}
	return &Console{log: *l, verbose: o.Verbose}
}

// Found reports an available domain that made it into the registry
func (r *Console) Found(v check.Verdict, strategy string) {
	r.log.Info().
		Str("domain", v.Domain).
		Str("strategy", strategy).
		Str("method", string(v.Method)).
		Float64("price", v.Price).
		Bool("premium", v.Premium).
		Msg("domain available")
}

// Taken reports a registered domain
func (r *Console) Taken(v check.Verdict) {
	ev := r.log.Debug()
	if r.verbose {
		ev = r.log.Info()
	}
	ev.Str("domain", v.Domain).Str("method", string(v.Method)).Msg("domain taken")
}

// Inconclusive reports a domain no tier could settle
func (r *Console) Inconclusive(v check.Verdict) {
	ev := r.log.Debug()
	if r.verbose {
		ev = r.log.Info()
	}
	ev.Str("domain", v.Domain).Str("note", v.Note).Msg("domain inconclusive")
}

// SkippedPremium reports an available domain priced over the ceiling
func (r *Console) SkippedPremium(v check.Verdict) {
	r.log.Info().
		Str("domain", v.Domain).
		Float64("price", v.Price).
		Msg("premium over ceiling, skipped")
}

// RoundDone reports round progress
func (r *Console) RoundDone(round, checked, found, skipped int, elapsed time.Duration) {
	r.log.Info().
		Int("round", round).
		Int("checked", checked).
		Int("found", found).
		Int("skipped", skipped).
		Dur("elapsed", elapsed).
		Msg("round done")
}
