// Package namegen produces candidate domain names from configured collections.
//
// Each strategy enumerates the cross product of its own backing collections
// (letter sets, keyword lists, zone subsets) lazily via an odometer walk; the
// collections are shuffled once at construction, so a process start sees a
// randomized order while still covering the space exactly once. The cross
// product itself is never materialized
package namegen

import (
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
)

// Candidate is one generated domain name, tagged with its producing strategy
type Candidate struct {
	Name     string
	Strategy string
}

// Strategy is a synchronous, re-entrant producer of candidate names.
// Next returns false once the strategy's space is exhausted, forever after
type Strategy interface {
	Name() string
	Next() (string, bool)
}

// Strategy tags accepted in configuration
const (
	StrategyTwoLetter    = "two-letter"
	StrategyThreeLetter  = "three-letter"
	StrategyFourLetter   = "four-letter"
	StrategyDigits       = "digits"
	StrategyKeywords     = "keywords"
	StrategyKeywordPairs = "keyword-pairs"
	StrategyNames        = "names"
)

// Config are the folded inputs the catalog draws from
type Config struct {
	Zones    []string
	Keywords []string
	Names    []string

	// Enabled lists the optional strategies to activate; two-letter is always on
	Enabled []string
}

// Catalog builds the active strategy set for cfg.
// The two-letter strategy is mandatory; unknown tags are rejected
func Catalog(cfg Config) ([]Strategy, error) {
	zones := FoldZones(cfg.Zones)
	if len(zones) == 0 {
		return nil, perr.InvalidArgf("no usable zones configured")
	}

	out := []Strategy{TwoLetter(zones)}
	for _, tag := range cfg.Enabled {
		switch tag {
		case StrategyTwoLetter:
			// already active
		case StrategyThreeLetter:
			out = append(out, ThreeLetter(zones))
		case StrategyFourLetter:
			out = append(out, FourLetter(zones))
		case StrategyDigits:
			out = append(out, Digits(zones))
		case StrategyKeywords:
			out = append(out, Keywords(FoldLabels(cfg.Keywords), zones))
		case StrategyKeywordPairs:
			out = append(out, KeywordPairs(FoldLabels(cfg.Keywords), zones))
		case StrategyNames:
			out = append(out, Names(FoldLabels(cfg.Names), zones))
		default:
			return nil, perr.InvalidArgf("unknown strategy %q", tag)
		}
	}
	return out, nil
}

// Generator fairly interleaves a set of strategies round-robin:
// one element per still-active strategy per rotation. Strategies that
// exhaust leave the rotation; when none remain, Next reports false forever
type Generator struct {
	active []Strategy
	cur    int
}

// NewGenerator wraps strategies in a fair round-robin merge
func NewGenerator(strategies ...Strategy) *Generator {
	act := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			act = append(act, s)
		}
	}
	return &Generator{active: act}
}

// Next returns the next candidate, or false when every strategy is exhausted.
// It never blocks on exhaustion
func (g *Generator) Next() (Candidate, bool) {
	for len(g.active) > 0 {
		if g.cur >= len(g.active) {
			g.cur = 0
		}
		s := g.active[g.cur]
		if v, ok := s.Next(); ok {
			g.cur++
			return Candidate{Name: v, Strategy: s.Name()}, true
		}
		// drop the exhausted strategy; the next one slides into cur
		g.active = append(g.active[:g.cur], g.active[g.cur+1:]...)
	}
	return Candidate{}, false
}

// Active reports how many strategies still have elements to produce
func (g *Generator) Active() int { return len(g.active) }
