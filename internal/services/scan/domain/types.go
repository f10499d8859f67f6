// Package domain holds the scan run's state types and ports
package domain

import (
	"sort"
	"time"
)

// CheckedSet is the append-only set of domains this installation has
// ever submitted to resolution. Not synchronized; the orchestrator owns
// it between rounds
type CheckedSet struct {
	m map[string]struct{}
}

// NewCheckedSet builds a set from persisted members
func NewCheckedSet(domains ...string) *CheckedSet {
	s := &CheckedSet{m: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		s.m[d] = struct{}{}
	}
	return s
}

// Add inserts domain and reports whether it was new
func (s *CheckedSet) Add(domain string) bool {
	if _, ok := s.m[domain]; ok {
		return false
	}
	s.m[domain] = struct{}{}
	return true
}

// Has reports membership
func (s *CheckedSet) Has(domain string) bool {
	_, ok := s.m[domain]
	return ok
}

// Len returns the member count
func (s *CheckedSet) Len() int { return len(s.m) }

// Sorted returns the members sorted, for stable persistence
func (s *CheckedSet) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for d := range s.m {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Finding is one confirmed-available domain worth keeping
type Finding struct {
	Domain    string    `json:"domain"`
	Strategy  string    `json:"strategy"`
	Zone      string    `json:"zone"`
	Price     float64   `json:"price"`
	Premium   bool      `json:"premium"`
	CheckedAt time.Time `json:"checked_at"`
}

// FoundRegistry is the append-only ordered list of findings, unique by
// domain. Not synchronized; the orchestrator owns it between rounds
type FoundRegistry struct {
	order []Finding
	idx   map[string]int
}

// NewFoundRegistry builds a registry from persisted findings, keeping
// their order and dropping duplicate domains
func NewFoundRegistry(findings ...Finding) *FoundRegistry {
	r := &FoundRegistry{idx: make(map[string]int, len(findings))}
	for _, f := range findings {
		r.Append(f)
	}
	return r
}

// Append records a finding unless its domain is already present,
// reporting whether it was added
func (r *FoundRegistry) Append(f Finding) bool {
	if _, dup := r.idx[f.Domain]; dup {
		return false
	}
	r.idx[f.Domain] = len(r.order)
	r.order = append(r.order, f)
	return true
}

// Has reports whether domain already has a finding
func (r *FoundRegistry) Has(domain string) bool {
	_, ok := r.idx[domain]
	return ok
}

// Len returns the finding count
func (r *FoundRegistry) Len() int { return len(r.order) }

// All returns the findings in append order
func (r *FoundRegistry) All() []Finding {
	out := make([]Finding, len(r.order))
	copy(out, r.order)
	return out
}

// RunStatus is the run's persisted heartbeat, rewritten at every
// checkpoint and at termination
type RunStatus struct {
	RunID         string        `json:"run_id"`
	Running       bool          `json:"running"`
	StartedAt     time.Time     `json:"started_at"`
	LastCompleted time.Time     `json:"last_completed"`
	Checked       int           `json:"checked"`
	Found         int           `json:"found"`
	Skipped       int           `json:"skipped"`
	Rounds        int           `json:"rounds"`
	Duration      time.Duration `json:"duration"`
}
