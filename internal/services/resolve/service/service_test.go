package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/services/resolve/domain"
)

type fakeBulk struct {
	mu    sync.Mutex
	calls [][]string
	res   map[string]check.Verdict
	err   error
}

func (f *fakeBulk) Status(_ context.Context, domains []string) (map[string]check.Verdict, error) {
	f.mu.Lock()
	cp := append([]string(nil), domains...)
	f.calls = append(f.calls, cp)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

type fakeZone struct {
	mu       sync.Mutex
	calls    []string
	deadline bool
	res      map[string]check.Verdict
	err      error
}

func (f *fakeZone) Check(ctx context.Context, d string) (check.Verdict, error) {
	f.mu.Lock()
	f.calls = append(f.calls, d)
	_, f.deadline = ctx.Deadline()
	f.mu.Unlock()
	if f.err != nil {
		return check.Verdict{}, f.err
	}
	if v, ok := f.res[d]; ok {
		return v, nil
	}
	return check.Undecided(d, "zone undecided"), nil
}

type fakeDeleg struct {
	mu    sync.Mutex
	calls []string
	res   map[string]check.Verdict
}

func (f *fakeDeleg) Check(_ context.Context, d string) check.Verdict {
	f.mu.Lock()
	f.calls = append(f.calls, d)
	f.mu.Unlock()
	if v, ok := f.res[d]; ok {
		return v
	}
	return check.Undecided(d, "no delegation in answer, confirm manually")
}

func taken(d string, m check.Method) check.Verdict {
	return check.Verdict{Domain: d, Method: m, Availability: check.Taken}
}

func available(d string, m check.Method) check.Verdict {
	return check.Verdict{Domain: d, Method: m, Availability: check.Available}
}

func TestCheckBulkShortCircuits(t *testing.T) {
	b := &fakeBulk{res: map[string]check.Verdict{"ab.io": available("ab.io", check.MethodBulk)}}
	z := &fakeZone{}
	n := &fakeDeleg{}
	s := New(domain.Ports{Bulk: b, Zone: z, Delegation: n}, Config{}, nil)

	v, err := s.Check(context.Background(), "ab.io")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if v.Method != check.MethodBulk || v.Availability != check.Available {
		t.Fatalf("verdict = %+v", v)
	}
	if len(z.calls) != 0 || len(n.calls) != 0 {
		t.Fatal("later tiers ran after a definite bulk answer")
	}
}

func TestCheckFallsThroughTiers(t *testing.T) {
	b := &fakeBulk{err: perr.Newf(perr.ErrorCodeUnavailable, "down")}
	z := &fakeZone{} // undecided
	n := &fakeDeleg{res: map[string]check.Verdict{"ab.io": taken("ab.io", check.MethodNS)}}
	s := New(domain.Ports{Bulk: b, Zone: z, Delegation: n}, Config{}, nil)

	v, err := s.Check(context.Background(), "ab.io")
	if err != nil {
		t.Fatalf("bulk failure must degrade, got %v", err)
	}
	if v.Method != check.MethodNS || v.Availability != check.Taken {
		t.Fatalf("verdict = %+v", v)
	}
	if len(z.calls) != 1 || len(n.calls) != 1 {
		t.Fatalf("tier calls zone=%d ns=%d, want 1 each", len(z.calls), len(n.calls))
	}
	if !z.deadline {
		t.Fatal("zone tier must run under a deadline")
	}
}

func TestCheckAllTiersUndecided(t *testing.T) {
	s := New(domain.Ports{Zone: &fakeZone{}, Delegation: &fakeDeleg{}}, Config{}, nil)

	v, err := s.Check(context.Background(), "ab.io")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if v.Availability != check.Unknown || v.Note == "" {
		t.Fatalf("verdict = %+v, want noted unknown", v)
	}
}

func TestCheckBootstrapFatal(t *testing.T) {
	z := &fakeZone{err: perr.Newf(perr.ErrorCodeBootstrap, "no endpoint map")}
	s := New(domain.Ports{Zone: z, Delegation: &fakeDeleg{}}, Config{}, nil)

	_, err := s.Check(context.Background(), "ab.io")
	if !perr.IsCode(err, perr.ErrorCodeBootstrap) {
		t.Fatalf("error = %v, want bootstrap surfaced distinctly", err)
	}
}

func TestCheckBatchKeyedComplete(t *testing.T) {
	b := &fakeBulk{res: map[string]check.Verdict{"aa.io": taken("aa.io", check.MethodBulk)}}
	z := &fakeZone{res: map[string]check.Verdict{"bb.io": available("bb.io", check.MethodRDAP)}}
	n := &fakeDeleg{}
	s := New(domain.Ports{Bulk: b, Zone: z, Delegation: n}, Config{}, nil)

	domains := []string{"aa.io", "bb.io", "cc.io"}
	got, err := s.CheckBatch(context.Background(), domains)
	if err != nil {
		t.Fatalf("CheckBatch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("result size = %d, want an entry per requested name", len(got))
	}
	if got["aa.io"].Method != check.MethodBulk {
		t.Fatalf("aa.io = %+v", got["aa.io"])
	}
	if got["bb.io"].Method != check.MethodRDAP {
		t.Fatalf("bb.io = %+v", got["bb.io"])
	}
	if v := got["cc.io"]; v.Availability != check.Unknown || v.Note == "" {
		t.Fatalf("cc.io = %+v, want noted unknown", v)
	}
}

func TestCheckBatchOneBulkCallAndTargetedFallback(t *testing.T) {
	b := &fakeBulk{res: map[string]check.Verdict{
		"aa.io": available("aa.io", check.MethodBulk),
		"bb.io": taken("bb.io", check.MethodBulk),
	}}
	z := &fakeZone{}
	n := &fakeDeleg{}
	s := New(domain.Ports{Bulk: b, Zone: z, Delegation: n}, Config{MaxFallback: 2}, nil)

	domains := []string{"aa.io", "bb.io", "cc.io", "dd.io"}
	if _, err := s.CheckBatch(context.Background(), domains); err != nil {
		t.Fatalf("CheckBatch: %v", err)
	}

	if len(b.calls) != 1 {
		t.Fatalf("bulk calls = %d, want exactly one for the batch", len(b.calls))
	}
	if len(b.calls[0]) != 4 {
		t.Fatalf("bulk batch = %v, want all four domains", b.calls[0])
	}

	sort.Strings(z.calls)
	if len(z.calls) != 2 || z.calls[0] != "cc.io" || z.calls[1] != "dd.io" {
		t.Fatalf("fallback ran for %v, want only the unresolved names", z.calls)
	}
}

func TestCheckBatchBulkErrorDegrades(t *testing.T) {
	b := &fakeBulk{err: perr.Newf(perr.ErrorCodeTooManyRequests, "rate limited")}
	z := &fakeZone{res: map[string]check.Verdict{
		"aa.io": available("aa.io", check.MethodRDAP),
		"bb.io": taken("bb.io", check.MethodRDAP),
	}}
	s := New(domain.Ports{Bulk: b, Zone: z, Delegation: &fakeDeleg{}}, Config{}, nil)

	got, err := s.CheckBatch(context.Background(), []string{"aa.io", "bb.io"})
	if err != nil {
		t.Fatalf("rate limited bulk must not error the batch: %v", err)
	}
	if got["aa.io"].Availability != check.Available || got["bb.io"].Availability != check.Taken {
		t.Fatalf("fallback results = %+v", got)
	}
}

func TestCheckBatchBootstrapAborts(t *testing.T) {
	z := &fakeZone{err: perr.Newf(perr.ErrorCodeBootstrap, "no endpoint map")}
	s := New(domain.Ports{Zone: z, Delegation: &fakeDeleg{}}, Config{}, nil)

	_, err := s.CheckBatch(context.Background(), []string{"aa.io", "bb.io"})
	if !perr.IsCode(err, perr.ErrorCodeBootstrap) {
		t.Fatalf("error = %v, want bootstrap", err)
	}
}

func TestCheckBatchEmpty(t *testing.T) {
	b := &fakeBulk{}
	s := New(domain.Ports{Bulk: b, Zone: &fakeZone{}, Delegation: &fakeDeleg{}}, Config{}, nil)

	got, err := s.CheckBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("CheckBatch: %v", err)
	}
	if len(got) != 0 || len(b.calls) != 0 {
		t.Fatalf("empty batch produced %v (bulk calls %d)", got, len(b.calls))
	}
}

func TestCheckWithoutBulkTier(t *testing.T) {
	z := &fakeZone{res: map[string]check.Verdict{"ab.io": available("ab.io", check.MethodRDAP)}}
	s := New(domain.Ports{Zone: z, Delegation: &fakeDeleg{}}, Config{}, nil)

	v, err := s.Check(context.Background(), "ab.io")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if v.Method != check.MethodRDAP {
		t.Fatalf("verdict = %+v", v)
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.setDefaults()
	if c.BulkTimeout != 15*time.Second || c.RDAPTimeout != 8*time.Second || c.NSTimeout != 5*time.Second {
		t.Fatalf("tier timeouts = %+v", c)
	}
	if c.MaxFallback != 8 {
		t.Fatalf("max fallback = %d", c.MaxFallback)
	}
}
