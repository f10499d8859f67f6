package bulk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
)

func testClient(baseURL string) *Client {
	c := NewClient(Options{BaseURL: baseURL, ClientID: "cid-123", MaxRetries: 2, RetryBase: time.Millisecond})
	c.sleep = func(time.Duration) {}
	return c
}

func TestStatusJoinsBatchIntoOneCall(t *testing.T) {
	var calls atomic.Int32
	var gotDomains, gotClientID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotDomains = r.URL.Query().Get("domain")
		gotClientID = r.URL.Query().Get("client_id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":[
			{"domain":"ab.io","summary":"inactive"},
			{"domain":"cd.io","summary":"active"}
		]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Status(context.Background(), []string{"ab.io", "cd.io", "ef.io"})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want exactly one bulk call", calls.Load())
	}
	if gotDomains != "ab.io,cd.io,ef.io" {
		t.Fatalf("domain param = %q", gotDomains)
	}
	if gotClientID != "cid-123" {
		t.Fatalf("client_id param = %q", gotClientID)
	}

	if len(got) != 2 {
		t.Fatalf("verdicts = %d, want 2 (ef.io unanswered)", len(got))
	}
	if v := got["ab.io"]; v.Availability != check.Available || v.Method != check.MethodBulk {
		t.Fatalf("ab.io verdict = %+v", v)
	}
	if v := got["cd.io"]; v.Availability != check.Taken {
		t.Fatalf("cd.io verdict = %+v", v)
	}
	if _, present := got["ef.io"]; present {
		t.Fatal("unanswered domain must stay undecided")
	}
}

func TestStatusPremiumPricePassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":[{"domain":"AB.IO","summary":"priced","premium":true,"price":120}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Status(context.Background(), []string{"ab.io"})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	v, ok := got["ab.io"]
	if !ok {
		t.Fatalf("response domain not folded to requested key: %v", got)
	}
	if v.Availability != check.Available || !v.Premium || v.Price != 120 {
		t.Fatalf("verdict = %+v", v)
	}
}

func TestStatusSkipsUnknownSummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":[{"domain":"ab.io","summary":"tea-leaves"}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Status(context.Background(), []string{"ab.io"})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("uninterpretable summary must stay undecided, got %v", got)
	}
}

func TestStatusRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var slept []time.Duration
	c := NewClient(Options{BaseURL: srv.URL, MaxRetries: 2, RetryBase: time.Millisecond})
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	_, err := c.Status(context.Background(), []string{"ab.io"})
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("error = %v, want too many requests", err)
	}
	if len(slept) != 2 {
		t.Fatalf("retried %d times, want 2", len(slept))
	}
	if slept[0] != time.Second {
		t.Fatalf("first backoff = %v, want Retry-After honored", slept[0])
	}
}

func TestStatusRetriesTransient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":[{"domain":"ab.io","summary":"inactive"}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Status(context.Background(), []string{"ab.io"})
	if err != nil {
		t.Fatalf("Status after transient: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want retry then success", calls.Load())
	}
	if got["ab.io"].Availability != check.Available {
		t.Fatalf("verdict = %+v", got["ab.io"])
	}
}

func TestStatusMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Status(context.Background(), []string{"ab.io"})
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("error = %v, want json code", err)
	}
}

func TestStatusEmptyBatch(t *testing.T) {
	got, err := testClient("http://unused.invalid").Status(context.Background(), nil)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("verdicts = %v, want empty", got)
	}
}

func TestStatusUnconfigured(t *testing.T) {
	_, err := testClient("").Status(context.Background(), []string{"ab.io"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("error = %v, want invalid argument", err)
	}
}

func TestStatusContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testClient("http://unused.invalid").Status(ctx, []string{"ab.io"})
	if err == nil {
		t.Fatal("expected error after cancel")
	}
}
