package netsrv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

func TestNewServerDefaultsAndRouter(t *testing.T) {
	s := NewServer(config.New().Prefix("CORE_API_"), func(m *chi.Mux) {
		m.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	if s.Addr() != ":4770" {
		t.Fatalf("default addr = %q, want :4770", s.Addr())
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("mounted route status = %d", rec.Code)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Setenv("CORE_API_ADDR", "127.0.0.1:0")
	s := NewServer(config.New().Prefix("CORE_API_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after cancel = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestAccessLogPassesThrough(t *testing.T) {
	h := AccessLog(AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tld"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusTeapot || rec.Body.String() != "tld" {
		t.Fatalf("accesslog altered response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestRecoverJSON(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/found", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("recover status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("recover content type = %q", ct)
	}
	var body panicWire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("recover body decode: %v", err)
	}
	if body.StatusCode != http.StatusInternalServerError {
		t.Fatalf("recover body = %+v", body)
	}
}

func TestRespondOKAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondOK(rec, httptest.NewRequest(http.MethodGet, "/", nil), map[string]int{"rounds": 3})

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope decode: %v", err)
	}
	if env.StatusCode != http.StatusOK || env.Error != "" {
		t.Fatalf("RespondOK envelope = %+v", env)
	}

	rec = httptest.NewRecorder()
	RespondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), perr.NotFoundf("no run recorded"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("RespondError status = %d", rec.Code)
	}
	env = Envelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("error envelope decode: %v", err)
	}
	if env.Code != perr.ErrorCodeNotFound || env.Error != "no run recorded" {
		t.Fatalf("RespondError envelope = %+v", env)
	}
}

func TestRespondList(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondList(rec, httptest.NewRequest(http.MethodGet, "/", nil), []string{"ab.io"}, Page{Total: 1, Limit: 50})

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("list envelope decode: %v", err)
	}
	if env.Page == nil || env.Page.Total != 1 || env.Page.Limit != 50 {
		t.Fatalf("RespondList page = %+v", env.Page)
	}
}
