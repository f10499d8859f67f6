// Package http provides the read-only scan API transport
package http

import (
	stdhttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Kropiunig/domain-radar/internal/core/version"
	"github.com/Kropiunig/domain-radar/internal/platform/netsrv"
	scandom "github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

// RunReader exposes the orchestrator's published snapshots
type RunReader interface {
	Status() scandom.RunStatus
	Findings() []scandom.Finding
}

// Register mounts the scan endpoints on the given router
func Register(r chi.Router, runs RunReader) {
	h := &handlers{runs: runs}

	r.Get("/healthz", h.healthz)
	r.Get("/api/status", h.status)
	r.Get("/api/found", h.found)
}

type handlers struct{ runs RunReader }

func (h *handlers) healthz(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	netsrv.RespondOK(w, r, map[string]any{
		"status": "ok",
		"build":  version.Info(),
	})
}

func (h *handlers) status(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	netsrv.RespondOK(w, r, h.runs.Status())
}

func (h *handlers) found(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	fs := h.runs.Findings()
	if zone := r.URL.Query().Get("zone"); zone != "" {
		if !strings.HasPrefix(zone, ".") {
			zone = "." + zone
		}
		kept := fs[:0]
		for _, f := range fs {
			if f.Zone == zone {
				kept = append(kept, f)
			}
		}
		fs = kept
	}
	netsrv.RespondList(w, r, fs, netsrv.Page{Total: len(fs), Limit: len(fs)})
}
