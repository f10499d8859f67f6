// Package module wires the read-only status API onto an http server
package module

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kropiunig/domain-radar/internal/platform/config"
	"github.com/Kropiunig/domain-radar/internal/platform/netsrv"
	apihttp "github.com/Kropiunig/domain-radar/internal/services/api/http"
)

// Module owns the status API server
type Module struct {
	srv *netsrv.Server
}

// New builds the server with the common middleware stack and the scan
// routes mounted. The listener starts when Run is called
func New(cfg config.Conf, runs apihttp.RunReader) *Module {
	o := FromConfig(cfg)

	srv := netsrv.NewServer(cfg.Prefix("CORE_API_"), func(m *chi.Mux) {
		m.Use(chimw.RequestID)
		m.Use(netsrv.RecoverJSON)
		m.Use(cors.Handler(cors.Options{
			AllowedOrigins: o.CORSOrigins,
			AllowedMethods: []string{stdhttp.MethodGet, stdhttp.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		m.Use(netsrv.AccessLog(netsrv.AccessLogOptions{Slow: time.Second}))

		apihttp.Register(m, runs)
		m.Method(stdhttp.MethodGet, "/metrics", promhttp.Handler())
	})

	return &Module{srv: srv}
}

// Server returns the wrapped http server
func (m *Module) Server() *netsrv.Server { return m.srv }
