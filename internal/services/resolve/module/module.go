// Package module wires the resolution engine: adapters from config,
// with injected overrides for tests
package module

import (
	"github.com/Kropiunig/domain-radar/internal/adapters/check/bulk"
	"github.com/Kropiunig/domain-radar/internal/adapters/check/delegation"
	"github.com/Kropiunig/domain-radar/internal/adapters/check/rdap"
	"github.com/Kropiunig/domain-radar/internal/platform/config"
	"github.com/Kropiunig/domain-radar/internal/platform/metrics"
	"github.com/Kropiunig/domain-radar/internal/services/resolve/domain"
	"github.com/Kropiunig/domain-radar/internal/services/resolve/service"
)

// Module exposes the resolution engine port
type Module struct {
	checker domain.CheckerPort
}

// New constructs the resolve module. Zero-value overrides build every
// adapter from config; the bulk tier stays off without a configured URL
func New(cfg config.Conf, mx *metrics.Metrics, overrides domain.Ports) *Module {
	o := FromConfig(cfg)

	ports := overrides
	if ports.Bulk == nil && o.BulkURL != "" {
		ports.Bulk = bulk.NewClient(bulk.Options{
			BaseURL:  o.BulkURL,
			ClientID: o.BulkClientID,
			Timeout:  o.BulkTimeout,
		})
	}
	if ports.Zone == nil {
		ports.Zone = rdap.NewClient(rdap.Options{
			BootstrapURL:    o.BootstrapURL,
			DisableFallback: o.StrictBootstrap,
			Timeout:         o.RDAPTimeout,
		})
	}
	if ports.Delegation == nil {
		ports.Delegation = delegation.NewClient(delegation.Options{
			Resolver: o.Resolver,
			Timeout:  o.NSTimeout,
		})
	}

	svc := service.New(ports, service.Config{
		BulkTimeout: o.BulkTimeout,
		RDAPTimeout: o.RDAPTimeout,
		NSTimeout:   o.NSTimeout,
		MaxFallback: o.MaxFallback,
	}, mx)

	return &Module{checker: svc}
}

// Checker returns the resolution port
func (m *Module) Checker() domain.CheckerPort { return m.checker }
