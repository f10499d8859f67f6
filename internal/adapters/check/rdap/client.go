// Package rdap checks single domains against each zone's RDAP service,
// discovered through the IANA bootstrap registry
package rdap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
)

const (
	defaultTimeout = 8 * time.Second
	defaultUA      = "domain-radar"
)

// Options configures the Client
type Options struct {
	// BootstrapURL overrides the IANA document location (tests, mirrors)
	BootstrapURL string

	// DisableFallback turns a failed bootstrap fetch into a fatal error
	// instead of switching to the static zone map
	DisableFallback bool

	UserAgent string
	Timeout   time.Duration
}

// Client resolves domains per zone. The endpoint registry is fetched
// once and cached for the process lifetime
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger

	mu     sync.Mutex
	reg    map[string]string
	loaded bool
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BootstrapURL == "" {
		o.BootstrapURL = BootstrapURL
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("rdap"),
	}
}

// errorDoc is the RDAP error object a registry returns for unregistered
// names; only a decodable error object makes a 404 a definite answer
type errorDoc struct {
	ErrorCode int    `json:"errorCode"`
	Title     string `json:"title"`
}

// Check looks up one domain against its zone's RDAP endpoint.
// The only error it returns is the fatal bootstrap condition; every
// lookup-level failure degrades to an unknown verdict
func (c *Client) Check(ctx context.Context, domain string) (check.Verdict, error) {
	reg, err := c.registry(ctx)
	if err != nil {
		return check.Verdict{}, err
	}

	base, ok := endpointFor(reg, domain)
	if !ok {
		return check.Undecided(domain, "no rdap endpoint for zone"), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"domain/"+domain, nil)
	if err != nil {
		return check.Undecided(domain, "rdap request build failed"), nil
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/rdap+json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("domain", domain).Msg("rdap lookup failed")
		return check.Undecided(domain, "rdap lookup failed"), nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("domain", domain).Msg("rdap close body failed")
		}
	}()

	c.log.Debug().
		Str("domain", domain).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("rdap response")

	switch resp.StatusCode {
	case http.StatusNotFound:
		// only a well-formed RDAP error object proves the name is unregistered
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var e errorDoc
		if json.Unmarshal(b, &e) == nil && e.ErrorCode == http.StatusNotFound {
			return check.Verdict{Domain: domain, Method: check.MethodRDAP, Availability: check.Available}, nil
		}
		return check.Undecided(domain, "rdap 404 without error object"), nil
	case http.StatusOK:
		return check.Verdict{Domain: domain, Method: check.MethodRDAP, Availability: check.Taken}, nil
	case http.StatusTooManyRequests:
		return check.Undecided(domain, "rdap rate limited"), nil
	default:
		return check.Undecided(domain, "rdap status "+strconv.Itoa(resp.StatusCode)), nil
	}
}

// Zones exposes the loaded registry size for diagnostics
func (c *Client) Zones(ctx context.Context) (int, error) {
	reg, err := c.registry(ctx)
	if err != nil {
		return 0, err
	}
	return len(reg), nil
}
