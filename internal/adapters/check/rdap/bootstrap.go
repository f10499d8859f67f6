package rdap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
)

// BootstrapURL is the IANA registry document mapping each zone to its
// RDAP service endpoint
const BootstrapURL = "https://data.iana.org/rdap/dns.json"

// bootstrapDoc is the IANA bootstrap file shape: each service entry is
// a pair of [zones, endpoint urls]
type bootstrapDoc struct {
	Services [][2][]string `json:"services"`
}

// fallbackEndpoints covers common zones when the bootstrap document
// cannot be fetched
var fallbackEndpoints = map[string]string{
	"com":  "https://rdap.verisign.com/com/v1/",
	"net":  "https://rdap.verisign.com/net/v1/",
	"org":  "https://rdap.publicinterestregistry.org/rdap/",
	"info": "https://rdap.identitydigital.services/rdap/",
	"io":   "https://rdap.identitydigital.services/rdap/",
	"dev":  "https://www.registry.google/rdap/",
	"app":  "https://www.registry.google/rdap/",
	"xyz":  "https://rdap.centralnic.com/xyz/",
	"me":   "https://rdap.nic.me/",
	"co":   "https://rdap.nic.co/",
}

// registry returns the zone→endpoint map, fetching and caching the
// bootstrap document on first use. A failed fetch falls back to the
// static map unless fallback is disabled, which makes it fatal
func (c *Client) registry(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.reg, nil
	}

	reg, err := c.fetchBootstrap(ctx)
	if err != nil {
		if c.opts.DisableFallback {
			return nil, perr.Wrap(err, perr.ErrorCodeBootstrap, "rdap bootstrap unavailable and fallback disabled")
		}
		c.log.Warn().Err(err).Msg("rdap bootstrap fetch failed, using static fallback")
		reg = fallbackEndpoints
	}
	c.reg = reg
	c.loaded = true
	return c.reg, nil
}

func (c *Client) fetchBootstrap(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BootstrapURL, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "rdap bootstrap request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "rdap bootstrap fetch failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("rdap close bootstrap body failed")
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "rdap bootstrap status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "rdap bootstrap read failed")
	}
	var doc bootstrapDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "rdap bootstrap decode failed")
	}

	reg := make(map[string]string, len(doc.Services)*2)
	for _, svc := range doc.Services {
		zones, urls := svc[0], svc[1]
		if len(urls) == 0 {
			continue
		}
		base := urls[0]
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		for _, z := range zones {
			z = strings.ToLower(strings.TrimSpace(z))
			if z != "" {
				reg[z] = base
			}
		}
	}
	if len(reg) == 0 {
		return nil, perr.New(perr.ErrorCodeJSON, "rdap bootstrap document has no services")
	}
	c.log.Info().Int("zones", len(reg)).Msg("rdap bootstrap loaded")
	return reg, nil
}

// endpointFor matches the longest zone suffix of domain present in the
// registry ("ab.co.uk" tries "co.uk" before "uk")
func endpointFor(reg map[string]string, domain string) (string, bool) {
	_, rest, ok := strings.Cut(domain, ".")
	if !ok {
		return "", false
	}
	for rest != "" {
		if base, ok := reg[rest]; ok {
			return base, true
		}
		_, rest, ok = strings.Cut(rest, ".")
		if !ok {
			break
		}
	}
	return "", false
}
