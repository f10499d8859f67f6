// Package delegation answers availability from a zone's delegation state:
// a name with no delegation at all is available, a delegated name is taken
package delegation

import (
	"context"
	"time"

	"github.com/miekg/dns"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
)

const (
	defaultResolver = "1.1.1.1:53"
	defaultTimeout  = 5 * time.Second
)

// Options configures the Client
type Options struct {
	// Resolver is the recursive resolver to query, host:port
	Resolver string
	Timeout  time.Duration
}

// Client probes NS delegation through a recursive resolver
type Client struct {
	udp  *dns.Client
	tcp  *dns.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.Resolver == "" {
		o.Resolver = defaultResolver
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		udp:  &dns.Client{Timeout: o.Timeout},
		tcp:  &dns.Client{Net: "tcp", Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("ns"),
	}
}

// Check resolves the NS set for domain. NXDOMAIN is a definite available,
// a non-empty NS answer is a definite taken; everything else stays unknown
// and is flagged for manual confirmation
func (c *Client) Check(ctx context.Context, domain string) check.Verdict {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeNS)
	m.RecursionDesired = true

	in, rtt, err := c.udp.ExchangeContext(ctx, m, c.opts.Resolver)
	if err == nil && in != nil && in.Truncated {
		in, rtt, err = c.tcp.ExchangeContext(ctx, m, c.opts.Resolver)
	}
	if err != nil || in == nil {
		c.log.Debug().Err(err).Str("domain", domain).Msg("ns query failed")
		return check.Undecided(domain, "ns query failed, confirm manually")
	}

	c.log.Debug().
		Str("domain", domain).
		Str("rcode", dns.RcodeToString[in.Rcode]).
		Int("answers", len(in.Answer)).
		Dur("rtt", rtt).
		Msg("ns response")

	switch in.Rcode {
	case dns.RcodeNameError:
		return check.Verdict{Domain: domain, Method: check.MethodNS, Availability: check.Available}
	case dns.RcodeSuccess:
		for _, rr := range in.Answer {
			if _, ok := rr.(*dns.NS); ok {
				return check.Verdict{Domain: domain, Method: check.MethodNS, Availability: check.Taken}
			}
		}
		return check.Undecided(domain, "no delegation in answer, confirm manually")
	default:
		return check.Undecided(domain, "ns rcode "+dns.RcodeToString[in.Rcode]+", confirm manually")
	}
}
