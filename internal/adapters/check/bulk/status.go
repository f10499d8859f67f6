package bulk

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/Kropiunig/domain-radar/internal/core/check"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
)

// statusDoc is the response envelope: one summary entry per domain the
// source chose to answer for
type statusDoc struct {
	Status []statusEntry `json:"status"`
}

type statusEntry struct {
	Domain  string  `json:"domain"`
	Summary string  `json:"summary"`
	Premium bool    `json:"premium"`
	Price   float64 `json:"price"`
}

// Status issues one bulk call for the whole batch and returns verdicts
// for the names the response answered definitely. Requested names absent
// from the response, or answered with a summary we cannot interpret, are
// simply missing from the map
func (c *Client) Status(ctx context.Context, domains []string) (map[string]check.Verdict, error) {
	if len(domains) == 0 {
		return map[string]check.Verdict{}, nil
	}
	if c.opts.BaseURL == "" {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "bulk base url not configured")
	}

	q := url.Values{}
	q.Set("domain", strings.Join(domains, ","))
	if c.opts.ClientID != "" {
		q.Set("client_id", c.opts.ClientID)
	}
	resp, err := c.do(ctx, strings.TrimSuffix(c.opts.BaseURL, "/")+"/v2/status?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("bulk close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "bulk read body failed")
	}
	var doc statusDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "bulk decode failed")
	}

	out := make(map[string]check.Verdict, len(doc.Status))
	for _, e := range doc.Status {
		d := strings.ToLower(strings.TrimSpace(e.Domain))
		if d == "" {
			continue
		}
		avail, ok := summaryAvailability(e.Summary)
		if !ok {
			c.log.Debug().Str("domain", d).Str("summary", e.Summary).Msg("bulk summary not interpretable")
			continue
		}
		out[d] = check.Verdict{
			Domain:       d,
			Method:       check.MethodBulk,
			Availability: avail,
			Premium:      e.Premium,
			Price:        e.Price,
		}
	}
	return out, nil
}

// summaryAvailability maps a source status summary onto the availability
// model. Unrecognized summaries leave the domain undecided
func summaryAvailability(summary string) (check.Availability, bool) {
	switch strings.ToLower(strings.TrimSpace(summary)) {
	case "inactive", "undelegated", "available":
		return check.Available, true
	case "priced", "premium":
		// registrable through the source at a quoted price
		return check.Available, true
	case "active", "registered", "claimed", "reserved", "parked", "marketed", "delegated", "zone", "taken":
		return check.Taken, true
	default:
		return check.Unknown, false
	}
}

func atoiHeader(s string) int {
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(s)
	return i
}
