package delegation

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/miekg/dns"

	"github.com/Kropiunig/domain-radar/internal/core/check"
)

// testResolver runs a loopback DNS server whose answers depend on the
// queried name: free.* is NXDOMAIN, held.* has an NS set, weird.* fails
func testResolver(t *testing.T) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			name := strings.ToLower(r.Question[0].Name)
			switch {
			case strings.HasPrefix(name, "free."):
				m.SetRcode(r, dns.RcodeNameError)
			case strings.HasPrefix(name, "held."):
				ns, _ := dns.NewRR(name + " 300 IN NS ns1.example.net.")
				m.Answer = append(m.Answer, ns)
			case strings.HasPrefix(name, "weird."):
				m.SetRcode(r, dns.RcodeServerFailure)
			}
			_ = w.WriteMsg(m)
		}),
	}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })
	return pc.LocalAddr().String()
}

func TestCheckVerdicts(t *testing.T) {
	c := NewClient(Options{Resolver: testResolver(t), Timeout: 2 * time.Second})

	cases := []struct {
		domain string
		want   check.Availability
		method check.Method
	}{
		{"free.io", check.Available, check.MethodNS},
		{"held.io", check.Taken, check.MethodNS},
		{"empty.io", check.Unknown, ""},
		{"weird.io", check.Unknown, ""},
	}
	for _, tc := range cases {
		v := c.Check(context.Background(), tc.domain)
		if v.Availability != tc.want {
			t.Fatalf("Check(%s) availability = %s, want %s (note %q)", tc.domain, v.Availability, tc.want, v.Note)
		}
		if v.Method != tc.method {
			t.Fatalf("Check(%s) method = %q, want %q", tc.domain, v.Method, tc.method)
		}
		if tc.want == check.Unknown && !strings.Contains(v.Note, "confirm manually") {
			t.Fatalf("Check(%s) note = %q, want manual confirmation flag", tc.domain, v.Note)
		}
	}
}

func TestCheckResolverUnreachable(t *testing.T) {
	// reserved port with nothing listening
	c := NewClient(Options{Resolver: "127.0.0.1:1", Timeout: 300 * time.Millisecond})
	v := c.Check(context.Background(), "ab.io")
	if v.Availability != check.Unknown {
		t.Fatalf("verdict = %+v, want unknown on transport failure", v)
	}
}

func TestCheckContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(Options{Resolver: testResolver(t)})
	v := c.Check(ctx, "held.io")
	if v.Availability != check.Unknown {
		t.Fatalf("verdict = %+v, want unknown after cancel", v)
	}
}

func TestDefaults(t *testing.T) {
	c := NewClient(Options{})
	if c.opts.Resolver != defaultResolver || c.opts.Timeout != defaultTimeout {
		t.Fatalf("defaults = %+v", c.opts)
	}
}
