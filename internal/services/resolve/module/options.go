package module

import (
	"time"

	"github.com/Kropiunig/domain-radar/internal/platform/config"
)

// Options holds configuration settings for the resolve module
type Options struct {
	BulkURL      string
	BulkClientID string
	BulkTimeout  time.Duration

	BootstrapURL    string
	StrictBootstrap bool
	RDAPTimeout     time.Duration

	Resolver  string
	NSTimeout time.Duration

	MaxFallback int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_RESOLVE_")
	return Options{
		BulkURL:      rf.MayString("BULK_URL", ""),
		BulkClientID: rf.MayString("BULK_CLIENT_ID", ""),
		BulkTimeout:  rf.MayDuration("BULK_TIMEOUT", 15*time.Second),

		BootstrapURL:    rf.MayString("RDAP_BOOTSTRAP_URL", ""),
		StrictBootstrap: rf.MayBool("RDAP_STRICT_BOOTSTRAP", false),
		RDAPTimeout:     rf.MayDuration("RDAP_TIMEOUT", 8*time.Second),

		Resolver:  rf.MayString("NS_RESOLVER", ""),
		NSTimeout: rf.MayDuration("NS_TIMEOUT", 5*time.Second),

		MaxFallback: rf.MayInt("MAX_FALLBACK", 8),
	}
}
