package module

import (
	"github.com/Kropiunig/domain-radar/internal/platform/config"
)

// Options holds configuration settings for the scan module
type Options struct {
	ProfilePath string
	Verbose     bool

	StateBackend string
	StateDir     string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCAN_")
	st := cfg.Prefix("CORE_STATE_")
	return Options{
		ProfilePath: sc.MayString("PROFILE", ""),
		Verbose:     sc.MayBool("VERBOSE", false),

		StateBackend: st.MayEnum("BACKEND", "file", "file", "redis", "postgres"),
		StateDir:     st.MayString("DIR", ".domain-radar"),
	}
}
