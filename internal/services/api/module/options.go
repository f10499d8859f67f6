package module

import (
	"github.com/Kropiunig/domain-radar/internal/platform/config"
)

// Options holds configuration settings for the status API
type Options struct {
	Enabled     bool
	CORSOrigins []string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_API_")
	return Options{
		Enabled:     af.MayBool("ENABLED", false),
		CORSOrigins: af.MayCSV("CORS_ORIGINS", []string{"*"}),
	}
}
