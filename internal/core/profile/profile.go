// Package profile loads and validates the YAML scan profile: the
// collections the generation engine draws from plus the knobs that shape
// a run (round size, batching, pricing, cadence)
package profile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Kropiunig/domain-radar/internal/core/namegen"
	"github.com/Kropiunig/domain-radar/internal/core/pricing"
	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
)

// Duration parses YAML duration strings like "2s" or "1h30m"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Profile is one scan's configuration document
type Profile struct {
	Zones      []string `yaml:"zones" validate:"required,min=1,dive,zone"`
	Keywords   []string `yaml:"keywords" validate:"omitempty,dive,min=1"`
	Names      []string `yaml:"names" validate:"omitempty,dive,min=1"`
	Strategies []string `yaml:"strategies" validate:"omitempty,dive,oneof=two-letter three-letter four-letter digits keywords keyword-pairs names"`

	// Prices maps a zone spelled with its leading dot to USD per year
	Prices       map[string]float64 `yaml:"prices" validate:"omitempty,dive,gte=0"`
	DefaultPrice float64            `yaml:"default_price" validate:"gte=0"`
	PriceCeiling float64            `yaml:"price_ceiling" validate:"gte=0"`

	RoundSize  int      `yaml:"round_size" validate:"gt=0"`
	BatchSize  int      `yaml:"batch_size" validate:"gt=0"`
	MaxBatches int      `yaml:"max_concurrent_batches" validate:"gt=0"`
	RoundDelay Duration `yaml:"round_delay" validate:"gte=0"`
	SaveEvery  int      `yaml:"save_every" validate:"gt=0"`

	// Deadline bounds the whole run; zero means no wall-clock limit
	Deadline Duration `yaml:"deadline" validate:"gte=0"`
}

// Default returns the profile baseline; loaded documents override it field by field
func Default() Profile {
	return Profile{
		Zones:        []string{".com"},
		DefaultPrice: 15,
		PriceCeiling: 40,
		RoundSize:    100,
		BatchSize:    10,
		MaxBatches:   4,
		RoundDelay:   Duration(2 * time.Second),
		SaveEvery:    500,
	}
}

// Load reads, parses and validates the profile at path.
// Unknown keys and malformed values are Validation errors
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, perr.Wrapf(err, perr.ErrorCodeValidation, "read profile %s", path)
	}
	return Parse(data)
}

// Parse decodes a profile document over the defaults and validates it
func Parse(data []byte) (Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, perr.Validationf("parse profile: %v", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the document against the profile rules
func (p Profile) Validate() error {
	if err := validate().Struct(p); err != nil {
		field, msg := firstFieldAndMessage(err)
		return perr.WithField(perr.Validationf("invalid profile: %s", msg), field)
	}
	return nil
}

// GeneratorConfig maps the profile onto the generation engine's inputs
func (p Profile) GeneratorConfig() namegen.Config {
	return namegen.Config{
		Zones:    p.Zones,
		Keywords: p.Keywords,
		Names:    p.Names,
		Enabled:  p.Strategies,
	}
}

// PriceTable builds the pricing table this profile configures
func (p Profile) PriceTable() *pricing.Table {
	return pricing.New(p.Prices, p.DefaultPrice, p.PriceCeiling)
}
