// Package pricing resolves yearly zone prices and applies the run's price ceiling
package pricing

import "strings"

// Table resolves a zone's yearly registration price, with a default
// for unlisted zones, and answers ceiling questions for the scan
type Table struct {
	prices  map[string]float64
	def     float64
	ceiling float64
}

// New builds a table from zone→price entries (keys spelled with their
// leading dot, ".io"), a default price for unlisted zones, and a yearly
// ceiling. A ceiling <= 0 disables price filtering entirely
func New(prices map[string]float64, def, ceiling float64) *Table {
	t := &Table{prices: make(map[string]float64, len(prices)), def: def, ceiling: ceiling}
	for z, p := range prices {
		t.prices[key(z)] = p
	}
	return t
}

func key(zone string) string {
	z := strings.ToLower(strings.TrimSpace(zone))
	if z != "" && !strings.HasPrefix(z, ".") {
		z = "." + z
	}
	return z
}

// Price returns the yearly price for zone, falling back to the default.
// Accepts the zone with or without its leading dot
func (t *Table) Price(zone string) float64 {
	if p, ok := t.prices[key(zone)]; ok {
		return p
	}
	return t.def
}

// Ceiling returns the configured yearly ceiling; 0 means unlimited
func (t *Table) Ceiling() float64 { return t.ceiling }

// Over reports whether amount exceeds the ceiling.
// A disabled ceiling never filters
func (t *Table) Over(amount float64) bool {
	return t.ceiling > 0 && amount > t.ceiling
}

// Affordable reports whether zone's table price is within the ceiling
func (t *Table) Affordable(zone string) bool { return !t.Over(t.Price(zone)) }

// ZoneOf extracts the zone of a full domain name, spelled with its
// leading dot ("ab.co.uk" → ".co.uk"). Returns "" when the name
// carries no zone
func ZoneOf(domain string) string {
	if _, rest, ok := strings.Cut(domain, "."); ok && rest != "" {
		return "." + rest
	}
	return ""
}
