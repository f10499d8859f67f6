package namegen

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// foldPool reuses the transformer chain; building it is not cheap
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// FoldLabel canonicalizes one configured label: case-folded, diacritics and
// format runes stripped, width-folded, then reduced to letters, digits and
// interior hyphens. Returns "" when nothing usable remains
func FoldLabel(s string) string {
	s = strings.ToValidUTF8(s, "")
	tr := foldPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// FoldLabels folds a collection and drops empties and duplicates,
// preserving first-seen order
func FoldLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		f := FoldLabel(s)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// FoldZone folds one zone name label by label, tolerating a leading dot
// (".io" and "io" configure the same zone) and keeping multi-label zones
// such as "co.uk" intact. Returns "" when nothing usable remains
func FoldZone(z string) string {
	z = strings.TrimPrefix(strings.TrimSpace(z), ".")
	parts := strings.Split(z, ".")
	out := parts[:0]
	for _, p := range parts {
		if f := FoldLabel(p); f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, ".")
}

// FoldZones folds a zone collection, dropping empties and duplicates
func FoldZones(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, z := range in {
		f := FoldZone(z)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Domain assembles label.zone and converts it to its registrable ASCII
// form; inputs the IDNA mapping rejects fall back to the raw assembly
func Domain(label, zone string) string {
	d := label + "." + zone
	if a, err := idna.ToASCII(d); err == nil && a != "" {
		return a
	}
	return d
}
