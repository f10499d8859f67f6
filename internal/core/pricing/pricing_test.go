package pricing

import "testing"

func TestPriceLookupAndDefault(t *testing.T) {
	tbl := New(map[string]float64{".io": 60, "dev": 15.5}, 12, 100)

	cases := []struct {
		zone string
		want float64
	}{
		{".io", 60},
		{"io", 60},
		{".IO", 60},
		{".dev", 15.5},
		{".xyz", 12},
		{"", 12},
	}
	for _, tc := range cases {
		if got := tbl.Price(tc.zone); got != tc.want {
			t.Fatalf("Price(%q) = %v, want %v", tc.zone, got, tc.want)
		}
	}
}

func TestCeilingFiltersPricedOutZones(t *testing.T) {
	tbl := New(map[string]float64{".io": 60}, 12, 20)

	if tbl.Affordable(".io") {
		t.Fatal(".io at 60 should exceed a 20 ceiling")
	}
	if !tbl.Affordable(".xyz") {
		t.Fatal("default-priced zone at 12 should pass a 20 ceiling")
	}
}

func TestOverForPremiumAmounts(t *testing.T) {
	tbl := New(nil, 12, 50)

	if !tbl.Over(120) {
		t.Fatal("premium 120 should exceed a 50 ceiling")
	}
	if tbl.Over(50) {
		t.Fatal("amount equal to the ceiling is not over it")
	}
}

func TestDisabledCeilingNeverFilters(t *testing.T) {
	tbl := New(map[string]float64{".io": 6000}, 12, 0)

	if !tbl.Affordable(".io") {
		t.Fatal("disabled ceiling must not filter zones")
	}
	if tbl.Over(1e9) {
		t.Fatal("disabled ceiling must not flag premium amounts")
	}
}

func TestZoneOf(t *testing.T) {
	cases := []struct {
		domain, want string
	}{
		{"ab.io", ".io"},
		{"ab.co.uk", ".co.uk"},
		{"plain", ""},
		{"trailing.", ""},
	}
	for _, tc := range cases {
		if got := ZoneOf(tc.domain); got != tc.want {
			t.Fatalf("ZoneOf(%q) = %q, want %q", tc.domain, got, tc.want)
		}
	}
}
