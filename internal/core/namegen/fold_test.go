package namegen

import (
	"strings"
	"testing"
)

func TestFoldLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"shop", "shop"},
		{"Shop", "shop"},
		{"Café", "cafe"},
		{"naïve", "naive"},
		{" Hello World! ", "helloworld"},
		{"rock-it", "rock-it"},
		{"--edge--", "edge"},
		{"ＦＵＬＬ", "full"},
		{"under_score", "underscore"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := FoldLabel(tc.in); got != tc.want {
			t.Fatalf("FoldLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFoldLabelsDedupes(t *testing.T) {
	got := FoldLabels([]string{"Café", "cafe", "", "Go!", "go"})
	want := []string{"cafe", "go"}
	if len(got) != len(want) {
		t.Fatalf("FoldLabels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FoldLabels = %v, want %v", got, want)
		}
	}
}

func TestFoldZones(t *testing.T) {
	got := FoldZones([]string{".IO", "io", " dev ", ".co.uk", ".", ""})
	want := []string{"io", "dev", "co.uk"}
	if len(got) != len(want) {
		t.Fatalf("FoldZones = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FoldZones = %v, want %v", got, want)
		}
	}
}

func TestDomain(t *testing.T) {
	if got := Domain("shop", "io"); got != "shop.io" {
		t.Fatalf("Domain = %q", got)
	}

	// non-ASCII labels come out in registrable ASCII form
	got := Domain("日本", "io")
	if !strings.HasPrefix(got, "xn--") || !strings.HasSuffix(got, ".io") {
		t.Fatalf("Domain(日本) = %q, want punycode label in .io", got)
	}
	for _, r := range got {
		if r > 127 {
			t.Fatalf("Domain(日本) = %q still contains non-ASCII", got)
		}
	}
}
