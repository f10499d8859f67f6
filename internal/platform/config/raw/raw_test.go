package raw

import "testing"

func TestGetTrimsAndDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  debug  ")

	c := New().Prefix("LOG_")
	if got := c.Get("LEVEL", "info"); got != "debug" {
		t.Fatalf("Get LEVEL = %q, want %q", got, "debug")
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get FORMAT default = %q, want %q", got, "console")
	}
}

func TestGetBool(t *testing.T) {
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"nope", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		t.Setenv("LOG_CALLER", tc.val)
		c := New().Prefix("LOG_")
		if got := c.GetBool("CALLER", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	cases := []struct {
		val  string
		def  int
		want int
	}{
		{"10", 1, 10},
		{"0", 5, 0},
		{"-3", 5, 5},
		{"12x", 5, 5},
		{"", 7, 7},
	}
	for _, tc := range cases {
		t.Setenv("LOG_SAMPLE_EVERY", tc.val)
		c := New().Prefix("LOG_")
		if got := c.GetInt("SAMPLE_EVERY", tc.def); got != tc.want {
			t.Fatalf("GetInt(%q, %d) = %d, want %d", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestPrefixComposes(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_ADDR", "db:5432")

	c := New().Prefix("SERVICE_").Prefix("PGSQL_")
	if got := c.Get("ADDR", ""); got != "db:5432" {
		t.Fatalf("nested prefix Get = %q, want %q", got, "db:5432")
	}
}
