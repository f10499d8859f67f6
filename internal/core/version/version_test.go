package version

import "testing"

func TestInfoDefaults(t *testing.T) {
	t.Parallel()

	bi := Info()
	if bi.Service != "domain-radar" {
		t.Fatalf("service = %q", bi.Service)
	}
	if bi.Version != "dev" || bi.Commit != "none" || bi.Date != "unknown" {
		t.Fatalf("unexpected defaults: %+v", bi)
	}
}
