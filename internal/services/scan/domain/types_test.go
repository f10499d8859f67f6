package domain

import (
	"testing"
	"time"
)

func TestCheckedSetMonotone(t *testing.T) {
	s := NewCheckedSet("bb.io", "aa.io")

	if !s.Has("aa.io") || s.Len() != 2 {
		t.Fatalf("seeded set wrong: len=%d", s.Len())
	}
	if s.Add("aa.io") {
		t.Fatal("re-adding a member must report false")
	}
	if !s.Add("cc.io") {
		t.Fatal("new member must report true")
	}

	got := s.Sorted()
	want := []string{"aa.io", "bb.io", "cc.io"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted = %v, want %v", got, want)
		}
	}
}

func TestFoundRegistryUniqueByDomain(t *testing.T) {
	r := NewFoundRegistry()

	if !r.Append(Finding{Domain: "ab.io", Strategy: "two-letter"}) {
		t.Fatal("first append must succeed")
	}
	if r.Append(Finding{Domain: "ab.io", Strategy: "digits"}) {
		t.Fatal("duplicate domain must be a no-op")
	}
	if !r.Append(Finding{Domain: "cd.io"}) {
		t.Fatal("distinct domain must append")
	}

	all := r.All()
	if len(all) != 2 || all[0].Domain != "ab.io" || all[1].Domain != "cd.io" {
		t.Fatalf("All = %v", all)
	}
	if all[0].Strategy != "two-letter" {
		t.Fatal("duplicate append must not overwrite the original finding")
	}
	if !r.Has("ab.io") || r.Has("zz.io") {
		t.Fatal("Has wrong")
	}
}

func TestFoundRegistrySeededDropsDuplicates(t *testing.T) {
	r := NewFoundRegistry(
		Finding{Domain: "ab.io", CheckedAt: time.Unix(1, 0)},
		Finding{Domain: "ab.io", CheckedAt: time.Unix(2, 0)},
	)
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	if got := r.All()[0].CheckedAt; !got.Equal(time.Unix(1, 0)) {
		t.Fatalf("kept finding = %v, want the first", got)
	}
}

func TestRegistryAllIsACopy(t *testing.T) {
	r := NewFoundRegistry(Finding{Domain: "ab.io"})
	all := r.All()
	all[0].Domain = "mutated"
	if r.All()[0].Domain != "ab.io" {
		t.Fatal("All must return a copy")
	}
}
