package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()

	MustNotPanic(t, func() {
		// no panic
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	haystack := "two-letter three-letter keywords"
	MustContain(t, haystack, "three-letter")
}

func TestEventually(t *testing.T) {
	t.Parallel()

	var flips atomic.Int32
	go func() {
		time.Sleep(20 * time.Millisecond)
		flips.Store(1)
	}()
	Eventually(t, time.Second, 5*time.Millisecond, func() bool {
		return flips.Load() == 1
	}, "flag never flipped")
}
