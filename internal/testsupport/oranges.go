package testsupport

import (
	"testing"
	"time"

	"juicery/internal/orange"
)

// OrangesAt returns n oranges already in state, created without paying any
// simulated cost.
func OrangesAt(state orange.State, n int) []*orange.Orange {
	out := make([]*orange.Orange, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, orange.NewAt(state, orange.InstantClock))
	}
	return out
}

// Eventually polls cond until it returns true or timeout elapses.
func Eventually(t testing.TB, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %s: %s", timeout, msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
