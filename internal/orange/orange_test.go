package orange_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"juicery/internal/faults"
	"juicery/internal/orange"
)

type recordingClock struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (c *recordingClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.slept = append(c.slept, d)
	c.mu.Unlock()
}

func TestNewStartsFetchedAndPaysFetchCost(t *testing.T) {
	clock := &recordingClock{}
	o := orange.New(clock)
	if o.State() != orange.Fetched {
		t.Fatalf("expected fetched state, got %s", o.State())
	}
	if o.ID() == "" {
		t.Fatal("expected orange id")
	}
	if diff := cmp.Diff([]time.Duration{15 * time.Millisecond}, clock.slept); diff != "" {
		t.Fatalf("unexpected fetch cost (-want +got):\n%s", diff)
	}
}

func TestAdvanceWalksLifecycleInOrder(t *testing.T) {
	clock := &recordingClock{}
	o := orange.New(clock)

	observed := []orange.State{o.State()}
	for !o.State().Terminal() {
		if err := o.Advance(); err != nil {
			t.Fatalf("Advance returned error: %v", err)
		}
		observed = append(observed, o.State())
	}

	want := []orange.State{orange.Fetched, orange.Peeled, orange.Squeezed, orange.Bottled, orange.Processed}
	if diff := cmp.Diff(want, observed); diff != "" {
		t.Fatalf("unexpected state sequence (-want +got):\n%s", diff)
	}
	wantCosts := []time.Duration{15, 38, 29, 17, 1}
	for i := range wantCosts {
		wantCosts[i] *= time.Millisecond
	}
	if diff := cmp.Diff(wantCosts, clock.slept); diff != "" {
		t.Fatalf("unexpected simulated costs (-want +got):\n%s", diff)
	}
}

func TestAdvancePastProcessedFails(t *testing.T) {
	o := orange.New(orange.InstantClock)
	if err := o.Advance(); err != nil {
		t.Fatalf("first Advance returned error: %v", err)
	}
	if o.State() != orange.Peeled {
		t.Fatalf("expected peeled after one advance, got %s", o.State())
	}
	for i := 2; i <= 4; i++ {
		if err := o.Advance(); err != nil {
			t.Fatalf("advance %d returned error: %v", i, err)
		}
	}
	err := o.Advance()
	if err == nil {
		t.Fatal("expected fifth advance to fail")
	}
	if !faults.IsInvalidState(err) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if o.State() != orange.Processed {
		t.Fatalf("expected state to stay processed, got %s", o.State())
	}
}

func TestNextReportsTerminal(t *testing.T) {
	tests := []struct {
		state  orange.State
		want   orange.State
		wantOK bool
	}{
		{orange.Fetched, orange.Peeled, true},
		{orange.Peeled, orange.Squeezed, true},
		{orange.Squeezed, orange.Bottled, true},
		{orange.Bottled, orange.Processed, true},
		{orange.Processed, orange.Processed, false},
		{orange.State(42), orange.State(42), false},
	}
	for _, tc := range tests {
		got, ok := tc.state.Next()
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("Next(%s) = (%s, %v), want (%s, %v)", tc.state, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseState(t *testing.T) {
	for _, state := range orange.States() {
		parsed, err := orange.ParseState("  " + state.String() + " ")
		if err != nil {
			t.Fatalf("ParseState(%q) returned error: %v", state, err)
		}
		if parsed != state {
			t.Fatalf("ParseState(%q) = %s", state, parsed)
		}
	}
	if _, err := orange.ParseState("Juiced"); err == nil {
		t.Fatal("expected error for unknown state")
	}
	if got := orange.State(9).String(); got != "state(9)" {
		t.Fatalf("unexpected name for unknown state: %q", got)
	}
}

func TestNewAtSkipsProcessingCost(t *testing.T) {
	clock := &recordingClock{}
	o := orange.NewAt(orange.Squeezed, clock)
	if o.State() != orange.Squeezed {
		t.Fatalf("expected squeezed, got %s", o.State())
	}
	if len(clock.slept) != 0 {
		t.Fatalf("expected no simulated work, got %v", clock.slept)
	}
}

func TestScaledClock(t *testing.T) {
	start := time.Now()
	orange.ScaledClock{Scale: 0}.Sleep(time.Hour)
	orange.ScaledClock{Scale: -1}.Sleep(time.Hour)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected zero scale to skip sleeping, took %s", elapsed)
	}

	start = time.Now()
	orange.ScaledClock{Scale: 0.5}.Sleep(20 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected scaled sleep of at least 10ms, took %s", elapsed)
	}
}
