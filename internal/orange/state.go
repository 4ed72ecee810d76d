package orange

import (
	"fmt"
	"strings"
	"time"
)

// State represents the lifecycle position of an orange.
type State int

const (
	Fetched State = iota
	Peeled
	Squeezed
	Bottled
	Processed
)

var allStates = []State{Fetched, Peeled, Squeezed, Bottled, Processed}

var stateNames = map[State]string{
	Fetched:   "fetched",
	Peeled:    "peeled",
	Squeezed:  "squeezed",
	Bottled:   "bottled",
	Processed: "processed",
}

// Simulated time needed to complete each state.
var stateDurations = map[State]time.Duration{
	Fetched:   15 * time.Millisecond,
	Peeled:    38 * time.Millisecond,
	Squeezed:  29 * time.Millisecond,
	Bottled:   17 * time.Millisecond,
	Processed: 1 * time.Millisecond,
}

// States returns every state in lifecycle order.
func States() []State {
	out := make([]State, len(allStates))
	copy(out, allStates)
	return out
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Valid reports whether s is one of the known lifecycle states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Duration returns the simulated processing time for the state.
func (s State) Duration() time.Duration {
	return stateDurations[s]
}

// Terminal reports whether s has no successor.
func (s State) Terminal() bool {
	return s == Processed
}

// Next returns the state that follows s. The boolean is false when s is
// terminal or unknown.
func (s State) Next() (State, bool) {
	if !s.Valid() || s.Terminal() {
		return s, false
	}
	return s + 1, true
}

// ParseState resolves a state name, ignoring case and surrounding spaces.
func ParseState(value string) (State, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, state := range allStates {
		if stateNames[state] == needle {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown orange state %q", value)
}
