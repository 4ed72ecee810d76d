package orange

import (
	"github.com/google/uuid"

	"juicery/internal/faults"
)

// Orange is a single item on the production line.
type Orange struct {
	id    string
	state State
	clock Clock
}

// New fetches a fresh orange. The caller is blocked for the fetch duration.
func New(clock Clock) *Orange {
	if clock == nil {
		clock = RealClock
	}
	o := &Orange{id: uuid.NewString(), state: Fetched, clock: clock}
	o.doWork()
	return o
}

// NewAt builds an orange already sitting in the given state without paying
// any processing cost. It exists for diagnostics and for injecting misrouted
// items into a line.
func NewAt(state State, clock Clock) *Orange {
	if clock == nil {
		clock = RealClock
	}
	return &Orange{id: uuid.NewString(), state: state, clock: clock}
}

// ID returns the orange's unique identifier.
func (o *Orange) ID() string {
	return o.id
}

// State returns the current lifecycle state.
func (o *Orange) State() State {
	return o.state
}

// Advance moves the orange to its next state and performs that state's work.
// Advancing a processed orange fails with faults.ErrInvalidState and leaves
// the orange untouched.
func (o *Orange) Advance() error {
	next, ok := o.state.Next()
	if !ok {
		return faults.Wrap(faults.ErrInvalidState, "orange", "advance", "already at final state "+o.state.String(), nil)
	}
	o.state = next
	o.doWork()
	return nil
}

func (o *Orange) doWork() {
	o.clock.Sleep(o.state.Duration())
}
