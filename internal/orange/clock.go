package orange

import "time"

// Clock pays the simulated cost of a state.
type Clock interface {
	Sleep(time.Duration)
}

// ScaledClock sleeps for the requested duration multiplied by Scale. A scale
// of 1 is real time; zero or negative skips the delay entirely.
type ScaledClock struct {
	Scale float64
}

// RealClock sleeps for the exact simulated durations.
var RealClock Clock = ScaledClock{Scale: 1}

// InstantClock never sleeps.
var InstantClock Clock = ScaledClock{Scale: 0}

func (c ScaledClock) Sleep(d time.Duration) {
	if c.Scale <= 0 || d <= 0 {
		return
	}
	scaled := time.Duration(float64(d) * c.Scale)
	if scaled <= 0 {
		return
	}
	time.Sleep(scaled)
}
