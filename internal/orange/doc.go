// Package orange models a single orange moving through the juice plant.
//
// An Orange follows a fixed linear lifecycle (fetched, peeled, squeezed,
// bottled, processed). Every state carries a simulated processing cost that
// is paid synchronously by whichever goroutine advances the orange, through a
// Clock so tests and fast runs can scale the delays down. State exposes a pure
// successor function that reports the terminal state instead of failing;
// Advance turns that into a faults.ErrInvalidState error for callers that
// step past the end.
//
// Oranges hold no locks. Ownership moves between goroutines only through the
// stage queues, so at most one goroutine touches an orange at a time.
package orange
