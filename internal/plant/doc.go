// Package plant runs the juice production line.
//
// A Plant owns four stage queues (peel, squeeze, bottle, done) and a fixed
// arena of workers per stage. Its control goroutine fetches oranges into the
// peel queue and, after every delivery attempt, runs the line inspector: a
// sweep that evicts any orange whose state does not match the precondition of
// the queue it sits in. Workers poll their input queue, advance each orange
// up to their stage's target state, and hand it to the next queue. Blocking
// hand-offs are the backpressure mechanism; a slow stage stalls everything
// upstream of it.
//
// Shutdown is cooperative. Stop clears the running and keep-working flags and
// returns immediately; an idle worker notices within one poll timeout, and a
// worker holding an orange finishes processing and delivering it first.
// WaitToStop joins the workers and then the control goroutine, which is the
// barrier after which Stats is safe to read. If a hand-off is still blocked
// when the drain timeout elapses, WaitToStop cancels the run context, the
// held orange is counted as stranded, and the plant reports ErrInterrupted.
//
// Plants share nothing. A Fleet runs several of them side by side and sums
// their statistics.
package plant
