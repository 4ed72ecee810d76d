// Package queue provides the bounded FIFO used to hand items between plant
// stages.
//
// Put blocks while the queue is full, which is how a slow stage throttles
// everything upstream of it. Poll waits for a bounded interval so consumers
// can periodically re-check whether they should keep running. Both waits
// honour context cancellation and report it as faults.ErrInterrupted.
//
// Every operation runs under a single mutex, so Put, Poll, Len, Snapshot and
// RemoveWhere are linearizable. Blocked callers are woken through broadcast
// channels that are closed and replaced on every state change, which lets
// waits compose with timers and contexts in a select.
package queue
