// Package metrics records plant activity in a Prometheus registry.
//
// Each run owns its own registry rather than the global default, so several
// fleets (or parallel tests) never share counters. The registry is never
// served over the network; WriteTextfile dumps it in the text exposition
// format for node_exporter's textfile collector or for inspection after a
// run. A nil *Recorder is valid and records nothing.
package metrics
