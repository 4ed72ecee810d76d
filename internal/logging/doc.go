// Package logging assembles structured slog loggers and formatting helpers
// used across the juice plant.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes context-aware helpers so plant code can tag
// log lines with plant numbers, stages, and run identifiers. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Logs default to stderr. Stdout is reserved for the run summary.
package logging
