// Package faults defines the error markers shared by the juice plant packages.
//
// Errors are tagged with one of the exported sentinels and wrapped with
// component and operation context so callers can branch with errors.Is
// instead of matching strings. Interrupted waits and invalid item transitions
// are the two markers the pipeline produces at runtime; configuration errors
// come from the config loader and CLI flag validation.
package faults
