package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidState       = errors.New("invalid state transition")
	ErrInterrupted        = errors.New("interrupted wait")
	ErrConfiguration      = errors.New("configuration error")
	ErrQueueInconsistency = errors.New("queue inconsistency")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above; nil falls back to ErrInterrupted.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInterrupted
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsInterrupted reports whether err stems from a cancelled blocking wait.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// IsInvalidState reports whether err stems from advancing an item past its
// terminal state.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "plant failure"
	}
	return strings.Join(parts, ": ")
}
