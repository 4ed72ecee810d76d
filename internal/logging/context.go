package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	plantKey contextKey = "plant"
	runIDKey contextKey = "run_id"
)

// WithPlant annotates ctx with a plant number.
func WithPlant(ctx context.Context, plant int) context.Context {
	return context.WithValue(ctx, plantKey, plant)
}

// PlantFromContext returns the plant number if present.
func PlantFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(plantKey).(int)
	return v, ok
}

// WithRunID annotates ctx with a run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// ContextFields extracts standardized slog attributes from ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if plant, ok := PlantFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldPlant, plant))
	}
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
