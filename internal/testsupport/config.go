package testsupport

import (
	"path/filepath"
	"testing"

	"juicery/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a fast config with a unique log directory per test.
// Simulated time runs at a tenth of real time and the run lasts 300ms.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Workflow.RunMillis = 300
	cfgVal.Workflow.PollTimeoutMillis = 10
	cfgVal.Workflow.DrainTimeoutMillis = 1000
	cfgVal.Workflow.TimeScale = 0.1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithPlants sets how many plants the config runs.
func WithPlants(count int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Plant.Count = count
	}
}

// WithPoolSizes overrides the worker count per stage.
func WithPoolSizes(peelers, squeezers, bottlers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Plant.Peelers = peelers
		b.cfg.Plant.Squeezers = squeezers
		b.cfg.Plant.Bottlers = bottlers
	}
}

// WithQueueCapacity overrides the intermediate queue bound.
func WithQueueCapacity(capacity int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Plant.QueueCapacity = capacity
	}
}

// WithRunMillis overrides the run duration.
func WithRunMillis(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.RunMillis = ms
	}
}

// WithTimeScale overrides the simulated time multiplier.
func WithTimeScale(scale float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.TimeScale = scale
	}
}

// WithLogDir points logging at a subdirectory of the test's temp dir.
func WithLogDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = filepath.Join(b.baseDir, name)
	}
}
