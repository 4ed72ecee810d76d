package plant

import (
	"log/slog"
	"time"

	"juicery/internal/config"
	"juicery/internal/metrics"
	"juicery/internal/orange"
)

// Option configures optional Plant behavior.
type Option func(*options)

type options struct {
	peelers          int
	squeezers        int
	bottlers         int
	queueCapacity    int
	orangesPerBottle int
	pollTimeout      time.Duration
	drainTimeout     time.Duration
	clock            orange.Clock
	logger           *slog.Logger
	metrics          *metrics.Recorder
}

func defaultOptions() options {
	cfg := config.Default()
	opts := options{}
	WithConfig(&cfg)(&opts)
	return opts
}

// WithConfig applies pool sizes, queue capacity, timeouts, and the simulated
// time scale from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		WithPoolSizes(cfg.Plant.Peelers, cfg.Plant.Squeezers, cfg.Plant.Bottlers)(o)
		WithQueueCapacity(cfg.Plant.QueueCapacity)(o)
		WithOrangesPerBottle(cfg.Plant.OrangesPerBottle)(o)
		WithPollTimeout(cfg.PollTimeout())(o)
		o.drainTimeout = cfg.DrainTimeout()
		o.clock = orange.ScaledClock{Scale: cfg.Workflow.TimeScale}
	}
}

// WithPoolSizes sets the worker count per stage. Non-positive values keep
// the current size.
func WithPoolSizes(peelers, squeezers, bottlers int) Option {
	return func(o *options) {
		if peelers > 0 {
			o.peelers = peelers
		}
		if squeezers > 0 {
			o.squeezers = squeezers
		}
		if bottlers > 0 {
			o.bottlers = bottlers
		}
	}
}

// WithQueueCapacity bounds the peel, squeeze, and bottle queues.
func WithQueueCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.queueCapacity = capacity
		}
	}
}

func WithOrangesPerBottle(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.orangesPerBottle = n
		}
	}
}

// WithPollTimeout sets how long idle workers wait before re-checking their
// stop flag.
func WithPollTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollTimeout = d
		}
	}
}

// WithDrainTimeout bounds how long WaitToStop lets blocked hand-offs finish.
// Zero waits indefinitely.
func WithDrainTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.drainTimeout = d
		}
	}
}

func WithClock(clock orange.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(rec *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = rec
	}
}
