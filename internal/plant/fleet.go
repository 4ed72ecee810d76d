package plant

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"juicery/internal/logging"
)

const statusInterval = time.Second

// Fleet runs several independent plants side by side.
type Fleet struct {
	plants []*Plant
	logger *slog.Logger
}

// NewFleet builds count plants numbered from 1, each with opts applied.
func NewFleet(count int, opts ...Option) *Fleet {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	plants := make([]*Plant, 0, count)
	for i := 1; i <= count; i++ {
		plants = append(plants, New(i, opts...))
	}
	return &Fleet{
		plants: plants,
		logger: logging.NewComponentLogger(o.logger, "fleet"),
	}
}

func (f *Fleet) Plants() []*Plant {
	out := make([]*Plant, len(f.plants))
	copy(out, f.plants)
	return out
}

// Start starts every plant. If one fails, the plants already started are
// stopped and joined before the error is returned.
func (f *Fleet) Start(ctx context.Context) error {
	f.logger = logging.WithContext(ctx, f.logger)
	for i, p := range f.plants {
		if err := p.Start(ctx); err != nil {
			started := f.plants[:i]
			for _, sp := range started {
				sp.Stop()
			}
			for _, sp := range started {
				if waitErr := sp.WaitToStop(); waitErr != nil {
					f.logger.Warn("plant did not drain after failed fleet start",
						logging.Int(logging.FieldPlant, sp.Number()),
						logging.Error(waitErr),
						logging.String(logging.FieldEventType, "plant_drain_incomplete"),
					)
				}
			}
			return err
		}
	}
	f.logger.Info("fleet started", logging.Int("plants", len(f.plants)))
	return nil
}

// Stop asks every plant to stop without waiting.
func (f *Fleet) Stop() {
	for _, p := range f.plants {
		p.Stop()
	}
}

// Wait joins every plant concurrently and returns the first drain error.
func (f *Fleet) Wait() error {
	var g errgroup.Group
	for _, p := range f.plants {
		g.Go(func() error {
			if err := p.WaitToStop(); err != nil {
				f.logger.Warn("plant stopped with interrupted hand-offs",
					logging.Int(logging.FieldPlant, p.Number()),
					logging.Error(err),
					logging.String(logging.FieldEventType, "plant_drain_incomplete"),
				)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Run starts the fleet, lets it work for d or until ctx ends, then stops and
// joins every plant. Cancelling ctx ends the run early but still drains the
// plants normally.
func (f *Fleet) Run(ctx context.Context, d time.Duration) error {
	if err := f.Start(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
wait:
	for {
		select {
		case <-timer.C:
			break wait
		case <-ctx.Done():
			f.logger.Info("run interrupted; stopping plants early", logging.Error(context.Cause(ctx)))
			break wait
		case <-ticker.C:
			f.logStatus()
		}
	}
	f.Stop()
	return f.Wait()
}

func (f *Fleet) logStatus() {
	for _, p := range f.plants {
		depths := p.QueueDepths()
		f.logger.Debug("queue depths",
			logging.Int(logging.FieldPlant, p.Number()),
			logging.Int("peel", depths[PeelQueue]),
			logging.Int("squeeze", depths[SqueezeQueue]),
			logging.Int("bottle", depths[BottleQueue]),
			logging.Int("done", depths[DoneQueue]),
		)
	}
}

// PerPlant returns each plant's statistics in plant order.
func (f *Fleet) PerPlant() []Stats {
	out := make([]Stats, 0, len(f.plants))
	for _, p := range f.plants {
		out = append(out, p.Stats())
	}
	return out
}

// Totals sums the statistics of every plant.
func (f *Fleet) Totals() Stats {
	var total Stats
	for _, s := range f.PerPlant() {
		total = total.Add(s)
	}
	return total
}
