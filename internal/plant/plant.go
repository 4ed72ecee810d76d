package plant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"juicery/internal/config"
	"juicery/internal/logging"
	"juicery/internal/metrics"
	"juicery/internal/orange"
)

// Lifecycle tracks a plant's run state.
type Lifecycle int

const (
	Created Lifecycle = iota
	Running
	Stopping
	Stopped
)

func (l Lifecycle) String() string {
	switch l {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("lifecycle(%d)", int(l))
	}
}

// Plant is one independent production line.
type Plant struct {
	number  int
	name    string
	opts    options
	logger  *slog.Logger
	metrics *metrics.Recorder
	clock   orange.Clock

	queues  map[QueueName]*stationQueue
	stages  []pipelineStage
	workers []*Worker

	running atomic.Bool

	mu        sync.Mutex
	lifecycle     Lifecycle
	cancel        context.CancelFunc
	stopProducing context.CancelFunc
	done          chan struct{}

	orangesProvided          atomic.Int64
	orangesRemovedFromQueues atomic.Int64
	stranded                 atomic.Int64
}

// New builds plant number with its queues and worker arena. Nothing runs
// until Start.
func New(number int, opts ...Option) *Plant {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Plant{
		number:  number,
		name:    fmt.Sprintf("Plant[%d]", number),
		opts:    o,
		metrics: o.metrics,
		clock:   o.clock,
		queues:  newStationQueues(o.queueCapacity),
		stages:  stagesFor(o),
		done:    make(chan struct{}),
	}
	p.logger = logging.NewComponentLogger(o.logger, "plant").With(logging.Int(logging.FieldPlant, number))
	p.workers = p.buildWorkers()
	return p
}

// NewFromConfig builds a plant from cfg. Later options override cfg.
func NewFromConfig(number int, cfg *config.Config, logger *slog.Logger, opts ...Option) *Plant {
	all := append([]Option{WithConfig(cfg), WithLogger(logger)}, opts...)
	return New(number, all...)
}

func (p *Plant) buildWorkers() []*Worker {
	total := 0
	for _, stage := range p.stages {
		total += stage.workers
	}
	workers := make([]*Worker, 0, total)
	for _, stage := range p.stages {
		for i := 0; i < stage.workers; i++ {
			w, err := NewWorker(WorkerConfig{
				Plant:       p.number,
				Number:      len(workers) + 1,
				Stage:       stage.name,
				Input:       p.queues[stage.input].items,
				Output:      p.queues[stage.output].items,
				Target:      stage.target,
				PollTimeout: p.opts.pollTimeout,
				Logger:      p.opts.logger,
				Metrics:     p.metrics,
				OnStranded:  p.recordStranded,
			})
			if err != nil {
				// Stage wiring is static; a failure here is a programming error.
				panic(err)
			}
			workers = append(workers, w)
		}
	}
	return workers
}

func (p *Plant) Number() int { return p.number }

func (p *Plant) Name() string { return p.name }

// Workers returns the worker arena in numbering order.
func (p *Plant) Workers() []*Worker {
	out := make([]*Worker, len(p.workers))
	copy(out, p.workers)
	return out
}

// Lifecycle reports where the plant is in its run.
func (p *Plant) Lifecycle() Lifecycle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lifecycle
}

// Inject places o directly into the named queue without checking its state.
// It exists to seed the line for inspection and testing.
func (p *Plant) Inject(ctx context.Context, name QueueName, o *orange.Orange) error {
	sq, ok := p.queues[name]
	if !ok {
		return fmt.Errorf("unknown queue %q", name)
	}
	return sq.items.Put(ctx, o)
}

// Snapshot copies the oranges currently waiting in the named queue.
func (p *Plant) Snapshot(name QueueName) []*orange.Orange {
	sq, ok := p.queues[name]
	if !ok {
		return nil
	}
	return sq.items.Snapshot()
}

// QueueDepths reports the current size of every queue. Safe to call while
// the plant runs.
func (p *Plant) QueueDepths() map[QueueName]int {
	depths := make(map[QueueName]int, len(p.queues))
	for name, sq := range p.queues {
		depths[name] = sq.items.Len()
	}
	return depths
}

func (p *Plant) recordStranded(o *orange.Orange) {
	p.stranded.Add(1)
	logging.WarnWithContext(p.logger, "orange stranded by interrupted hand-off",
		"orange_stranded",
		logging.String(logging.FieldOrangeID, o.ID()),
		logging.String("state", o.State().String()),
		logging.String(logging.FieldErrorHint, "counted as left in queue"),
	)
}
