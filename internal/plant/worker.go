package plant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"juicery/internal/logging"
	"juicery/internal/metrics"
	"juicery/internal/orange"
	"juicery/internal/queue"
)

// WorkerState tracks a worker's lifecycle.
type WorkerState int

const (
	WorkerIdle WorkerState = iota
	WorkerRunning
	WorkerStopping
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerRunning:
		return "running"
	case WorkerStopping:
		return "stopping"
	case WorkerStopped:
		return "stopped"
	default:
		return fmt.Sprintf("worker_state(%d)", int(s))
	}
}

// WorkerConfig wires a worker into its stage.
type WorkerConfig struct {
	Plant       int
	Number      int
	Stage       string
	Input       *queue.Queue[*orange.Orange]
	Output      *queue.Queue[*orange.Orange]
	Target      orange.State
	PollTimeout time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	// OnStranded receives an orange whose hand-off was interrupted. The
	// orange is in neither queue afterwards.
	OnStranded func(*orange.Orange)
}

// Worker moves oranges from one stage queue to the next, advancing each to
// the stage target on the way.
type Worker struct {
	name        string
	plant       int
	stage       string
	input       *queue.Queue[*orange.Orange]
	output      *queue.Queue[*orange.Orange]
	target      orange.State
	pollTimeout time.Duration
	logger      *slog.Logger
	metrics     *metrics.Recorder
	onStranded  func(*orange.Orange)

	keepWorking atomic.Bool
	handled     atomic.Int64

	mu    sync.Mutex
	state WorkerState
	done  chan struct{}
}

// NewWorker validates cfg and returns an idle worker.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Input == nil || cfg.Output == nil {
		return nil, errors.New("worker requires input and output queues")
	}
	if !cfg.Target.Valid() {
		return nil, fmt.Errorf("worker target %s is not a valid state", cfg.Target)
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 100 * time.Millisecond
	}
	name := WorkerName(cfg.Plant, cfg.Number)
	logger := logging.NewComponentLogger(cfg.Logger, "worker").With(
		logging.String(logging.FieldWorker, name),
		logging.String(logging.FieldStage, cfg.Stage),
	)
	return &Worker{
		name:        name,
		plant:       cfg.Plant,
		stage:       cfg.Stage,
		input:       cfg.Input,
		output:      cfg.Output,
		target:      cfg.Target,
		pollTimeout: pollTimeout,
		logger:      logger,
		metrics:     cfg.Metrics,
		onStranded:  cfg.OnStranded,
		state:       WorkerIdle,
		done:        make(chan struct{}),
	}, nil
}

// WorkerName formats the display name of worker n in plant p.
func WorkerName(plant, number int) string {
	return fmt.Sprintf("Worker[%d.%d]", plant, number)
}

func (w *Worker) Name() string { return w.name }

func (w *Worker) Stage() string { return w.stage }

// Handled reports how many oranges this worker delivered downstream.
func (w *Worker) Handled() int64 { return w.handled.Load() }

func (w *Worker) State() WorkerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start launches the worker loop. A worker runs at most once. Log lines carry
// the plant number and any run id found on ctx.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != WorkerIdle {
		return fmt.Errorf("%s already %s", w.name, w.state)
	}
	w.keepWorking.Store(true)
	w.state = WorkerRunning
	w.logger = logging.WithContext(logging.WithPlant(ctx, w.plant), w.logger)
	go w.run(ctx)
	return nil
}

// Stop asks the worker to exit after its current orange. It does not wait.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keepWorking.Store(false)
	switch w.state {
	case WorkerIdle:
		w.state = WorkerStopped
		close(w.done)
	case WorkerRunning:
		w.state = WorkerStopping
	}
}

// WaitToStop blocks until the worker loop has exited.
func (w *Worker) WaitToStop() {
	<-w.done
}

// Done is closed once the worker loop has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) run(ctx context.Context) {
	defer w.finish()
	w.logger.Debug("worker started", logging.String("target", w.target.String()))

	for w.keepWorking.Load() {
		o, ok, err := w.input.Poll(ctx, w.pollTimeout)
		if err != nil {
			w.interrupted("poll", err)
			if ctx.Err() != nil {
				return
			}
			continue
		}
		if !ok {
			continue
		}
		w.process(o)
		w.deliver(ctx, o)
	}
}

func (w *Worker) finish() {
	w.mu.Lock()
	w.state = WorkerStopped
	w.mu.Unlock()
	w.logger.Debug("worker stopped", logging.Int64("handled", w.handled.Load()))
	close(w.done)
}

func (w *Worker) process(o *orange.Orange) {
	if o.State() > w.target {
		logging.WarnWithContext(w.logger, "orange already past stage target; forwarding untouched",
			"orange_past_target",
			logging.String(logging.FieldOrangeID, o.ID()),
			logging.String("state", o.State().String()),
			logging.String("target", w.target.String()),
			logging.String(logging.FieldErrorHint, "the line inspector evicts it from the next queue"),
		)
		return
	}
	for o.State() < w.target {
		if err := o.Advance(); err != nil {
			w.logger.Error("orange advance failed",
				logging.Error(err),
				logging.String(logging.FieldOrangeID, o.ID()),
				logging.String(logging.FieldEventType, "orange_advance_failed"),
			)
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, o *orange.Orange) {
	if err := w.output.Put(ctx, o); err != nil {
		w.interrupted("put", err)
		w.metrics.OrangeStranded(w.plant, w.stage)
		if w.onStranded != nil {
			w.onStranded(o)
		}
		return
	}
	w.handled.Add(1)
	w.metrics.OrangeHandled(w.plant, w.stage)
}

func (w *Worker) interrupted(operation string, err error) {
	logging.WarnWithContext(w.logger, "worker wait interrupted",
		"worker_wait_interrupted",
		logging.String("operation", operation),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "the plant run context was cancelled"),
	)
	w.metrics.WaitInterrupted(w.plant, "worker")
}
