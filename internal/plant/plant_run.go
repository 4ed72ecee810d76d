package plant

import (
	"context"
	"fmt"
	"time"

	"juicery/internal/faults"
	"juicery/internal/logging"
	"juicery/internal/orange"
)

// Start launches every worker and the control goroutine. A plant runs at
// most once.
func (p *Plant) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lifecycle != Created {
		return fmt.Errorf("%s already %s", p.name, p.lifecycle)
	}

	runCtx, cancel := context.WithCancel(logging.WithPlant(ctx, p.number))
	produceCtx, stopProducing := context.WithCancel(runCtx)
	p.cancel = cancel
	p.stopProducing = stopProducing
	p.logger = logging.WithContext(runCtx, logging.NewComponentLogger(p.opts.logger, "plant"))
	p.running.Store(true)
	p.lifecycle = Running

	for _, w := range p.workers {
		if err := w.Start(runCtx); err != nil {
			p.running.Store(false)
			stopProducing()
			cancel()
			return err
		}
	}
	go p.run(runCtx, produceCtx)
	return nil
}

// Stop clears the running flag and asks every worker to finish. A fetched
// orange still waiting for room in the peel queue is abandoned; it was never
// counted as provided. Stop returns without waiting; call WaitToStop to join.
func (p *Plant) Stop() {
	p.mu.Lock()
	switch p.lifecycle {
	case Created:
		p.lifecycle = Stopped
		close(p.done)
	case Running:
		p.lifecycle = Stopping
	default:
		p.mu.Unlock()
		return
	}
	stopProducing := p.stopProducing
	p.mu.Unlock()

	p.running.Store(false)
	if stopProducing != nil {
		stopProducing()
	}
	for _, w := range p.workers {
		w.Stop()
	}
	p.logger.Info("stop requested")
}

// WaitToStop joins every worker, then the control goroutine. Hand-offs still
// blocked after the drain timeout are interrupted; their oranges are counted
// as stranded and the returned error wraps faults.ErrInterrupted.
func (p *Plant) WaitToStop() error {
	p.mu.Lock()
	lifecycle := p.lifecycle
	cancel := p.cancel
	p.mu.Unlock()
	if lifecycle == Created {
		return nil
	}

	joined := make(chan struct{})
	go func() {
		for _, w := range p.workers {
			w.WaitToStop()
		}
		<-p.done
		close(joined)
	}()

	var err error
	if p.opts.drainTimeout > 0 {
		timer := time.NewTimer(p.opts.drainTimeout)
		defer timer.Stop()
		select {
		case <-joined:
		case <-timer.C:
			logging.WarnWithContext(p.logger, "drain timeout elapsed; interrupting blocked hand-offs",
				"drain_timeout",
				logging.Duration("drain_timeout", p.opts.drainTimeout),
				logging.String(logging.FieldErrorHint, "raise workflow.drain_timeout_ms or inspect downstream stages"),
			)
			if cancel != nil {
				cancel()
			}
			<-joined
			err = faults.Wrap(faults.ErrInterrupted, p.name, "wait to stop", "drain timeout elapsed", nil)
		}
	} else {
		<-joined
	}
	if cancel != nil {
		cancel()
	}

	p.mu.Lock()
	p.lifecycle = Stopped
	p.mu.Unlock()
	return err
}

func (p *Plant) run(ctx, produceCtx context.Context) {
	defer close(p.done)
	p.logger.Info("processing oranges",
		logging.Int("workers", len(p.workers)),
		logging.Int("queue_capacity", p.opts.queueCapacity),
	)

	for p.running.Load() {
		if ctx.Err() != nil {
			p.metrics.WaitInterrupted(p.number, "producer")
			break
		}
		if p.deliver(ctx, produceCtx, PeelQueue, orange.New(p.clock)) {
			p.orangesProvided.Add(1)
			p.metrics.OrangeProvided(p.number)
		}
		p.inspect()
	}

	p.logger.Info("plant done",
		logging.Int64("oranges_provided", p.orangesProvided.Load()),
		logging.Int64("oranges_removed", p.orangesRemovedFromQueues.Load()),
	)
}

// deliver enqueues o if it satisfies the queue precondition. It reports
// whether the orange entered the queue. The put waits on produceCtx, which
// Stop cancels; a put cut short that way is an abandoned fetch, not an
// interrupted wait.
func (p *Plant) deliver(ctx, produceCtx context.Context, name QueueName, o *orange.Orange) bool {
	sq := p.queues[name]
	if o.State() != sq.expected {
		p.logger.Error("orange in wrong state for queue; not delivered",
			logging.String(logging.FieldQueue, string(name)),
			logging.String(logging.FieldOrangeID, o.ID()),
			logging.String("expected_state", sq.expected.String()),
			logging.String("state", o.State().String()),
			logging.String(logging.FieldEventType, "delivery_rejected"),
		)
		return false
	}
	if err := sq.items.Put(produceCtx, o); err != nil {
		if ctx.Err() == nil {
			p.logger.Debug("stop requested; fetched orange abandoned",
				logging.String(logging.FieldQueue, string(name)),
				logging.String(logging.FieldOrangeID, o.ID()),
			)
			return false
		}
		logging.WarnWithContext(p.logger, "producer hand-off interrupted",
			"producer_wait_interrupted",
			logging.String(logging.FieldQueue, string(name)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the plant run context was cancelled"),
		)
		p.metrics.WaitInterrupted(p.number, "producer")
		return false
	}
	return true
}
