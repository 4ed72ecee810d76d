package plant

import (
	"fmt"
	"strings"

	"juicery/internal/faults"
	"juicery/internal/logging"
	"juicery/internal/orange"
)

// Eviction records oranges the line inspector removed from one queue.
type Eviction struct {
	Queue    QueueName
	Expected orange.State
	Found    []orange.State
}

// Removed is the number of oranges evicted.
func (e Eviction) Removed() int { return len(e.Found) }

// InspectionReport summarizes one sweep over every queue.
type InspectionReport struct {
	Evictions []Eviction
}

// Total is the number of oranges evicted across all queues.
func (r InspectionReport) Total() int {
	total := 0
	for _, e := range r.Evictions {
		total += e.Removed()
	}
	return total
}

// Err reports a non-empty sweep as a queue inconsistency.
func (r InspectionReport) Err() error {
	if len(r.Evictions) == 0 {
		return nil
	}
	parts := make([]string, 0, len(r.Evictions))
	for _, e := range r.Evictions {
		parts = append(parts, fmt.Sprintf("%s: %d not %s", e.Queue, e.Removed(), e.Expected))
	}
	return faults.Wrap(faults.ErrQueueInconsistency, "inspector", "sweep", strings.Join(parts, ", "), nil)
}

// Inspect runs the line inspector once. Afterwards every queued orange
// matches its queue's precondition, barring concurrent hand-offs. The
// control goroutine already sweeps after every delivery attempt; call this
// directly only on a plant that is not running.
func (p *Plant) Inspect() InspectionReport {
	return p.inspect()
}

func (p *Plant) inspect() InspectionReport {
	var report InspectionReport
	for _, name := range queueOrder {
		sq := p.queues[name]
		var found []orange.State
		sq.items.RemoveWhere(func(o *orange.Orange) bool {
			if o.State() == sq.expected {
				return false
			}
			found = append(found, o.State())
			return true
		})
		p.metrics.ObserveQueueDepth(p.number, string(name), sq.items.Len())
		if len(found) == 0 {
			continue
		}
		eviction := Eviction{Queue: name, Expected: sq.expected, Found: found}
		report.Evictions = append(report.Evictions, eviction)
		p.orangesRemovedFromQueues.Add(int64(len(found)))
		p.metrics.OrangesEvicted(p.number, string(name), len(found))
		logging.WarnWithContext(p.logger, "removed oranges in the wrong state from queue",
			"inspector_eviction",
			logging.String(logging.FieldQueue, string(name)),
			logging.String("expected_state", sq.expected.String()),
			logging.Int("removed", len(found)),
			logging.String(logging.FieldErrorHint, "check which stage forwards into this queue"),
		)
	}
	return report
}
