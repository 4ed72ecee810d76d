package plant

import (
	"juicery/internal/orange"
	"juicery/internal/queue"
)

// QueueName identifies one of a plant's stage queues.
type QueueName string

const (
	PeelQueue    QueueName = "peel"
	SqueezeQueue QueueName = "squeeze"
	BottleQueue  QueueName = "bottle"
	DoneQueue    QueueName = "done"
)

var queueOrder = []QueueName{PeelQueue, SqueezeQueue, BottleQueue, DoneQueue}

// The state every orange in a queue must have.
var queuePreconditions = map[QueueName]orange.State{
	PeelQueue:    orange.Fetched,
	SqueezeQueue: orange.Peeled,
	BottleQueue:  orange.Squeezed,
	DoneQueue:    orange.Bottled,
}

// QueueNames returns the plant queues in pipeline order.
func QueueNames() []QueueName {
	out := make([]QueueName, len(queueOrder))
	copy(out, queueOrder)
	return out
}

// Precondition returns the state oranges must have while queued in n.
func (n QueueName) Precondition() (orange.State, bool) {
	state, ok := queuePreconditions[n]
	return state, ok
}

type stationQueue struct {
	name     QueueName
	expected orange.State
	items    *queue.Queue[*orange.Orange]
}

type pipelineStage struct {
	name    string
	input   QueueName
	output  QueueName
	target  orange.State
	workers int
}

func stagesFor(opts options) []pipelineStage {
	return []pipelineStage{
		{name: "peel", input: PeelQueue, output: SqueezeQueue, target: orange.Peeled, workers: opts.peelers},
		{name: "squeeze", input: SqueezeQueue, output: BottleQueue, target: orange.Squeezed, workers: opts.squeezers},
		{name: "bottle", input: BottleQueue, output: DoneQueue, target: orange.Bottled, workers: opts.bottlers},
	}
}

func newStationQueues(capacity int) map[QueueName]*stationQueue {
	queues := make(map[QueueName]*stationQueue, len(queueOrder))
	for _, name := range queueOrder {
		limit := capacity
		if name == DoneQueue {
			limit = 0
		}
		queues[name] = &stationQueue{
			name:     name,
			expected: queuePreconditions[name],
			items:    queue.New[*orange.Orange](limit),
		}
	}
	return queues
}
