package plant

// Stats is a plant's end-of-run accounting. Bottled counts bottles; every
// other field counts oranges. Wasted is a snapshot figure: leftovers could
// still have completed in a longer run.
//
// LeftInQueue is the size of the peel, squeeze and bottle queues plus
// Stranded, the oranges held by workers whose hand-off was cancelled when the
// drain timeout expired. Stranded is zero unless WaitToStop reported
// ErrInterrupted; counting it here keeps Balanced true.
type Stats struct {
	Provided          int `json:"provided"`
	Processed         int `json:"processed"`
	Bottled           int `json:"bottled"`
	NotBottled        int `json:"not_bottled"`
	LeftInQueue       int `json:"left_in_queue"`
	RemovedFromQueues int `json:"removed_from_queues"`
	Wasted            int `json:"wasted"`
	Stranded          int `json:"stranded"`
}

// Add returns the field-wise sum of s and other.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Provided:          s.Provided + other.Provided,
		Processed:         s.Processed + other.Processed,
		Bottled:           s.Bottled + other.Bottled,
		NotBottled:        s.NotBottled + other.NotBottled,
		LeftInQueue:       s.LeftInQueue + other.LeftInQueue,
		RemovedFromQueues: s.RemovedFromQueues + other.RemovedFromQueues,
		Wasted:            s.Wasted + other.Wasted,
		Stranded:          s.Stranded + other.Stranded,
	}
}

// Balanced reports whether every provided orange is accounted for.
func (s Stats) Balanced() bool {
	return s.Provided == s.Processed+s.LeftInQueue+s.RemovedFromQueues
}

type tally struct {
	provided     int
	processed    int
	leftInQueues int
	removed      int
	stranded     int
	perBottle    int
}

func (t tally) stats() Stats {
	perBottle := t.perBottle
	if perBottle <= 0 {
		perBottle = 3
	}
	notBottled := t.processed % perBottle
	left := t.leftInQueues + t.stranded
	return Stats{
		Provided:          t.provided,
		Processed:         t.processed,
		Bottled:           t.processed / perBottle,
		NotBottled:        notBottled,
		LeftInQueue:       left,
		RemovedFromQueues: t.removed,
		Wasted:            notBottled + left + t.removed,
		Stranded:          t.stranded,
	}
}

// Stats snapshots the plant's accounting. Values are final only after
// WaitToStop returns.
func (p *Plant) Stats() Stats {
	intermediate := 0
	for _, name := range []QueueName{PeelQueue, SqueezeQueue, BottleQueue} {
		intermediate += p.queues[name].items.Len()
	}
	return tally{
		provided:     int(p.orangesProvided.Load()),
		processed:    p.queues[DoneQueue].items.Len(),
		leftInQueues: intermediate,
		removed:      int(p.orangesRemovedFromQueues.Load()),
		stranded:     int(p.stranded.Load()),
		perBottle:    p.opts.orangesPerBottle,
	}.stats()
}

// OrangesProvided is safe to read while the plant runs.
func (p *Plant) OrangesProvided() int { return int(p.orangesProvided.Load()) }

func (p *Plant) OrangesProcessed() int { return p.Stats().Processed }

func (p *Plant) OrangesBottled() int { return p.Stats().Bottled }

func (p *Plant) OrangesNotBottled() int { return p.Stats().NotBottled }

func (p *Plant) OrangesLeftInQueue() int { return p.Stats().LeftInQueue }

// OrangesRemovedFromQueues is safe to read while the plant runs.
func (p *Plant) OrangesRemovedFromQueues() int { return int(p.orangesRemovedFromQueues.Load()) }

func (p *Plant) OrangesWasted() int { return p.Stats().Wasted }
