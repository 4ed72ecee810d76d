package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "juicery"

// Recorder holds the plant collectors.
type Recorder struct {
	registry *prometheus.Registry

	provided    *prometheus.CounterVec
	handled     *prometheus.CounterVec
	evicted     *prometheus.CounterVec
	interrupted *prometheus.CounterVec
	stranded    *prometheus.CounterVec
	queueDepth  *prometheus.GaugeVec
}

// New creates a Recorder backed by a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		provided: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oranges_provided_total",
				Help:      "Oranges handed to the first stage queue",
			},
			[]string{"plant"},
		),
		handled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oranges_handled_total",
				Help:      "Oranges processed and forwarded by a stage",
			},
			[]string{"plant", "stage"},
		),
		evicted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oranges_evicted_total",
				Help:      "Oranges removed from a queue by the line inspector",
			},
			[]string{"plant", "queue"},
		),
		interrupted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "waits_interrupted_total",
				Help:      "Blocking queue waits cut short by cancellation",
			},
			[]string{"plant", "component"},
		),
		stranded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oranges_stranded_total",
				Help:      "Oranges held by a worker whose hand-off was interrupted",
			},
			[]string{"plant", "stage"},
		),
		queueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_depth",
				Help:      "Queue occupancy observed by the last inspection",
			},
			[]string{"plant", "queue"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) OrangeProvided(plant int) {
	if r == nil {
		return
	}
	r.provided.WithLabelValues(label(plant)).Inc()
}

func (r *Recorder) OrangeHandled(plant int, stage string) {
	if r == nil {
		return
	}
	r.handled.WithLabelValues(label(plant), stage).Inc()
}

func (r *Recorder) OrangesEvicted(plant int, queue string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.evicted.WithLabelValues(label(plant), queue).Add(float64(count))
}

func (r *Recorder) WaitInterrupted(plant int, component string) {
	if r == nil {
		return
	}
	r.interrupted.WithLabelValues(label(plant), component).Inc()
}

func (r *Recorder) OrangeStranded(plant int, stage string) {
	if r == nil {
		return
	}
	r.stranded.WithLabelValues(label(plant), stage).Inc()
}

func (r *Recorder) ObserveQueueDepth(plant int, queue string, depth int) {
	if r == nil {
		return
	}
	r.queueDepth.WithLabelValues(label(plant), queue).Set(float64(depth))
}

// WriteTextfile writes every collected metric to path in the Prometheus text
// format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

func label(plant int) string {
	return strconv.Itoa(plant)
}
