// Package prom exports cache events as Prometheus metrics.
package prom

import (
	lfucache "github.com/Borislavv/go-lfu-cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements lfucache.Recorder and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	inserts    prometheus.Counter
	updates    prometheus.Counter
	removals   prometheus.Counter
	rejections prometheus.Counter
	evicts     *prometheus.CounterVec
	size       prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		hits:       counter("hits_total", "Cache hits"),
		misses:     counter("misses_total", "Cache misses"),
		inserts:    counter("inserts_total", "New keys stored"),
		updates:    counter("updates_total", "Existing keys overwritten"),
		removals:   counter("removals_total", "Keys removed explicitly"),
		rejections: counter("rejections_total", "Inserts declined by admission control"),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Cache evictions by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.inserts, a.updates, a.removals, a.rejections, a.evicts, a.size)
	return a
}

func (a *Adapter) Hit()    { a.hits.Inc() }
func (a *Adapter) Miss()   { a.misses.Inc() }
func (a *Adapter) Insert() { a.inserts.Inc() }
func (a *Adapter) Update() { a.updates.Inc() }
func (a *Adapter) Remove() { a.removals.Inc() }
func (a *Adapter) Reject() { a.rejections.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r lfucache.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size updates the resident entries gauge.
func (a *Adapter) Size(entries int) {
	a.size.Set(float64(entries))
}

// Compile-time check: ensure Adapter implements lfucache.Recorder.
var _ lfucache.Recorder = (*Adapter)(nil)
