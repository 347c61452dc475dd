// Package prom implements metrics.Stats with Prometheus counters and
// gauges. Ported from IvanBrykalov-shardcache/metrics/prom/prom.go, with
// the evict label driven by listener.Op (put/putAll/remove/replace/clear/
// trim) instead of the teacher's fixed policy/ttl/capacity EvictReason,
// since this store has no TTL concept of its own.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cakecache/cake/listener"
	"github.com/cakecache/cake/metrics"
)

// Adapter implements metrics.Stats and exports Prometheus counters/gauges.
// Safe for concurrent use; every Prometheus metric type is goroutine-safe.
type Adapter struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	evicts *prometheus.CounterVec
	size   prometheus.Gauge
	volume prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Cache evictions by triggering operation",
				ConstLabels: constLabels,
			},
			[]string{"op"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
		volume: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_volume",
			Help:        "Total resident volume",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.size, a.volume)
	return a
}

func (a *Adapter) Hit()  { a.hits.Inc() }
func (a *Adapter) Miss() { a.misses.Inc() }

func (a *Adapter) Evict(op listener.Op) {
	a.evicts.WithLabelValues(op.String()).Inc()
}

func (a *Adapter) Size(entries int, volume int64) {
	a.size.Set(float64(entries))
	a.volume.Set(float64(volume))
}

var _ metrics.Stats = (*Adapter)(nil)
