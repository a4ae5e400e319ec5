// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soundsage/soundsage/log"
)

const namespace = "soundsage"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the registry to prometheus. Meters
// obtained before the call stay no-ops. Calling it again has no effect.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = &prometheusMetrics{meters: make(map[string]any)}
	}
}

// prometheusMetrics registers every meter on the default prometheus registerer,
// prefixed with namespace.
type prometheusMetrics struct {
	mu     sync.Mutex
	meters map[string]any
}

// getOrCreate returns the meter registered under name. A name reused for
// another kind of meter gets an unregistered meter, so writes are dropped.
func getOrCreate[T any](o *prometheusMetrics, name string, create func() (prometheus.Collector, T)) T {
	o.mu.Lock()
	defer o.mu.Unlock()

	if existing, ok := o.meters[name]; ok {
		if meter, ok := existing.(T); ok {
			return meter
		}
		logger.Warn("metric name reused by another kind of meter", "name", name)
		_, meter := create()
		return meter
	}

	collector, meter := create()
	if err := prometheus.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", name, "err", err)
		return meter
	}
	o.meters[name] = meter
	return meter
}

func (o *prometheusMetrics) GetOrCreateHandler() http.Handler { return promhttp.Handler() }

func (o *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	return getOrCreate(o, name, func() (prometheus.Collector, CountMeter) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, promCounter{c}
	})
}

func (o *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	return getOrCreate(o, name, func() (prometheus.Collector, CountVecMeter) {
		v := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return v, promCounterVec{v}
	})
}

func (o *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	return getOrCreate(o, name, func() (prometheus.Collector, GaugeMeter) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		return g, promGauge{g}
	})
}

func (o *prometheusMetrics) GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	return getOrCreate(o, name, func() (prometheus.Collector, GaugeVecMeter) {
		v := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		return v, promGaugeVec{v}
	})
}

func (o *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	return getOrCreate(o, name, func() (prometheus.Collector, HistogramMeter) {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Buckets: floatBuckets(buckets)})
		return h, promHistogram{h}
	})
}

func (o *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	return getOrCreate(o, name, func() (prometheus.Collector, HistogramVecMeter) {
		v := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Buckets: floatBuckets(buckets)}, labels)
		return v, promHistogramVec{v}
	})
}

// floatBuckets converts buckets; nil selects the prometheus defaults.
func floatBuckets(buckets []int64) []float64 {
	if buckets == nil {
		return nil
	}
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b)
	}
	return out
}

type (
	promCounter      struct{ c prometheus.Counter }
	promCounterVec   struct{ v *prometheus.CounterVec }
	promGauge        struct{ g prometheus.Gauge }
	promGaugeVec     struct{ v *prometheus.GaugeVec }
	promHistogram    struct{ h prometheus.Histogram }
	promHistogramVec struct{ v *prometheus.HistogramVec }
)

func (m promCounter) Add(i int64) { m.c.Add(float64(i)) }

func (m promCounterVec) AddWithLabel(i int64, labels map[string]string) {
	m.v.With(labels).Add(float64(i))
}

func (m promGauge) Add(i int64) { m.g.Add(float64(i)) }
func (m promGauge) Set(i int64) { m.g.Set(float64(i)) }

func (m promGaugeVec) AddWithLabel(i int64, labels map[string]string) {
	m.v.With(labels).Add(float64(i))
}

func (m promGaugeVec) SetWithLabel(i int64, labels map[string]string) {
	m.v.With(labels).Set(float64(i))
}

func (m promHistogram) Observe(i int64) { m.h.Observe(float64(i)) }

func (m promHistogramVec) ObserveWithLabels(i int64, labels map[string]string) {
	m.v.With(labels).Observe(float64(i))
}
