// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func sumCounters(mf *dto.MetricFamily) (sum float64) {
	for _, m := range mf.GetMetric() {
		sum += m.GetCounter().GetValue()
	}
	return
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("tx_sent").Add(2)
	Counter("tx_sent").Add(3)

	calls := CounterVec("rpc_calls", []string{"method"})
	calls.AddWithLabel(1, map[string]string{"method": "vote"})
	calls.AddWithLabel(4, map[string]string{"method": "createProposal"})

	Gauge("proposals").Set(7)
	Gauge("proposals").Add(-2)
	GaugeVec("ws_conns", []string{"subject"}).SetWithLabel(3, map[string]string{"subject": "proposals"})

	Histogram("poll_ms", BucketRPCCalls).Observe(30)
	Histogram("poll_ms", BucketRPCCalls).Observe(70)
	HistogramVec("req_ms", []string{"name"}, nil).ObserveWithLabels(5, map[string]string{"name": "proposals_list"})

	families := gather(t)
	assert.Equal(t, float64(5), sumCounters(families["soundsage_tx_sent"]))
	assert.Equal(t, float64(5), sumCounters(families["soundsage_rpc_calls"]))
	assert.Len(t, families["soundsage_rpc_calls"].GetMetric(), 2)
	assert.Equal(t, float64(5), families["soundsage_proposals"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, float64(3), families["soundsage_ws_conns"].GetMetric()[0].GetGauge().GetValue())

	hist := families["soundsage_poll_ms"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), hist.GetSampleCount())
	assert.Equal(t, float64(100), hist.GetSampleSum())
	assert.Len(t, hist.GetBucket(), len(BucketRPCCalls))
	assert.Equal(t, uint64(1), families["soundsage_req_ms"].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestNameReusedByAnotherKind(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("shared_name").Add(1)
	// writes to the clashing gauge are dropped, the counter is untouched
	Gauge("shared_name").Set(100)

	assert.Equal(t, float64(1), sumCounters(gather(t)["soundsage_shared_name"]))
}

func TestLazyLoading(t *testing.T) {
	prev := metrics
	t.Cleanup(func() { metrics = prev })
	metrics = defaultNoopMetrics()

	for _, m := range []any{
		Gauge("noop"), GaugeVec("noop", nil),
		Counter("noop"), CounterVec("noop", nil),
		Histogram("noop", nil), HistogramVec("noop", nil, nil),
	} {
		require.IsType(t, noop{}, m)
	}

	lazyGauge := LazyLoadGauge("lazy_gauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazy_gauge_vec", nil)
	lazyCounter := LazyLoadCounter("lazy_counter")
	lazyCounterVec := LazyLoadCounterVec("lazy_counter_vec", nil)
	lazyHistogram := LazyLoadHistogram("lazy_histogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazy_histogram_vec", nil, nil)

	// meters resolved after the switch are prometheus backed
	InitializePrometheusMetrics()

	require.IsType(t, promGauge{}, lazyGauge())
	require.IsType(t, promGaugeVec{}, lazyGaugeVec())
	require.IsType(t, promCounter{}, lazyCounter())
	require.IsType(t, promCounterVec{}, lazyCounterVec())
	require.IsType(t, promHistogram{}, lazyHistogram())
	require.IsType(t, promHistogramVec{}, lazyHistogramVec())

	// the second call returns the same meter
	assert.Equal(t, lazyCounter(), lazyCounter())
}
