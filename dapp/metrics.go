// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dapp

import "github.com/soundsage/soundsage/metrics"

var (
	metricCallCount    = metrics.LazyLoadCounterVec("contract_call_count", []string{"method", "status"})
	metricCallDuration = metrics.LazyLoadHistogramVec("contract_call_duration_ms", []string{"method"}, metrics.BucketRPCCalls)
	metricTxCount      = metrics.LazyLoadCounterVec("contract_tx_count", []string{"method", "status"})
	metricTxWait       = metrics.LazyLoadHistogram("contract_tx_wait_ms", metrics.BucketTxWait)
)
