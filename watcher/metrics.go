// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package watcher

import "github.com/soundsage/soundsage/metrics"

var (
	metricPollDuration = metrics.LazyLoadHistogram("poll_duration_ms", metrics.BucketRPCCalls)
	metricPollErrors   = metrics.LazyLoadCounter("poll_error_count")
	metricProposals    = metrics.LazyLoadGauge("proposals")
	metricIndexedBlock = metrics.LazyLoadGauge("indexed_block")
	metricSubscribers  = metrics.LazyLoadGauge("subscribers")
)
