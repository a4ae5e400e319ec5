// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soundsage/soundsage/api/admin"
	"github.com/soundsage/soundsage/api/admin/health"
)

func StartAdminServer(
	addr string,
	logLevel *slog.LevelVar,
	apiLogs *atomic.Bool,
	poller health.Poller,
	maxPollDelay time.Duration,
) (string, func(), error) {
	s := &server{
		name:    "admin API",
		path:    "/admin",
		handler: admin.New(logLevel, apiLogs, poller, maxPollDelay),
	}
	return s.start(addr)
}
