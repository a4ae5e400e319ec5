// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/soundsage/soundsage/api/admin/apilogs"
	"github.com/soundsage/soundsage/api/admin/health"
	"github.com/soundsage/soundsage/api/admin/loglevel"
)

// New returns the admin server handler. It is meant to be bound to a
// loopback address only.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, poller health.Poller, maxPollDelay time.Duration) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")
	health.New(poller, maxPollDelay).Mount(sub, "/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
