// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/api/accounts"
	"github.com/soundsage/soundsage/api/middleware"
	"github.com/soundsage/soundsage/api/network"
	"github.com/soundsage/soundsage/api/proposals"
	"github.com/soundsage/soundsage/api/subscriptions"
	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/metrics"
	"github.com/soundsage/soundsage/watcher"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	PprofOn              bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
}

// New returns the api router and a func closing the open subscriptions.
func New(w *watcher.Watcher, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	router.NotFoundHandler = utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return utils.NotFound(errors.New("not found"))
	})
	router.MethodNotAllowedHandler = utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return utils.HTTPError(errors.New("method not allowed"), http.StatusMethodNotAllowed)
	})

	network.New(w.Client().Network(), w).
		Mount(router, "/network")
	acc := accounts.New(w)
	acc.Mount(router, "/accounts")
	router.Path("/account").
		Methods(http.MethodGet).
		Name("account_get").
		HandlerFunc(acc.ConnectedHandler())
	proposals.New(w).
		Mount(router, "/proposals")
	subs := subscriptions.New(w, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP, subs.Close // subscriptions hold hijacked conns, which need to be closed
}
