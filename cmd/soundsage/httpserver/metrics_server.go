// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/metrics"
)

// StartMetricsServer exposes the prometheus metrics on their own listener,
// apart from the public API.
func StartMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.Path("/metrics").
		Methods(http.MethodGet).
		Name("metrics").
		Handler(metrics.HTTPHandler())
	router.NotFoundHandler = utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return utils.NotFound(errors.New("only /metrics is served here"))
	})

	s := &server{name: "metrics API", path: "/metrics", handler: handlers.CompressHandler(router)}
	return s.start(addr)
}
