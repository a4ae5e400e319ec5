// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"github.com/soundsage/soundsage/api"
	"github.com/soundsage/soundsage/watcher"
)

// StartAPIServer serves the public API on addr. The returned func closes the
// open subscriptions and stops the server.
func StartAPIServer(addr string, w *watcher.Watcher, opts api.Options) (string, func(), error) {
	handler, closeSubs := api.New(w, opts)
	s := &server{name: "API", path: "/", handler: handler, onClose: []func(){closeSubs}}
	url, stop, err := s.start(addr)
	if err != nil {
		closeSubs()
		return "", nil, err
	}
	return url, stop, nil
}
