// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/watcher"
)

// Poller is what health is judged on. *watcher.Watcher satisfies it.
type Poller interface {
	Latest() *watcher.Snapshot
	Err() error
}

type Status struct {
	Healthy  bool       `json:"healthy"`
	LastPoll *time.Time `json:"lastPoll"`
	Block    uint64     `json:"block"`
	Error    string     `json:"error,omitempty"`
}

type API struct {
	poller   Poller
	maxDelay time.Duration
	now      func() time.Time
}

// New creates the health API. The service is healthy when the last poll
// succeeded and is at most maxDelay old.
func New(poller Poller, maxDelay time.Duration) *API {
	return &API{poller: poller, maxDelay: maxDelay, now: time.Now}
}

func (h *API) status(maxDelay time.Duration) *Status {
	st := &Status{}
	if snap := h.poller.Latest(); snap != nil {
		at := snap.At
		st.LastPoll = &at
		st.Block = snap.Block
	}
	if err := h.poller.Err(); err != nil {
		st.Error = err.Error()
	}
	st.Healthy = st.LastPoll != nil && st.Error == "" && h.now().Sub(*st.LastPoll) <= maxDelay
	return st
}

func (h *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	maxDelay := h.maxDelay
	if q := r.URL.Query().Get("maxDelay"); q != "" {
		if parsed, err := time.ParseDuration(q); err == nil {
			maxDelay = parsed
		}
	}

	st := h.status(maxDelay)
	w.Header().Set("Content-Type", utils.JSONContentType)
	if !st.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return utils.WriteJSON(w, st)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
