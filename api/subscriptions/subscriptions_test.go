// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsage/soundsage/watcher"
)

type fakeSource struct {
	ch      chan *watcher.Snapshot
	mu      sync.Mutex
	stopped int
}

func (f *fakeSource) Subscribe() (<-chan *watcher.Snapshot, func()) {
	return f.ch, func() {
		f.mu.Lock()
		f.stopped++
		f.mu.Unlock()
	}
}

func (f *fakeSource) unsubscribed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func newServer(t *testing.T, origins []string) (*httptest.Server, *fakeSource, *Subscriptions) {
	src := &fakeSource{ch: make(chan *watcher.Snapshot, 1)}
	subs := New(src, origins)
	router := mux.NewRouter()
	subs.Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, src, subs
}

func wsURL(ts *httptest.Server) string {
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/proposals"}
	return u.String()
}

func TestPipeSnapshots(t *testing.T) {
	ts, src, subs := newServer(t, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()

	src.ch <- &watcher.Snapshot{Balance: "12.5", Block: 9}
	var snap watcher.Snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "12.5", snap.Balance)
	assert.Equal(t, uint64(9), snap.Block)

	subs.Close()
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return src.unsubscribed() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSourceClosed(t *testing.T) {
	ts, src, _ := newServer(t, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()

	close(src.ch)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
}

func TestCheckOrigin(t *testing.T) {
	ts, _, _ := newServer(t, []string{"soundsage.app"})

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, res, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	header.Set("Origin", "https://soundsage.app")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.NoError(t, err)
	conn.Close()
}
