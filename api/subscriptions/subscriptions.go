// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/watcher"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
)

// Source is where snapshots come from. *watcher.Watcher satisfies it.
type Source interface {
	Subscribe() (<-chan *watcher.Snapshot, func())
}

type Subscriptions struct {
	source   Source
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup

	wsConnMu sync.Mutex
	wsConns  map[*websocket.Conn]struct{}
}

func New(source Source, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		source: source,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == u.Host || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done:    make(chan struct{}),
		wsConns: make(map[*websocket.Conn]struct{}),
	}
}

func (s *Subscriptions) handleSubscribeProposals(w http.ResponseWriter, req *http.Request) error {
	conn, closed, err := s.setupConn(w, req)
	// the upgrader already answered the request on failure, and a hijacked
	// conn can't carry an http error either
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	defer s.closeConn(conn)

	snapshots, unsubscribe := s.source.Subscribe()
	defer unsubscribe()

	if err := s.pipe(conn, snapshots, closed); err != nil {
		logger.Debug("error in websocket pipe", "err", err)
	}
	return nil
}

func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}

	s.wsConnMu.Lock()
	s.wsConns[conn] = struct{}{}
	s.wsConnMu.Unlock()

	closed := make(chan struct{})
	// start read loop to handle close event
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read err", "err", err)
				close(closed)
				break
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn) {
	s.wsConnMu.Lock()
	delete(s.wsConns, conn)
	s.wsConnMu.Unlock()

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait)); err != nil {
		logger.Debug("write close message", "err", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("close websocket", "err", err)
	}
}

func (s *Subscriptions) pipe(conn *websocket.Conn, snapshots <-chan *watcher.Snapshot, closed chan struct{}) error {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(snap); err != nil {
				return err
			}
		case <-pingTicker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close ends every open subscription and waits for their read loops.
func (s *Subscriptions) Close() {
	close(s.done)

	s.wsConnMu.Lock()
	for conn := range s.wsConns {
		conn.Close()
	}
	s.wsConnMu.Unlock()

	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/proposals").
		Methods(http.MethodGet).
		Name("WS /subscriptions/proposals").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeProposals))
}
