// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpserver starts the API, admin and metrics listeners of the
// serve command. Each start returns the served URL and a func stopping it.
package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/log"
)

var logger = log.WithContext("pkg", "httpserver")

// server is one http.Server bound to its own listener.
type server struct {
	name    string
	path    string
	handler http.Handler
	onClose []func()
	srv     *http.Server
	goes    sync.WaitGroup
}

func (s *server) start(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen %s addr [%v]", s.name, addr)
	}
	s.srv = &http.Server{Handler: s.handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	s.goes.Go(func() {
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("server stopped", "name", s.name, "err", err)
		}
	})
	return "http://" + listener.Addr().String() + s.path, s.close, nil
}

func (s *server) close() {
	for _, f := range s.onClose {
		f()
	}
	s.srv.Close()
	s.goes.Wait()
}
