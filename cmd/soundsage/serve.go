// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/soundsage/soundsage/api"
	"github.com/soundsage/soundsage/cmd/soundsage/httpserver"
	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/metrics"
	"github.com/soundsage/soundsage/tui"
	"github.com/soundsage/soundsage/watcher"
)

// newWatcher builds the watcher shared by serve and dashboard. The returned
// func releases the client and the event db.
func newWatcher(goCtx context.Context, ctx *cli.Context) (*watcher.Watcher, func(), error) {
	client, closeClient, err := newClient(goCtx, ctx, false)
	if err != nil {
		return nil, nil, err
	}
	var db *eventdb.EventDB
	if !ctx.Bool(noIndexFlag.Name) {
		if db, err = openEventDB(ctx); err != nil {
			closeClient()
			return nil, nil, err
		}
	}
	w, err := watcher.New(client, db, watcher.Config{
		Interval:   ctx.Duration(pollIntervalFlag.Name),
		StartBlock: ctx.Uint64(startBlockFlag.Name),
	})
	if err != nil {
		closeClient()
		if db != nil {
			db.Close()
		}
		return nil, nil, err
	}
	return w, func() {
		if db != nil {
			log.Info("closing event database...")
			db.Close()
		}
		closeClient()
	}, nil
}

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)
	goCtx := handleExitSignal()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); closeFunc() }()
		log.Info("metrics server started", "url", url)
	}

	w, closeWatcher, err := newWatcher(goCtx, ctx)
	if err != nil {
		return err
	}
	defer closeWatcher()

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	if ctx.Bool(enableAdminFlag.Name) {
		// a healthy watcher has polled within the last three intervals
		maxPollDelay := 3 * ctx.Duration(pollIntervalFlag.Name)
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, &apiLogs, w, maxPollDelay)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
		log.Info("admin server started", "url", url)
	}

	apiURL, closeAPI, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), w, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      &apiLogs,
		SlowQueriesThreshold: ctx.Duration(apiSlowQueriesThresholdFlag.Name),
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
	})
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); closeAPI() }()

	printStartupMessage(w.Client(), apiURL, w.EventDB())

	return w.Run(goCtx)
}

func dashboardAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx, cancel := context.WithCancel(handleExitSignal())
	defer cancel()

	w, closeWatcher, err := newWatcher(goCtx, ctx)
	if err != nil {
		return err
	}
	defer closeWatcher()

	// the dashboard owns the terminal, so the watcher stays quiet
	log.SetDefault(log.NewLogger(log.DiscardHandler()))

	var goes sync.WaitGroup
	goes.Go(func() {
		w.Run(goCtx)
	})
	defer goes.Wait()
	defer cancel()

	return tui.Run(goCtx, w, w.Client(), w.Client().Network())
}

func printStartupMessage(client *dapp.Client, apiURL string, db *eventdb.EventDB) {
	account := "read-only"
	if client.Connected() {
		account = client.Account().Hex()
	}
	index := "disabled"
	if db != nil {
		index = db.Path()
	}
	net := client.Network()
	fmt.Printf(`Starting %v
    Network     [ %v %v ]
    Contracts   [ token %v | dao %v ]
    Account     [ %v ]
    Event index [ %v ]
    API portal  [ %v ]
`,
		"SoundSage",
		net.Name, net.HexChainID(),
		net.GrooveToken.Hex(), net.PlaylistDAO.Hex(),
		account,
		index,
		apiURL)
}
