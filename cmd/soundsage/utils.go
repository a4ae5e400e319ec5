// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/network"
	"github.com/soundsage/soundsage/wallet"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// initLogger installs the root logger and returns its level, which the admin
// server may change at runtime.
func initLogger(ctx *cli.Context) *slog.LevelVar {
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return lvl
}

// handleExitSignal returns a context cancelled on the first interrupt. A
// second one exits right away.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()

		<-exitSignalCh
		os.Exit(1)
	}()
	return ctx
}

func selectNetwork(ctx *cli.Context) (*network.Network, error) {
	net, err := network.Select(ctx.GlobalString(networkFlag.Name))
	if err != nil {
		return nil, err
	}
	if rpc := ctx.GlobalString(rpcFlag.Name); rpc != "" {
		net.RPCURL = rpc
	}
	return net, nil
}

func dial(goCtx context.Context, net *network.Network) (*ethclient.Client, error) {
	backend, err := ethclient.DialContext(goCtx, net.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", net.RPCURL)
	}
	return backend, nil
}

// loadWallet returns nil without error when no key was configured and
// required is false.
func loadWallet(ctx *cli.Context, required bool) (*wallet.Wallet, error) {
	w, err := wallet.Load(wallet.Source{
		PrivateKey:   ctx.GlobalString(privateKeyFlag.Name),
		KeyFile:      ctx.GlobalString(keyFileFlag.Name),
		Keystore:     ctx.GlobalString(keystoreFlag.Name),
		PasswordFile: ctx.GlobalString(passwordFileFlag.Name),
		Prompt:       wallet.ReadPasswordFromTTY,
	})
	if errors.Is(err, wallet.ErrNoKey) && !required {
		log.Warn("no wallet configured, running read-only")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// newClient dials the selected network and returns a connected dapp client.
func newClient(goCtx context.Context, ctx *cli.Context, requireWallet bool) (*dapp.Client, func(), error) {
	net, err := selectNetwork(ctx)
	if err != nil {
		return nil, nil, err
	}
	w, err := loadWallet(ctx, requireWallet)
	if err != nil {
		return nil, nil, err
	}
	backend, err := dial(goCtx, net)
	if err != nil {
		return nil, nil, err
	}
	client, err := dapp.New(backend, net, w, dapp.WithTxTimeout(ctx.GlobalDuration(txTimeoutFlag.Name)))
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	if err := client.Connect(goCtx); err != nil {
		backend.Close()
		return nil, nil, err
	}
	return client, backend.Close, nil
}

func openEventDB(ctx *cli.Context) (*eventdb.EventDB, error) {
	path := ctx.String(dbFlag.Name)
	if path == ":memory:" {
		return eventdb.NewMem()
	}
	db, err := eventdb.New(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "open event db %s", path)
	}
	return db, nil
}

func parseAddressFlag(ctx *cli.Context, name string) (*common.Address, error) {
	s := ctx.String(name)
	if s == "" {
		return nil, nil
	}
	if !common.IsHexAddress(s) {
		return nil, errors.Errorf("%s: invalid address %q", name, s)
	}
	addr := common.HexToAddress(s)
	return &addr, nil
}
