// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/watcher"
)

var (
	networkFlag = cli.StringFlag{
		Name:   "network",
		Value:  "sepolia",
		Usage:  "the network to use (sepolia|localhost) or the path to a network file",
		EnvVar: "SOUNDSAGE_NETWORK",
	}
	rpcFlag = cli.StringFlag{
		Name:   "rpc",
		Usage:  "JSON-RPC endpoint, overrides the one of the network",
		EnvVar: "SOUNDSAGE_RPC",
	}
	privateKeyFlag = cli.StringFlag{
		Name:  "private-key",
		Usage: "hex private key of the account (falls back to $SOUNDSAGE_PRIVATE_KEY)",
	}
	keyFileFlag = cli.StringFlag{
		Name:  "key-file",
		Usage: "file holding a hex private key",
	}
	keystoreFlag = cli.StringFlag{
		Name:  "keystore",
		Usage: "encrypted keystore file of the account",
	}
	passwordFileFlag = cli.StringFlag{
		Name:  "password-file",
		Usage: "file holding the keystore password, prompted for when absent",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	txTimeoutFlag = cli.DurationFlag{
		Name:  "tx-timeout",
		Value: dapp.DefaultTxTimeout,
		Usage: "how long to wait for a transaction to be mined",
	}

	// deploy
	tokenArtifactFlag = cli.StringFlag{
		Name:  "token-artifact",
		Value: "artifacts/contracts/GrooveToken.sol/GrooveToken.json",
		Usage: "hardhat artifact of GrooveToken",
	}
	daoArtifactFlag = cli.StringFlag{
		Name:  "dao-artifact",
		Value: "artifacts/contracts/PlaylistDAO.sol/PlaylistDAO.json",
		Usage: "hardhat artifact of PlaylistDAO",
	}
	confirmationsFlag = cli.Uint64Flag{
		Name:  "confirmations",
		Usage: "blocks to wait for on top of each deployment",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Value: "deployment.yaml",
		Usage: "network file written with the deployed addresses",
	}

	// mint
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient of the minted tokens, the signer when empty",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Value: "1000",
		Usage: "amount of GROOVE to mint",
	}

	// balance
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "account to query, the signer when empty",
	}

	// propose
	titleFlag = cli.StringFlag{
		Name:  "title",
		Usage: "song title",
	}
	artistFlag = cli.StringFlag{
		Name:  "artist",
		Usage: "song artist",
	}
	linkFlag = cli.StringFlag{
		Name:  "link",
		Usage: "song link (Spotify or YouTube)",
	}

	// history
	dbFlag = cli.StringFlag{
		Name:   "db",
		Value:  "soundsage.db",
		Usage:  "event index database, ':memory:' to keep it in memory",
		EnvVar: "SOUNDSAGE_DB",
	}
	startBlockFlag = cli.Uint64Flag{
		Name:  "start-block",
		Usage: "first block to index when the event index is empty",
	}
	proposerFlag = cli.StringFlag{
		Name:  "proposer",
		Usage: "only list proposals of this address",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Value: 50,
		Usage: "maximum number of rows",
	}
	offsetFlag = cli.Uint64Flag{
		Name:  "offset",
		Usage: "rows to skip",
	}
	descFlag = cli.BoolFlag{
		Name:  "desc",
		Usage: "newest first",
	}

	// serve & dashboard
	pollIntervalFlag = cli.DurationFlag{
		Name:  "poll-interval",
		Value: watcher.DefaultInterval,
		Usage: "how often the chain is polled",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiSlowQueriesThresholdFlag = cli.DurationFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than this, 0 disables it",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log API requests that fail with a 5xx",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "log every API request",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables the admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	noIndexFlag = cli.BoolFlag{
		Name:  "no-index",
		Usage: "do not index contract events",
	}
)
