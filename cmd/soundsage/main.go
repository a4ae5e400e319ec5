// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "SoundSage",
		Usage:   "Community playlist curation with GROOVE and the PlaylistDAO",
		Flags: []cli.Flag{
			networkFlag,
			rpcFlag,
			privateKeyFlag,
			keyFileFlag,
			keystoreFlag,
			passwordFileFlag,
			verbosityFlag,
			jsonLogsFlag,
			txTimeoutFlag,
		},
		Commands: []cli.Command{
			{
				Name:   "deploy",
				Usage:  "deploy GrooveToken and PlaylistDAO",
				Action: deployAction,
				Flags: []cli.Flag{
					tokenArtifactFlag,
					daoArtifactFlag,
					confirmationsFlag,
					outFlag,
				},
			},
			{
				Name:   "mint",
				Usage:  "mint GROOVE, the signer must own the token",
				Action: mintAction,
				Flags:  []cli.Flag{toFlag, amountFlag},
			},
			{
				Name:   "balance",
				Usage:  "show a GROOVE balance",
				Action: balanceAction,
				Flags:  []cli.Flag{accountFlag},
			},
			{
				Name:   "propose",
				Usage:  "submit a song proposal",
				Action: proposeAction,
				Flags:  []cli.Flag{titleFlag, artistFlag, linkFlag},
			},
			{
				Name:      "vote",
				Usage:     "vote for a proposal",
				ArgsUsage: "<proposal id>",
				Action:    voteAction,
			},
			{
				Name:   "proposals",
				Usage:  "list all proposals",
				Action: proposalsAction,
			},
			{
				Name:   "count",
				Usage:  "show the number of proposals",
				Action: countAction,
			},
			{
				Name:   "history",
				Usage:  "list indexed ProposalCreated events",
				Action: historyAction,
				Flags: []cli.Flag{
					dbFlag,
					startBlockFlag,
					proposerFlag,
					limitFlag,
					offsetFlag,
					descFlag,
				},
			},
			{
				Name:   "serve",
				Usage:  "serve the SoundSage API",
				Action: serveAction,
				Flags: []cli.Flag{
					dbFlag,
					noIndexFlag,
					startBlockFlag,
					pollIntervalFlag,
					apiAddrFlag,
					apiCorsFlag,
					apiSlowQueriesThresholdFlag,
					apiLog5xxErrorsFlag,
					enableAPILogsFlag,
					pprofFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					enableAdminFlag,
					adminAddrFlag,
				},
			},
			{
				Name:   "dashboard",
				Usage:  "open the terminal dashboard",
				Action: dashboardAction,
				Flags: []cli.Flag{
					dbFlag,
					noIndexFlag,
					startBlockFlag,
					pollIntervalFlag,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
