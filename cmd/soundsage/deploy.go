// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/soundsage/soundsage/contracts"
	"github.com/soundsage/soundsage/deploy"
	"github.com/soundsage/soundsage/wallet"
)

// confirmProgress draws one progress bar per contract awaiting confirmations.
type confirmProgress struct {
	contract string
	bar      *pb.ProgressBar
}

func (p *confirmProgress) update(contract string, confirmed, want uint64) {
	if p.contract != contract {
		p.finish()
		p.contract = contract
		p.bar = pb.New64(int64(want)).
			Prefix(contract + " ").
			SetMaxWidth(90).
			Start()
	}
	p.bar.Set64(int64(confirmed))
}

func (p *confirmProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}

func deployAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	net, err := selectNetwork(ctx)
	if err != nil {
		return err
	}
	w, err := loadWallet(ctx, true)
	if err != nil {
		return err
	}
	tokenArtifact, err := contracts.LoadArtifact(ctx.String(tokenArtifactFlag.Name))
	if err != nil {
		return err
	}
	daoArtifact, err := contracts.LoadArtifact(ctx.String(daoArtifactFlag.Name))
	if err != nil {
		return err
	}

	backend, err := dial(goCtx, net)
	if err != nil {
		return err
	}
	defer backend.Close()
	if err := wallet.EnsureChain(goCtx, backend, net); err != nil {
		return err
	}
	opts, err := w.TransactOpts(goCtx, net.ChainIDBig())
	if err != nil {
		return err
	}

	fmt.Println("Deploying contracts with the account:", w.Address().Hex())

	progress := &confirmProgress{}
	defer progress.finish()
	out, err := deploy.Deploy(goCtx, backend, opts, net, tokenArtifact, daoArtifact, deploy.Options{
		Confirmations: ctx.Uint64(confirmationsFlag.Name),
		Progress:      progress.update,
	})
	if err != nil {
		return err
	}
	progress.finish()

	if path := ctx.String(outFlag.Name); path != "" {
		if err := out.WriteFile(path); err != nil {
			return err
		}
		fmt.Printf("Addresses written to %s, use it with --%s %s\n", path, networkFlag.Name, path)
	}
	fmt.Println("Deployment completed!")
	renderDeployment(os.Stdout, out)
	return nil
}
