// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package deploy puts a fresh GrooveToken and PlaylistDAO on chain.
package deploy

import (
	"context"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/soundsage/soundsage/contracts"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/network"
)

var logger = log.WithContext("pkg", "deploy")

// Backend is what deploying needs from an RPC endpoint.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
}

// Addresses is the outcome of a deployment.
type Addresses struct {
	Network     string         `yaml:"name"`
	GrooveToken common.Address `yaml:"grooveToken"`
	PlaylistDAO common.Address `yaml:"playlistDao"`
	TokenTx     common.Hash    `yaml:"-"`
	DAOTx       common.Hash    `yaml:"-"`
}

// WriteFile stores the addresses as a network overlay file, loadable with network.Load.
func (a *Addresses) WriteFile(path string) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "encode addresses")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write addresses")
}

// Apply returns net pointing at the deployed contracts.
func (a *Addresses) Apply(net *network.Network) *network.Network {
	return net.WithContracts(a.GrooveToken, a.PlaylistDAO)
}

// Options tune how deployment transactions are awaited.
type Options struct {
	// Confirmations is the number of blocks to wait for on top of the mining block.
	Confirmations uint64
	// PollInterval is how often the head is checked while confirming.
	PollInterval time.Duration
	// Progress, if set, is called with the number of confirmations reached.
	Progress func(contract string, confirmed, want uint64)
}

// Deploy deploys GrooveToken and then PlaylistDAO bound to the token.
func Deploy(ctx context.Context, backend Backend, opts *bind.TransactOpts, net *network.Network, tokenArtifact, daoArtifact *contracts.Artifact, o Options) (*Addresses, error) {
	if o.PollInterval == 0 {
		o.PollInterval = time.Second
	}
	opts.Context = ctx
	logger.Info("deploying GrooveToken", "network", net.Name, "deployer", opts.From)

	token, tx, err := contracts.DeployGrooveToken(opts, backend, tokenArtifact)
	if err != nil {
		return nil, errors.WithMessage(err, "deploy GrooveToken")
	}
	if err := await(ctx, backend, tx, "GrooveToken", o); err != nil {
		return nil, err
	}
	logger.Info("GrooveToken deployed", "address", token.Address(), "tx", tx.Hash())
	out := &Addresses{Network: net.Name, GrooveToken: token.Address(), TokenTx: tx.Hash()}

	dao, tx, err := contracts.DeployPlaylistDAO(opts, backend, daoArtifact, token.Address())
	if err != nil {
		return nil, errors.WithMessage(err, "deploy PlaylistDAO")
	}
	if err := await(ctx, backend, tx, "PlaylistDAO", o); err != nil {
		return nil, err
	}
	logger.Info("PlaylistDAO deployed", "address", dao.Address(), "tx", tx.Hash())
	out.PlaylistDAO, out.DAOTx = dao.Address(), tx.Hash()
	return out, nil
}

func await(ctx context.Context, backend Backend, tx *types.Transaction, name string, o Options) error {
	if _, err := bind.WaitDeployed(ctx, backend, tx); err != nil {
		return errors.Wrapf(err, "wait for %s deployment", name)
	}
	if o.Confirmations == 0 {
		return nil
	}
	receipt, err := backend.TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		return errors.Wrapf(err, "%s receipt", name)
	}
	target := receipt.BlockNumber.Uint64() + o.Confirmations

	ticker := time.NewTicker(o.PollInterval)
	defer ticker.Stop()
	for {
		head, err := backend.BlockNumber(ctx)
		if err != nil {
			return errors.Wrap(err, "query head")
		}
		confirmed := min(o.Confirmations, head-min(head, receipt.BlockNumber.Uint64()))
		if o.Progress != nil {
			o.Progress(name, confirmed, o.Confirmations)
		}
		if head >= target {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
