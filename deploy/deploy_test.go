// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deploy_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsage/soundsage/contracts"
	"github.com/soundsage/soundsage/deploy"
	"github.com/soundsage/soundsage/network"
	"github.com/soundsage/soundsage/test/datagen"
	"github.com/soundsage/soundsage/test/testchain"
)

func transactor(t *testing.T, acc datagen.DevAccount) *bind.TransactOpts {
	opts, err := bind.NewKeyedTransactorWithChainID(acc.PrivateKey, big.NewInt(31337))
	require.NoError(t, err)
	return opts
}

func TestDeploy(t *testing.T) {
	chain := testchain.New(31337)
	owner := datagen.DevAccounts()[0]
	ctx := context.Background()

	addrs, err := deploy.Deploy(ctx, chain, transactor(t, owner), network.Localhost(),
		testchain.TokenArtifact(), testchain.DAOArtifact(), deploy.Options{})
	require.NoError(t, err)
	assert.NotZero(t, addrs.GrooveToken)
	assert.NotZero(t, addrs.PlaylistDAO)
	assert.NotEqual(t, addrs.GrooveToken, addrs.PlaylistDAO)
	assert.Equal(t, "localhost", addrs.Network)

	symbol, err := contracts.NewGrooveToken(addrs.GrooveToken, chain).Symbol(nil)
	require.NoError(t, err)
	assert.Equal(t, "GROOVE", symbol)

	net := addrs.Apply(network.Localhost())
	assert.Equal(t, addrs.PlaylistDAO, *net.PlaylistDAO)
}

func TestDeployWrongArtifact(t *testing.T) {
	chain := testchain.New(31337)
	owner := datagen.DevAccounts()[0]

	_, err := deploy.Deploy(context.Background(), chain, transactor(t, owner), network.Localhost(),
		testchain.DAOArtifact(), testchain.DAOArtifact(), deploy.Options{})
	assert.ErrorContains(t, err, "deploy GrooveToken")
}

func TestDeployConfirmations(t *testing.T) {
	chain := testchain.New(31337)
	owner := datagen.DevAccounts()[0]

	var seen []uint64
	opts := deploy.Options{
		Confirmations: 2,
		PollInterval:  time.Millisecond,
		Progress: func(name string, confirmed, want uint64) {
			assert.Equal(t, uint64(2), want)
			seen = append(seen, confirmed)
			chain.Mine(1)
		},
	}
	_, err := deploy.Deploy(context.Background(), chain, transactor(t, owner), network.Localhost(),
		testchain.TokenArtifact(), testchain.DAOArtifact(), opts)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2, 0, 1, 2}, seen)
}

func TestAddressesWriteFile(t *testing.T) {
	addrs := &deploy.Addresses{
		Network:     "localhost",
		GrooveToken: datagen.RandAddress(),
		PlaylistDAO: datagen.RandAddress(),
	}
	path := filepath.Join(t.TempDir(), "localhost.yaml")
	require.NoError(t, addrs.WriteFile(path))

	net, err := network.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), net.ChainID)
	assert.Equal(t, addrs.GrooveToken, *net.GrooveToken)
	assert.Equal(t, addrs.PlaylistDAO, *net.PlaylistDAO)
}
