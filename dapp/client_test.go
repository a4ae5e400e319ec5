// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dapp_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/network"
	"github.com/soundsage/soundsage/test/datagen"
	"github.com/soundsage/soundsage/test/testchain"
	"github.com/soundsage/soundsage/units"
	"github.com/soundsage/soundsage/wallet"
)

func newClient(t *testing.T, chain *testchain.Chain, acc *datagen.DevAccount) *dapp.Client {
	var w *wallet.Wallet
	if acc != nil {
		w = wallet.New(acc.PrivateKey)
	}
	client, err := dapp.New(chain, chain.Network(), w, dapp.WithTxTimeout(5*time.Second))
	require.NoError(t, err)
	return client
}

func setup(t *testing.T) (*testchain.Chain, datagen.DevAccount) {
	chain := testchain.New(31337)
	owner := datagen.DevAccounts()[0]
	chain.Install(owner.Address)
	return chain, owner
}

func TestNewRequiresContracts(t *testing.T) {
	_, err := dapp.New(testchain.New(31337), network.Localhost(), nil)
	assert.ErrorIs(t, err, dapp.ErrNoContracts)
}

func TestConnect(t *testing.T) {
	chain, owner := setup(t)
	client := newClient(t, chain, &owner)
	require.NoError(t, client.Connect(context.Background()))
	assert.True(t, client.Connected())
	assert.Equal(t, owner.Address, client.Account())

	// wrong chain
	other := testchain.New(1)
	other.Install(owner.Address)
	wrong, err := dapp.New(other, chain.Network(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, wrong.Connect(context.Background()), wallet.ErrChainMismatch)

	// right chain, nothing deployed
	empty := testchain.New(31337)
	undeployed, err := dapp.New(empty, chain.Network(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, undeployed.Connect(context.Background()), dapp.ErrNoContracts)
}

func TestReadOnlyClient(t *testing.T) {
	chain, _ := setup(t)
	client := newClient(t, chain, nil)
	ctx := context.Background()

	assert.False(t, client.Connected())
	assert.Zero(t, client.Account())

	balance, err := client.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0", balance)

	proposals, err := client.Proposals(ctx)
	require.NoError(t, err)
	assert.NotNil(t, proposals)
	assert.Empty(t, proposals)

	_, err = client.CreateProposal(ctx, dapp.ProposalInput{Title: "t", Artist: "a", SongLink: "https://x.io"})
	assert.ErrorIs(t, err, dapp.ErrNotConnected)

	_, err = client.Vote(ctx, big.NewInt(0))
	assert.ErrorIs(t, err, dapp.ErrNotConnected)
}

func TestMintAndBalance(t *testing.T) {
	chain, owner := setup(t)
	client := newClient(t, chain, &owner)
	ctx := context.Background()

	amount, err := units.ParseEther("1000")
	require.NoError(t, err)
	balance, err := client.Mint(ctx, owner.Address, amount)
	require.NoError(t, err)
	assert.Equal(t, "1000.0", balance)

	balance, err = client.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000.0", balance)

	_, err = client.Mint(ctx, owner.Address, big.NewInt(0))
	assert.True(t, dapp.IsValidationError(err))

	stranger := datagen.DevAccounts()[2]
	_, err = newClient(t, chain, &stranger).Mint(ctx, stranger.Address, amount)
	assert.ErrorIs(t, err, dapp.ErrReverted)
	assert.Contains(t, err.Error(), "failed to mint GROOVE")
	assert.Contains(t, err.Error(), "caller is not the owner")
}

func TestVoteTwiceIsRejected(t *testing.T) {
	chain, owner := setup(t)
	voter := datagen.DevAccounts()[1]
	chain.Credit(voter.Address, big.NewInt(1))
	ctx := context.Background()

	_, err := newClient(t, chain, &owner).CreateProposal(ctx, dapp.ProposalInput{
		Title: "Blue in Green", Artist: "Bill Evans", SongLink: "https://example.com/blue",
	})
	require.NoError(t, err)

	client := newClient(t, chain, &voter)
	_, err = client.Vote(ctx, big.NewInt(0))
	require.NoError(t, err)
	nonce, err := chain.PendingNonceAt(ctx, voter.Address)
	require.NoError(t, err)

	_, err = client.Vote(ctx, big.NewInt(0))
	require.ErrorIs(t, err, dapp.ErrReverted)
	var rev *dapp.RevertError
	require.True(t, errors.As(err, &rev))
	assert.Equal(t, "Already voted", rev.Reason)

	// rejected while estimating gas, so nothing was sent
	after, err := chain.PendingNonceAt(ctx, voter.Address)
	require.NoError(t, err)
	assert.Equal(t, nonce, after)

	_, err = client.Vote(ctx, big.NewInt(7))
	require.ErrorIs(t, err, dapp.ErrReverted)
	assert.Contains(t, err.Error(), "Proposal does not exist")

	proposals := mustProposals(t, client)
	require.Len(t, proposals, 1)
	assert.Equal(t, int64(1), proposals[0].VoteCount.Int64())
}

func TestProposeAndVote(t *testing.T) {
	chain, owner := setup(t)
	voter := datagen.DevAccounts()[1]
	chain.Credit(voter.Address, big.NewInt(1))
	ctx := context.Background()

	proposer := newClient(t, chain, &owner)
	hash, err := proposer.CreateProposal(ctx, dapp.ProposalInput{
		Title:    "  So What ",
		Artist:   "Miles Davis",
		SongLink: "https://example.com/so-what",
	})
	require.NoError(t, err)
	assert.NotZero(t, hash)

	count, err := proposer.ProposalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Int64())

	_, err = newClient(t, chain, &voter).Vote(ctx, big.NewInt(0))
	require.NoError(t, err)

	proposals, err := proposer.Proposals(ctx)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "So What", proposals[0].Title)
	assert.Equal(t, owner.Address, proposals[0].Proposer)
	assert.Equal(t, int64(1), proposals[0].VoteCount.Int64())

	// the proposer holds no GROOVE, so the contract rejects the vote
	_, err = proposer.Vote(ctx, big.NewInt(0))
	assert.ErrorIs(t, err, dapp.ErrReverted)
	assert.Contains(t, err.Error(), "failed to vote on proposal")
	assert.Contains(t, err.Error(), "Must hold GROOVE to vote")

	_, err = proposer.Vote(ctx, big.NewInt(-1))
	assert.True(t, dapp.IsValidationError(err))
}

func TestCreateProposalValidation(t *testing.T) {
	chain, owner := setup(t)
	client := newClient(t, chain, &owner)

	for _, in := range []dapp.ProposalInput{
		{Artist: "a", SongLink: "https://x.io"},
		{Title: "t", SongLink: "https://x.io"},
		{Title: "t", Artist: "a"},
		{Title: "t", Artist: "a", SongLink: "x.io/song"},
		{Title: "t", Artist: "a", SongLink: "ftp://x.io/song"},
	} {
		_, err := client.CreateProposal(context.Background(), in)
		assert.True(t, dapp.IsValidationError(err), "%+v", in)
	}
	assert.Zero(t, len(mustProposals(t, client)))
}

func TestRPCFailure(t *testing.T) {
	chain, owner := setup(t)
	client := newClient(t, chain, &owner)
	chain.FailWith(errors.New("connection refused"))

	_, err := client.Proposals(context.Background())
	assert.EqualError(t, err, "failed to fetch proposals: connection refused")

	_, err = client.GrooveBalance(context.Background(), owner.Address)
	assert.EqualError(t, err, "failed to fetch GROOVE balance: connection refused")

	_, err = client.ProposalCount(context.Background())
	assert.EqualError(t, err, "failed to fetch proposal count: connection refused")
}

func mustProposals(t *testing.T, c *dapp.Client) []dapp.Proposal {
	proposals, err := c.Proposals(context.Background())
	require.NoError(t, err)
	return proposals
}

func TestProposalEqual(t *testing.T) {
	a := dapp.Proposal{ID: big.NewInt(1), Title: "x", VoteCount: big.NewInt(0)}
	b := dapp.Proposal{ID: big.NewInt(1), Title: "x"}
	assert.True(t, a.Equal(b))
	b.VoteCount = big.NewInt(2)
	assert.False(t, a.Equal(b))
}
