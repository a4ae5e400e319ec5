// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsage/soundsage/contracts"
	"github.com/soundsage/soundsage/test/datagen"
	"github.com/soundsage/soundsage/test/testchain"
)

const chainID = 31337

type fixture struct {
	chain *testchain.Chain
	owner datagen.DevAccount
	token *contracts.GrooveToken
	dao   *contracts.PlaylistDAO
}

func newFixture(t *testing.T) *fixture {
	chain := testchain.New(chainID)
	owner := datagen.DevAccounts()[0]
	tokenAddr, daoAddr := chain.Install(owner.Address)
	return &fixture{
		chain: chain,
		owner: owner,
		token: contracts.NewGrooveToken(tokenAddr, chain),
		dao:   contracts.NewPlaylistDAO(daoAddr, chain),
	}
}

func (f *fixture) opts(t *testing.T, acc datagen.DevAccount) *bind.TransactOpts {
	opts, err := bind.NewKeyedTransactorWithChainID(acc.PrivateKey, big.NewInt(chainID))
	require.NoError(t, err)
	opts.Context = context.Background()
	return opts
}

func (f *fixture) mined(t *testing.T, tx *types.Transaction) *types.Receipt {
	receipt, err := bind.WaitMined(context.Background(), f.chain, tx)
	require.NoError(t, err)
	return receipt
}

func TestEmbeddedABIs(t *testing.T) {
	assert.Contains(t, contracts.GrooveTokenABI.ABI.Methods, "mint")
	assert.Contains(t, contracts.GrooveTokenABI.ABI.Methods, "balanceOf")
	assert.Contains(t, contracts.PlaylistDAOABI.ABI.Methods, "getAllProposals")
	assert.Contains(t, contracts.PlaylistDAOABI.ABI.Events, "Voted")
	assert.NotEmpty(t, contracts.PlaylistDAOABI.RawABI())
}

func TestGrooveToken(t *testing.T) {
	f := newFixture(t)

	name, err := f.token.Name(nil)
	require.NoError(t, err)
	assert.Equal(t, "GrooveToken", name)

	symbol, err := f.token.Symbol(nil)
	require.NoError(t, err)
	assert.Equal(t, "GROOVE", symbol)

	decimals, err := f.token.Decimals(nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)

	amount := big.NewInt(1000)
	tx, err := f.token.Mint(f.opts(t, f.owner), f.owner.Address, amount)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, f.mined(t, tx).Status)

	balance, err := f.token.BalanceOf(nil, f.owner.Address)
	require.NoError(t, err)
	assert.Equal(t, amount, balance)

	supply, err := f.token.TotalSupply(nil)
	require.NoError(t, err)
	assert.Equal(t, amount, supply)
}

func TestMintOnlyOwner(t *testing.T) {
	f := newFixture(t)
	other := datagen.DevAccounts()[1]

	tx, err := f.token.Mint(f.opts(t, other), other.Address, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusFailed, f.mined(t, tx).Status)

	balance, err := f.token.BalanceOf(nil, other.Address)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())
}

func TestProposalsAndVotes(t *testing.T) {
	f := newFixture(t)
	voter := datagen.DevAccounts()[1]
	f.chain.Credit(voter.Address, big.NewInt(10))

	proposals, err := f.dao.GetAllProposals(nil)
	require.NoError(t, err)
	assert.Empty(t, proposals)

	tx, err := f.dao.CreateProposal(f.opts(t, f.owner), "Blue in Green", "Miles Davis", "https://example.com/song")
	require.NoError(t, err)
	created := f.mined(t, tx)
	require.Equal(t, types.ReceiptStatusSuccessful, created.Status)
	require.Len(t, created.Logs, 1)

	ev, err := f.dao.ParseProposalCreated(*created.Logs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(0), ev.Id.Int64())
	assert.Equal(t, f.owner.Address, ev.Proposer)
	assert.Equal(t, "Blue in Green", ev.Title)
	assert.Equal(t, "Miles Davis", ev.Artist)
	assert.Equal(t, "https://example.com/song", ev.SongLink)

	tx, err = f.dao.Vote(f.opts(t, voter), big.NewInt(0))
	require.NoError(t, err)
	voted := f.mined(t, tx)
	require.Equal(t, types.ReceiptStatusSuccessful, voted.Status)

	vev, err := f.dao.ParseVoted(*voted.Logs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(0), vev.ProposalId.Int64())
	assert.Equal(t, voter.Address, vev.Voter)

	proposals, err = f.dao.GetAllProposals(nil)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "Blue in Green", proposals[0].Title)
	assert.Equal(t, int64(1), proposals[0].VoteCount.Int64())

	count, err := f.dao.ProposalCount(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Int64())

	// a second vote by the same account reverts
	tx, err = f.dao.Vote(f.opts(t, voter), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusFailed, f.mined(t, tx).Status)
}

func TestFilterEvents(t *testing.T) {
	f := newFixture(t)
	f.chain.Credit(f.owner.Address, big.NewInt(1))

	for _, title := range []string{"a", "b"} {
		tx, err := f.dao.CreateProposal(f.opts(t, f.owner), title, "x", "https://example.com")
		require.NoError(t, err)
		f.mined(t, tx)
	}
	tx, err := f.dao.Vote(f.opts(t, f.owner), big.NewInt(1))
	require.NoError(t, err)
	f.mined(t, tx)

	created, err := f.dao.FilterProposalCreated(context.Background(), 0, nil)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "a", created[0].Title)
	assert.Equal(t, "b", created[1].Title)

	votes, err := f.dao.FilterVoted(context.Background(), 0, nil)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, int64(1), votes[0].ProposalId.Int64())

	head := created[0].Raw.BlockNumber
	upTo, err := f.dao.FilterProposalCreated(context.Background(), 0, &head)
	require.NoError(t, err)
	assert.Len(t, upTo, 1)
}

func TestParseForeignLog(t *testing.T) {
	f := newFixture(t)
	_, err := f.dao.ParseVoted(types.Log{
		Address: common.HexToAddress("0x01"),
		Topics:  f.dao.EventIDs()[1:],
	})
	assert.Error(t, err)
}

func TestNoCode(t *testing.T) {
	chain := testchain.New(chainID)
	dao := contracts.NewPlaylistDAO(datagen.RandAddress(), chain)
	_, err := dao.GetAllProposals(nil)
	assert.ErrorIs(t, err, bind.ErrNoCode)
}
