// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Proposal mirrors the PlaylistDAO.Proposal struct. Field names follow the
// ABI component names, which is what the decoder matches on.
type Proposal struct {
	Id        *big.Int //nolint:revive
	Proposer  common.Address
	Title     string
	Artist    string
	SongLink  string
	VoteCount *big.Int
}

// ProposalCreated is the ProposalCreated event.
type ProposalCreated struct {
	Id       *big.Int //nolint:revive
	Proposer common.Address
	Title    string
	Artist   string
	SongLink string
	Raw      types.Log
}

// Voted is the Voted event.
type Voted struct {
	ProposalId *big.Int //nolint:revive
	Voter      common.Address
	Raw        types.Log
}

// PlaylistDAO is a type-safe wrapper of the song proposal voting contract.
type PlaylistDAO struct {
	address  common.Address
	contract *bind.BoundContract
	filterer bind.ContractFilterer
}

// NewPlaylistDAO binds the DAO deployed at address.
func NewPlaylistDAO(address common.Address, backend bind.ContractBackend) *PlaylistDAO {
	return &PlaylistDAO{
		address:  address,
		contract: bind.NewBoundContract(address, PlaylistDAOABI.ABI, backend, backend, backend),
		filterer: backend,
	}
}

// DeployPlaylistDAO sends the creation transaction for a DAO voting with token.
func DeployPlaylistDAO(opts *bind.TransactOpts, backend bind.ContractBackend, artifact *Artifact, token common.Address) (*PlaylistDAO, *types.Transaction, error) {
	if err := artifact.Implements(&PlaylistDAOABI); err != nil {
		return nil, nil, err
	}
	addr, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, backend, token)
	if err != nil {
		return nil, nil, err
	}
	return NewPlaylistDAO(addr, backend), tx, nil
}

// Address returns the DAO address.
func (d *PlaylistDAO) Address() common.Address {
	return d.address
}

// CreateProposal submits a new song proposal.
func (d *PlaylistDAO) CreateProposal(opts *bind.TransactOpts, title, artist, songLink string) (*types.Transaction, error) {
	return d.contract.Transact(opts, "createProposal", title, artist, songLink)
}

// Vote casts the sender's vote for a proposal.
func (d *PlaylistDAO) Vote(opts *bind.TransactOpts, proposalID *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "vote", proposalID)
}

// GetAllProposals returns every proposal in creation order.
func (d *PlaylistDAO) GetAllProposals(opts *bind.CallOpts) ([]Proposal, error) {
	var out []any
	if err := d.contract.Call(opts, &out, "getAllProposals"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]Proposal)).(*[]Proposal), nil
}

// ProposalCount returns the number of proposals created so far.
func (d *PlaylistDAO) ProposalCount(opts *bind.CallOpts) (*big.Int, error) {
	var out []any
	if err := d.contract.Call(opts, &out, "proposalCount"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// EventIDs returns the topic0 of the events the DAO emits.
func (d *PlaylistDAO) EventIDs() []common.Hash {
	return []common.Hash{
		PlaylistDAOABI.ABI.Events["ProposalCreated"].ID,
		PlaylistDAOABI.ABI.Events["Voted"].ID,
	}
}

// FilterLogs returns the raw DAO logs in [from, to]. A nil to means latest.
func (d *PlaylistDAO) FilterLogs(ctx context.Context, from uint64, to *uint64) ([]types.Log, error) {
	q := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		Addresses: []common.Address{d.address},
		Topics:    [][]common.Hash{d.EventIDs()},
	}
	if to != nil {
		q.ToBlock = new(big.Int).SetUint64(*to)
	}
	return d.filterer.FilterLogs(ctx, q)
}

// FilterProposalCreated returns the ProposalCreated events in [from, to].
func (d *PlaylistDAO) FilterProposalCreated(ctx context.Context, from uint64, to *uint64) ([]*ProposalCreated, error) {
	logs, err := d.FilterLogs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var events []*ProposalCreated
	for _, l := range logs {
		if ev, err := d.ParseProposalCreated(l); err == nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

// FilterVoted returns the Voted events in [from, to].
func (d *PlaylistDAO) FilterVoted(ctx context.Context, from uint64, to *uint64) ([]*Voted, error) {
	logs, err := d.FilterLogs(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var events []*Voted
	for _, l := range logs {
		if ev, err := d.ParseVoted(l); err == nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

// ParseProposalCreated decodes a ProposalCreated log.
func (d *PlaylistDAO) ParseProposalCreated(l types.Log) (*ProposalCreated, error) {
	ev := new(ProposalCreated)
	if err := d.unpackLog(ev, "ProposalCreated", l); err != nil {
		return nil, err
	}
	ev.Raw = l
	return ev, nil
}

// ParseVoted decodes a Voted log.
func (d *PlaylistDAO) ParseVoted(l types.Log) (*Voted, error) {
	ev := new(Voted)
	if err := d.unpackLog(ev, "Voted", l); err != nil {
		return nil, err
	}
	ev.Raw = l
	return ev, nil
}

func (d *PlaylistDAO) unpackLog(out any, event string, l types.Log) error {
	if l.Address != d.address {
		return errors.Errorf("log emitted by %s, not the DAO", l.Address.Hex())
	}
	return d.contract.UnpackLog(out, event, l)
}
