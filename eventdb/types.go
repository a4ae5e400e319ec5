// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/soundsage/soundsage/contracts"
)

// ProposalEvent is an indexed ProposalCreated log.
type ProposalEvent struct {
	BlockNumber uint64         `json:"blockNumber"`
	LogIndex    uint           `json:"logIndex"`
	TxHash      common.Hash    `json:"txHash"`
	ProposalID  *big.Int       `json:"proposalId"`
	Proposer    common.Address `json:"proposer"`
	Title       string         `json:"title"`
	Artist      string         `json:"artist"`
	SongLink    string         `json:"songLink"`
}

// NewProposalEvent converts a decoded ProposalCreated log.
func NewProposalEvent(ev *contracts.ProposalCreated) *ProposalEvent {
	return &ProposalEvent{
		BlockNumber: ev.Raw.BlockNumber,
		LogIndex:    ev.Raw.Index,
		TxHash:      ev.Raw.TxHash,
		ProposalID:  ev.Id,
		Proposer:    ev.Proposer,
		Title:       ev.Title,
		Artist:      ev.Artist,
		SongLink:    ev.SongLink,
	}
}

// VoteEvent is an indexed Voted log.
type VoteEvent struct {
	BlockNumber uint64         `json:"blockNumber"`
	LogIndex    uint           `json:"logIndex"`
	TxHash      common.Hash    `json:"txHash"`
	ProposalID  *big.Int       `json:"proposalId"`
	Voter       common.Address `json:"voter"`
}

// NewVoteEvent converts a decoded Voted log.
func NewVoteEvent(ev *contracts.Voted) *VoteEvent {
	return &VoteEvent{
		BlockNumber: ev.Raw.BlockNumber,
		LogIndex:    ev.Raw.Index,
		TxHash:      ev.Raw.TxHash,
		ProposalID:  ev.ProposalId,
		Voter:       ev.Voter,
	}
}

// Order of query results.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Options page query results.
type Options struct {
	Offset uint64
	Limit  uint64
	Order  Order
}
