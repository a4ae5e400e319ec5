// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dapp

import (
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/contracts"
)

// Proposal is a song proposal as shown to users.
type Proposal struct {
	ID        *big.Int       `json:"id"`
	Proposer  common.Address `json:"proposer"`
	Title     string         `json:"title"`
	Artist    string         `json:"artist"`
	SongLink  string         `json:"songLink"`
	VoteCount *big.Int       `json:"voteCount"`
}

func newProposal(p contracts.Proposal) Proposal {
	return Proposal{
		ID:        bigOrZero(p.Id),
		Proposer:  p.Proposer,
		Title:     p.Title,
		Artist:    p.Artist,
		SongLink:  p.SongLink,
		VoteCount: bigOrZero(p.VoteCount),
	}
}

// Equal reports whether both proposals hold the same values.
func (p Proposal) Equal(o Proposal) bool {
	return bigOrZero(p.ID).Cmp(bigOrZero(o.ID)) == 0 &&
		p.Proposer == o.Proposer &&
		p.Title == o.Title &&
		p.Artist == o.Artist &&
		p.SongLink == o.SongLink &&
		bigOrZero(p.VoteCount).Cmp(bigOrZero(o.VoteCount)) == 0
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// ProposalInput is what a user fills in to propose a song.
type ProposalInput struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	SongLink string `json:"songLink"`
}

// Normalize trims surrounding whitespace from every field.
func (in ProposalInput) Normalize() ProposalInput {
	return ProposalInput{
		Title:    strings.TrimSpace(in.Title),
		Artist:   strings.TrimSpace(in.Artist),
		SongLink: strings.TrimSpace(in.SongLink),
	}
}

// Validate checks that every field is set and that the song link is an
// absolute http(s) URL.
func (in ProposalInput) Validate() error {
	switch {
	case in.Title == "":
		return &ValidationError{Field: "title", Reason: "is required"}
	case in.Artist == "":
		return &ValidationError{Field: "artist", Reason: "is required"}
	case in.SongLink == "":
		return &ValidationError{Field: "songLink", Reason: "is required"}
	}
	u, err := url.Parse(in.SongLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "songLink", Reason: "must be an http(s) URL"}
	}
	return nil
}

// ValidationError reports a rejected user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IsValidationError reports whether err, or an error it wraps, is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RevertError is a write the contracts rejected. Reason is empty when the
// node gave none.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return ErrReverted.Error()
	}
	return fmt.Sprintf("%s: %s", ErrReverted.Error(), e.Reason)
}

func (e *RevertError) Unwrap() error { return ErrReverted }

// asRevert recognizes a revert reported while estimating or sending a
// transaction, either as Error(string) data or as an "execution reverted" message.
func asRevert(err error) (*RevertError, bool) {
	var de rpc.DataError
	if errors.As(err, &de) {
		if data, ok := de.ErrorData().(string); ok {
			if raw, err := hexutil.Decode(data); err == nil {
				if reason, err := abi.UnpackRevert(raw); err == nil {
					return &RevertError{Reason: reason}, true
				}
			}
		}
	}
	msg := err.Error()
	i := strings.Index(msg, executionReverted)
	if i < 0 {
		return nil, false
	}
	reason := strings.TrimPrefix(msg[i+len(executionReverted):], ":")
	return &RevertError{Reason: strings.TrimSpace(reason)}, true
}

const executionReverted = "execution reverted"
