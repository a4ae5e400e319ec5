// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/network"
)

// ErrChainMismatch is returned when the endpoint serves a different chain than configured.
var ErrChainMismatch = errors.New("chain id mismatch")

// ChainIDReader is the part of an RPC client needed to identify the chain.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// MismatchError carries both chain ids. It unwraps to ErrChainMismatch.
type MismatchError struct {
	Want *big.Int
	Got  *big.Int
	Net  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: endpoint is on chain %d (0x%x), %s is %d (0x%x)",
		ErrChainMismatch, e.Got, e.Got, e.Net, e.Want, e.Want)
}

func (e *MismatchError) Unwrap() error { return ErrChainMismatch }

// EnsureChain checks that the endpoint serves the configured network. This is the
// non-interactive form of asking a browser wallet to switch (or add) the chain:
// there is nothing to switch, so a mismatch is reported instead.
func EnsureChain(ctx context.Context, backend ChainIDReader, net *network.Network) error {
	got, err := backend.ChainID(ctx)
	if err != nil {
		return errors.Wrap(err, "query chain id")
	}
	want := net.ChainIDBig()
	if got.Cmp(want) != 0 {
		return &MismatchError{Want: want, Got: got, Net: net.Name}
	}
	logger.Debug("chain verified", "network", net.Name, "chainId", net.HexChainID())
	return nil
}
