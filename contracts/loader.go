// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package contracts binds the GrooveToken and PlaylistDAO contracts.
package contracts

import (
	"bytes"
	"embed"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

//go:embed compiled/*.abi
var compiled embed.FS

// all info about a contract ABI.
type contract struct {
	ABI    abi.ABI
	rawABI []byte
}

// RawABI returns the JSON ABI the contract was loaded from.
func (c *contract) RawABI() []byte {
	return c.rawABI
}

// load contract ABI from the embedded assets.
// panic if failed.
func mustLoad(asset string) contract {
	data, err := compiled.ReadFile("compiled/" + asset)
	if err != nil {
		panic(errors.Wrap(err, "read ABI asset"))
	}
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "load ABI"))
	}
	return contract{parsed, data}
}

var (
	// GrooveTokenABI describes the GROOVE ERC20 token, including its owner-only mint.
	GrooveTokenABI = mustLoad("GrooveToken.abi")
	// PlaylistDAOABI describes the song proposal voting contract.
	PlaylistDAOABI = mustLoad("PlaylistDAO.abi")
)
