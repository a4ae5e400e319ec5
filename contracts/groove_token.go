// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// GrooveToken is a type-safe wrapper of the GROOVE ERC20 token.
type GrooveToken struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewGrooveToken binds the token deployed at address.
func NewGrooveToken(address common.Address, backend bind.ContractBackend) *GrooveToken {
	return &GrooveToken{
		address:  address,
		contract: bind.NewBoundContract(address, GrooveTokenABI.ABI, backend, backend, backend),
	}
}

// DeployGrooveToken sends the creation transaction for the token. The returned
// token is usable once the transaction is mined.
func DeployGrooveToken(opts *bind.TransactOpts, backend bind.ContractBackend, artifact *Artifact) (*GrooveToken, *types.Transaction, error) {
	if err := artifact.Implements(&GrooveTokenABI); err != nil {
		return nil, nil, err
	}
	addr, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, backend)
	if err != nil {
		return nil, nil, err
	}
	return NewGrooveToken(addr, backend), tx, nil
}

// Address returns the token address.
func (g *GrooveToken) Address() common.Address {
	return g.address
}

// Name returns the name of the token
func (g *GrooveToken) Name(opts *bind.CallOpts) (string, error) {
	var out []any
	if err := g.contract.Call(opts, &out, "name"); err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// Symbol returns the symbol of the token
func (g *GrooveToken) Symbol(opts *bind.CallOpts) (string, error) {
	var out []any
	if err := g.contract.Call(opts, &out, "symbol"); err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// Decimals returns the number of decimals the token uses
func (g *GrooveToken) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []any
	if err := g.contract.Call(opts, &out, "decimals"); err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

// TotalSupply returns the total token supply
func (g *GrooveToken) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	return g.callBig(opts, "totalSupply")
}

// BalanceOf returns the token balance of the specified address
func (g *GrooveToken) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return g.callBig(opts, "balanceOf", account)
}

// Mint creates amount new tokens for to. Only the token owner may mint.
func (g *GrooveToken) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return g.contract.Transact(opts, "mint", to, amount)
}

func (g *GrooveToken) callBig(opts *bind.CallOpts, method string, args ...any) (*big.Int, error) {
	var out []any
	if err := g.contract.Call(opts, &out, method, args...); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
