// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dapp is the SoundSage client: it reads the GROOVE balance and the
// PlaylistDAO proposals, and submits proposals and votes for the connected wallet.
package dapp

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/contracts"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/network"
	"github.com/soundsage/soundsage/units"
	"github.com/soundsage/soundsage/wallet"
)

var logger = log.WithContext("pkg", "dapp")

// DefaultTxTimeout bounds how long a write waits for its receipt.
const DefaultTxTimeout = 2 * time.Minute

var (
	// ErrNotConnected is returned by writes on a client without a wallet.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrNoContracts is returned when the network has no contract addresses.
	ErrNoContracts = errors.New("contract addresses not configured")
	// ErrReverted is returned when the contracts reject a write, either during
	// gas estimation or as a failed receipt.
	ErrReverted = errors.New("transaction reverted")
)

// Backend is everything the client needs from a JSON-RPC endpoint.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Client talks to the GrooveToken and PlaylistDAO of one network.
type Client struct {
	backend   Backend
	net       *network.Network
	wallet    *wallet.Wallet
	token     *contracts.GrooveToken
	dao       *contracts.PlaylistDAO
	txTimeout time.Duration

	sendMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithTxTimeout overrides DefaultTxTimeout.
func WithTxTimeout(d time.Duration) Option {
	return func(c *Client) { c.txTimeout = d }
}

// New creates a client. A nil wallet gives a read-only client.
func New(backend Backend, net *network.Network, w *wallet.Wallet, opts ...Option) (*Client, error) {
	if net.GrooveToken == nil || net.PlaylistDAO == nil {
		return nil, errors.WithMessagef(ErrNoContracts, "network %s", net.Name)
	}
	c := &Client{
		backend:   backend,
		net:       net,
		wallet:    w,
		token:     contracts.NewGrooveToken(*net.GrooveToken, backend),
		dao:       contracts.NewPlaylistDAO(*net.PlaylistDAO, backend),
		txTimeout: DefaultTxTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Connect verifies that the endpoint is on the configured chain and that the
// DAO is deployed there.
func (c *Client) Connect(ctx context.Context) error {
	if err := wallet.EnsureChain(ctx, c.backend, c.net); err != nil {
		return err
	}
	code, err := c.backend.CodeAt(ctx, c.dao.Address(), nil)
	if err != nil {
		return errors.Wrap(err, "query PlaylistDAO code")
	}
	if len(code) == 0 {
		return errors.WithMessagef(ErrNoContracts, "no PlaylistDAO code at %s", c.dao.Address().Hex())
	}
	logger.Info("connected", "network", c.net.Name, "account", c.Account(), "dao", c.dao.Address())
	return nil
}

// Network returns the network the client is bound to.
func (c *Client) Network() *network.Network { return c.net }

// Backend returns the underlying RPC backend.
func (c *Client) Backend() Backend { return c.backend }

// DAO returns the bound PlaylistDAO.
func (c *Client) DAO() *contracts.PlaylistDAO { return c.dao }

// Token returns the bound GrooveToken.
func (c *Client) Token() *contracts.GrooveToken { return c.token }

// Connected reports whether the client can send transactions.
func (c *Client) Connected() bool { return c.wallet != nil }

// Account returns the connected account, or the zero address.
func (c *Client) Account() common.Address {
	if c.wallet == nil {
		return common.Address{}
	}
	return c.wallet.Address()
}

// GrooveBalanceOf returns the raw GROOVE balance of account.
func (c *Client) GrooveBalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := c.call("balanceOf", func(opts *bind.CallOpts) (err error) {
		opts.Context = ctx
		balance, err = c.token.BalanceOf(opts, account)
		return err
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to fetch GROOVE balance")
	}
	return balance, nil
}

// GrooveBalance returns the GROOVE balance of account formatted with 18 decimals.
func (c *Client) GrooveBalance(ctx context.Context, account common.Address) (string, error) {
	balance, err := c.GrooveBalanceOf(ctx, account)
	if err != nil {
		return "", err
	}
	return units.FormatEther(balance), nil
}

// Balance returns the connected account's GROOVE balance, "0" when no wallet is connected.
func (c *Client) Balance(ctx context.Context) (string, error) {
	if c.wallet == nil {
		return "0", nil
	}
	return c.GrooveBalance(ctx, c.wallet.Address())
}

// Proposals returns every proposal in creation order. The result is never nil.
func (c *Client) Proposals(ctx context.Context) ([]Proposal, error) {
	var raw []contracts.Proposal
	err := c.call("getAllProposals", func(opts *bind.CallOpts) (err error) {
		opts.Context = ctx
		raw, err = c.dao.GetAllProposals(opts)
		return err
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to fetch proposals")
	}
	proposals := make([]Proposal, 0, len(raw))
	for _, p := range raw {
		proposals = append(proposals, newProposal(p))
	}
	return proposals, nil
}

// ProposalCount returns the number of proposals.
func (c *Client) ProposalCount(ctx context.Context) (*big.Int, error) {
	var count *big.Int
	err := c.call("proposalCount", func(opts *bind.CallOpts) (err error) {
		opts.Context = ctx
		count, err = c.dao.ProposalCount(opts)
		return err
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to fetch proposal count")
	}
	return count, nil
}

// CreateProposal validates and submits a proposal, waits for it to be mined
// and returns the transaction hash.
func (c *Client) CreateProposal(ctx context.Context, in ProposalInput) (common.Hash, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return common.Hash{}, err
	}
	receipt, err := c.send(ctx, "createProposal", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.dao.CreateProposal(opts, in.Title, in.Artist, in.SongLink)
	})
	if err != nil {
		return common.Hash{}, errors.WithMessage(err, "failed to create proposal")
	}
	logger.Info("proposal created", "title", in.Title, "artist", in.Artist, "tx", receipt.TxHash)
	return receipt.TxHash, nil
}

// Vote votes for the proposal with the given id and waits for it to be mined.
func (c *Client) Vote(ctx context.Context, id *big.Int) (common.Hash, error) {
	if id == nil || id.Sign() < 0 {
		return common.Hash{}, &ValidationError{Field: "id", Reason: "must be a non-negative integer"}
	}
	receipt, err := c.send(ctx, "vote", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.dao.Vote(opts, id)
	})
	if err != nil {
		return common.Hash{}, errors.WithMessage(err, "failed to vote on proposal")
	}
	logger.Info("voted", "proposal", id, "tx", receipt.TxHash)
	return receipt.TxHash, nil
}

// Mint mints amount GROOVE (in wei units) to to and returns to's new balance.
// Only the token owner can mint.
func (c *Client) Mint(ctx context.Context, to common.Address, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	receipt, err := c.send(ctx, "mint", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return c.token.Mint(opts, to, amount)
	})
	if err != nil {
		return "", errors.WithMessage(err, "failed to mint GROOVE")
	}
	logger.Info("minted", "to", to, "amount", units.FormatEther(amount), "tx", receipt.TxHash)
	return c.GrooveBalance(ctx, to)
}

func (c *Client) call(method string, fn func(*bind.CallOpts) error) error {
	start := time.Now()
	err := fn(&bind.CallOpts{})
	status := "ok"
	if err != nil {
		status = "error"
		logger.Debug("contract call failed", "method", method, "err", err)
	}
	metricCallCount().AddWithLabel(1, map[string]string{"method": method, "status": status})
	metricCallDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"method": method})
	return err
}

// send signs and submits a transaction and waits for a successful receipt.
// Sends are serialized so consecutive writes get consecutive nonces.
func (c *Client) send(ctx context.Context, method string, fn func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	if c.wallet == nil {
		return nil, ErrNotConnected
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	opts, err := c.wallet.TransactOpts(ctx, c.net.ChainIDBig())
	if err != nil {
		return nil, err
	}
	tx, err := fn(opts)
	if err != nil {
		if rev, ok := asRevert(err); ok {
			metricTxCount().AddWithLabel(1, map[string]string{"method": method, "status": "reverted"})
			logger.Debug("transaction rejected", "method", method, "reason", rev.Reason)
			return nil, rev
		}
		metricTxCount().AddWithLabel(1, map[string]string{"method": method, "status": "rejected"})
		return nil, err
	}
	logger.Debug("transaction sent", "method", method, "tx", tx.Hash(), "nonce", tx.Nonce())

	waitCtx, cancel := context.WithTimeout(ctx, c.txTimeout)
	defer cancel()
	start := time.Now()
	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		metricTxCount().AddWithLabel(1, map[string]string{"method": method, "status": "timeout"})
		return nil, errors.Wrapf(err, "wait for %s", tx.Hash().Hex())
	}
	metricTxWait().Observe(time.Since(start).Milliseconds())
	if receipt.Status != types.ReceiptStatusSuccessful {
		metricTxCount().AddWithLabel(1, map[string]string{"method": method, "status": "reverted"})
		return receipt, errors.WithMessagef(&RevertError{}, "tx %s", tx.Hash().Hex())
	}
	metricTxCount().AddWithLabel(1, map[string]string{"method": method, "status": "ok"})
	return receipt, nil
}
