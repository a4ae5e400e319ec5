// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain is an in-memory stand-in for an Ethereum JSON-RPC endpoint
// running GrooveToken and PlaylistDAO. It implements the go-ethereum binding
// backends so the real client code can be exercised without a node.
package testchain

import (
	"bytes"
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/contracts"
	"github.com/soundsage/soundsage/network"
)

var (
	tokenCode = []byte("groove-token-creation-code")
	daoCode   = []byte("playlist-dao-creation-code")

	// ErrReverted is wrapped by every RevertError.
	ErrReverted = errors.New("execution reverted")

	gwei = big.NewInt(1_000_000_000)

	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	stringArgs     = abi.Arguments{{Type: mustType("string")}}
)

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// RevertError is returned the way a node reports a reverted call: the message
// carries the reason and the data is the hex encoded Error(string) payload.
type RevertError struct {
	Reason string
}

func revert(reason string) error {
	return &RevertError{Reason: reason}
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return ErrReverted.Error()
	}
	return ErrReverted.Error() + ": " + e.Reason
}

func (e *RevertError) ErrorData() any {
	if e.Reason == "" {
		return "0x"
	}
	packed, _ := stringArgs.Pack(e.Reason)
	return hexutil.Encode(append(append([]byte{}, revertSelector...), packed...))
}

func (e *RevertError) Unwrap() error { return ErrReverted }

// TokenArtifact returns a deployable GrooveToken artifact understood by Chain.
func TokenArtifact() *contracts.Artifact {
	return &contracts.Artifact{ContractName: "GrooveToken", ABI: contracts.GrooveTokenABI.ABI, Bytecode: tokenCode}
}

// DAOArtifact returns a deployable PlaylistDAO artifact understood by Chain.
func DAOArtifact() *contracts.Artifact {
	return &contracts.Artifact{ContractName: "PlaylistDAO", ABI: contracts.PlaylistDAOABI.ABI, Bytecode: daoCode}
}

// Chain is a single-node chain that mines every transaction in its own block.
type Chain struct {
	mu      sync.Mutex
	chainID *big.Int
	head    uint64

	nonces   map[common.Address]uint64
	code     map[common.Address][]byte
	receipts map[common.Hash]*types.Receipt
	logs     []types.Log

	token      common.Address
	tokenOwner common.Address
	balances   map[common.Address]*big.Int
	supply     *big.Int

	dao       common.Address
	proposals []contracts.Proposal
	voted     map[uint64]map[common.Address]bool

	calls   int
	failAll error
}

// New creates an empty chain with the given id.
func New(chainID uint64) *Chain {
	return &Chain{
		chainID:  new(big.Int).SetUint64(chainID),
		nonces:   make(map[common.Address]uint64),
		code:     make(map[common.Address][]byte),
		receipts: make(map[common.Hash]*types.Receipt),
		balances: make(map[common.Address]*big.Int),
		supply:   new(big.Int),
		voted:    make(map[uint64]map[common.Address]bool),
	}
}

// Install places both contracts on chain without transactions, owned by owner.
func (c *Chain) Install(owner common.Address) (token, dao common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = crypto.CreateAddress(owner, 1<<32)
	c.dao = crypto.CreateAddress(owner, 1<<32+1)
	c.tokenOwner = owner
	c.code[c.token] = tokenCode
	c.code[c.dao] = daoCode
	return c.token, c.dao
}

// Network returns the localhost network pointing at the contracts on this chain.
func (c *Chain) Network() *network.Network {
	c.mu.Lock()
	defer c.mu.Unlock()
	net := network.Localhost()
	net.ChainID = c.chainID.Uint64()
	return net.WithContracts(c.token, c.dao)
}

// Credit mints tokens to addr out of band.
func (c *Chain) Credit(addr common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mint(addr, amount)
}

// FailWith makes every RPC fail with err until it is called with nil.
func (c *Chain) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failAll = err
}

// Calls returns how many read calls have been served.
func (c *Chain) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Mine advances the head by n empty blocks.
func (c *Chain) Mine(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head += n
}

func (c *Chain) ChainID(context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return nil, c.failAll
	}
	return new(big.Int).Set(c.chainID), nil
}

func (c *Chain) BlockNumber(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return 0, c.failAll
	}
	return c.head, nil
}

func (c *Chain) CodeAt(_ context.Context, addr common.Address, _ *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return nil, c.failAll
	}
	return c.code[addr], nil
}

func (c *Chain) PendingCodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	return c.CodeAt(ctx, addr, nil)
}

func (c *Chain) PendingNonceAt(_ context.Context, addr common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[addr], nil
}

func (c *Chain) HeaderByNumber(_ context.Context, _ *big.Int) (*types.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return nil, c.failAll
	}
	return &types.Header{Number: new(big.Int).SetUint64(c.head), BaseFee: gwei, GasLimit: 30_000_000}, nil
}

func (c *Chain) SuggestGasPrice(context.Context) (*big.Int, error)  { return gwei, nil }
func (c *Chain) SuggestGasTipCap(context.Context) (*big.Int, error) { return gwei, nil }

// EstimateGas dry-runs the call and fails with a RevertError when the
// contracts would reject it, as a node does.
func (c *Chain) EstimateGas(_ context.Context, call ethereum.CallMsg) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return 0, c.failAll
	}
	if call.To == nil {
		if !bytes.HasPrefix(call.Data, tokenCode) && !bytes.HasPrefix(call.Data, daoCode) {
			return 0, revert("")
		}
		return 1_000_000, nil
	}
	if _, _, err := c.exec(call.From, *call.To, call.Data, true); err != nil {
		return 0, err
	}
	return 200_000, nil
}

func (c *Chain) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return nil, c.failAll
	}
	c.calls++
	if call.To == nil {
		return nil, errors.New("call without recipient")
	}
	out, _, err := c.exec(call.From, *call.To, call.Data, true)
	return out, err
}

func (c *Chain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return c.failAll
	}

	from, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return errors.Wrap(err, "invalid sender")
	}
	if tx.Nonce() != c.nonces[from] {
		return errors.Errorf("nonce too low: have %d, want %d", tx.Nonce(), c.nonces[from])
	}
	c.nonces[from]++
	c.head++

	receipt := &types.Receipt{
		Type:              tx.Type(),
		Status:            types.ReceiptStatusSuccessful,
		TxHash:            tx.Hash(),
		GasUsed:           21_000,
		CumulativeGasUsed: 21_000,
		BlockNumber:       new(big.Int).SetUint64(c.head),
	}

	if tx.To() == nil {
		addr := crypto.CreateAddress(from, tx.Nonce())
		switch {
		case bytes.HasPrefix(tx.Data(), tokenCode):
			c.token, c.tokenOwner = addr, from
			c.code[addr] = tokenCode
		case bytes.HasPrefix(tx.Data(), daoCode):
			c.dao = addr
			c.code[addr] = daoCode
		default:
			receipt.Status = types.ReceiptStatusFailed
		}
		if receipt.Status == types.ReceiptStatusSuccessful {
			receipt.ContractAddress = addr
		}
	} else {
		_, logs, err := c.exec(from, *tx.To(), tx.Data(), false)
		if err != nil {
			receipt.Status = types.ReceiptStatusFailed
		}
		for i := range logs {
			logs[i].TxHash = tx.Hash()
			logs[i].BlockNumber = c.head
			logs[i].Index = uint(len(c.logs))
			c.logs = append(c.logs, logs[i])
		}
		receipt.Logs = make([]*types.Log, len(logs))
		for i := range logs {
			receipt.Logs[i] = &logs[i]
		}
	}
	c.receipts[tx.Hash()] = receipt
	return nil
}

func (c *Chain) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return nil, c.failAll
	}
	r, ok := c.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (c *Chain) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll != nil {
		return nil, c.failAll
	}
	var out []types.Log
	for _, l := range c.logs {
		if q.FromBlock != nil && l.BlockNumber < q.FromBlock.Uint64() {
			continue
		}
		if q.ToBlock != nil && l.BlockNumber > q.ToBlock.Uint64() {
			continue
		}
		if len(q.Addresses) > 0 && !containsAddress(q.Addresses, l.Address) {
			continue
		}
		if len(q.Topics) > 0 && len(q.Topics[0]) > 0 && !containsHash(q.Topics[0], l.Topics[0]) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (c *Chain) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions not supported")
}

// exec runs a contract method. With readOnly set, writes are checked but
// leave no state change and no logs.
func (c *Chain) exec(from, to common.Address, data []byte, readOnly bool) ([]byte, []types.Log, error) {
	var parsed *abi.ABI
	switch to {
	case c.token:
		parsed = &contracts.GrooveTokenABI.ABI
	case c.dao:
		parsed = &contracts.PlaylistDAOABI.ABI
	default:
		// no code: empty result, as a real node returns
		return nil, nil, nil
	}
	if len(data) < 4 {
		return nil, nil, revert("")
	}
	method, err := parsed.MethodById(data[:4])
	if err != nil {
		return nil, nil, revert("")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, revert("")
	}

	var (
		result []any
		logs   []types.Log
	)
	switch method.Name {
	case "name":
		result = []any{"GrooveToken"}
	case "symbol":
		result = []any{"GROOVE"}
	case "decimals":
		result = []any{uint8(18)}
	case "totalSupply":
		result = []any{new(big.Int).Set(c.supply)}
	case "balanceOf":
		result = []any{c.balanceOf(args[0].(common.Address))}
	case "mint":
		if from != c.tokenOwner {
			return nil, nil, revert("Ownable: caller is not the owner")
		}
		if readOnly {
			break
		}
		c.mint(args[0].(common.Address), args[1].(*big.Int))
	case "proposalCount":
		result = []any{big.NewInt(int64(len(c.proposals)))}
	case "getAllProposals":
		all := make([]contracts.Proposal, len(c.proposals))
		for i, p := range c.proposals {
			all[i] = p
			all[i].Id = new(big.Int).Set(p.Id)
			all[i].VoteCount = new(big.Int).Set(p.VoteCount)
		}
		result = []any{all}
	case "createProposal":
		title, artist, link := args[0].(string), args[1].(string), args[2].(string)
		if title == "" || artist == "" || link == "" {
			return nil, nil, revert("Fields cannot be empty")
		}
		if readOnly {
			break
		}
		id := big.NewInt(int64(len(c.proposals)))
		c.proposals = append(c.proposals, contracts.Proposal{
			Id: id, Proposer: from, Title: title, Artist: artist, SongLink: link, VoteCount: new(big.Int),
		})
		ev := parsed.Events["ProposalCreated"]
		payload, err := ev.Inputs.NonIndexed().Pack(title, artist, link)
		if err != nil {
			return nil, nil, err
		}
		logs = append(logs, types.Log{
			Address: to,
			Topics:  []common.Hash{ev.ID, common.BigToHash(id), common.BytesToHash(from.Bytes())},
			Data:    payload,
		})
	case "vote":
		id := args[0].(*big.Int)
		if !id.IsUint64() || id.Uint64() >= uint64(len(c.proposals)) {
			return nil, nil, revert("Proposal does not exist")
		}
		if c.balanceOf(from).Sign() == 0 {
			return nil, nil, revert("Must hold GROOVE to vote")
		}
		if c.voted[id.Uint64()][from] {
			return nil, nil, revert("Already voted")
		}
		if readOnly {
			break
		}
		if c.voted[id.Uint64()] == nil {
			c.voted[id.Uint64()] = make(map[common.Address]bool)
		}
		c.voted[id.Uint64()][from] = true
		p := &c.proposals[id.Uint64()]
		p.VoteCount = new(big.Int).Add(p.VoteCount, common.Big1)
		ev := parsed.Events["Voted"]
		logs = append(logs, types.Log{
			Address: to,
			Topics:  []common.Hash{ev.ID, common.BigToHash(id), common.BytesToHash(from.Bytes())},
		})
	default:
		return nil, nil, revert("")
	}

	out, err := method.Outputs.Pack(result...)
	if err != nil {
		return nil, nil, err
	}
	return out, logs, nil
}

func (c *Chain) balanceOf(addr common.Address) *big.Int {
	if b, ok := c.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (c *Chain) mint(addr common.Address, amount *big.Int) {
	c.balances[addr] = new(big.Int).Add(c.balanceOf(addr), amount)
	c.supply.Add(c.supply, amount)
}

func containsAddress(list []common.Address, a common.Address) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func containsHash(list []common.Hash, h common.Hash) bool {
	for _, x := range list {
		if x == h {
			return true
		}
	}
	return false
}
