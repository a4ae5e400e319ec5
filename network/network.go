// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package network describes the chains SoundSage can talk to and where the
// GrooveToken and PlaylistDAO contracts live on each of them.
package network

import (
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Currency is the native currency of a chain.
type Currency struct {
	Name     string `yaml:"name" json:"name"`
	Symbol   string `yaml:"symbol" json:"symbol"`
	Decimals uint8  `yaml:"decimals" json:"decimals"`
}

// Network holds the connection parameters of a chain and the deployed contract addresses.
type Network struct {
	Name        string          `yaml:"name" json:"name"`
	ChainID     uint64          `yaml:"chainId" json:"chainId"`
	RPCURL      string          `yaml:"rpcUrl" json:"rpcUrl"`
	ExplorerURL string          `yaml:"explorerUrl,omitempty" json:"explorerUrl,omitempty"`
	Currency    Currency        `yaml:"currency" json:"currency"`
	GrooveToken *common.Address `yaml:"grooveToken,omitempty" json:"grooveToken,omitempty"`
	PlaylistDAO *common.Address `yaml:"playlistDao,omitempty" json:"playlistDao,omitempty"`
}

var (
	sepoliaToken = common.HexToAddress("0x2c1D0ae11C69Bfe1689266A31fF05F835B9D0250")
	sepoliaDAO   = common.HexToAddress("0x1781ccEdD68b3E72990b81668975f66C69cAC31A")

	presets = map[string]func() *Network{
		"sepolia":   Sepolia,
		"localhost": Localhost,
	}
)

// Sepolia returns the Sepolia testnet, where the public GROOVE deployment lives.
func Sepolia() *Network {
	token, dao := sepoliaToken, sepoliaDAO
	return &Network{
		Name:        "sepolia",
		ChainID:     11155111,
		RPCURL:      "https://sepolia.infura.io/v3/",
		ExplorerURL: "https://sepolia.etherscan.io/",
		Currency:    Currency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		GrooveToken: &token,
		PlaylistDAO: &dao,
	}
}

// Localhost returns a local hardhat node. Contract addresses are only known after deploying.
func Localhost() *Network {
	return &Network{
		Name:     "localhost",
		ChainID:  31337,
		RPCURL:   "http://127.0.0.1:8545",
		Currency: Currency{Name: "Ether", Symbol: "ETH", Decimals: 18},
	}
}

// Presets lists the names of the built-in networks.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves nameOrPath to a built-in network or, failing that, a YAML network file.
func Select(nameOrPath string) (*Network, error) {
	if nameOrPath == "" {
		return Sepolia(), nil
	}
	if preset, ok := presets[strings.ToLower(nameOrPath)]; ok {
		return preset(), nil
	}
	n, err := Load(nameOrPath)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Errorf("unknown network %q (want one of %s or a network file)",
				nameOrPath, strings.Join(Presets(), "|"))
		}
		return nil, err
	}
	return n, nil
}

// Load reads a network from a YAML file. Missing fields are inherited from the
// preset named by the file's name field, so a file may only override addresses.
func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read network file")
	}
	return Parse(data)
}

// Parse decodes a YAML network description.
func Parse(data []byte) (*Network, error) {
	var head struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "decode network")
	}

	n := &Network{}
	if preset, ok := presets[strings.ToLower(head.Name)]; ok {
		n = preset()
	}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, errors.Wrap(err, "decode network")
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks that the network can be dialed.
func (n *Network) Validate() error {
	switch {
	case n.Name == "":
		return errors.New("network: name is required")
	case n.ChainID == 0:
		return errors.New("network: chainId is required")
	case n.RPCURL == "":
		return errors.New("network: rpcUrl is required")
	}
	return nil
}

// ChainIDBig returns the chain id as a big integer, as expected by signers.
func (n *Network) ChainIDBig() *big.Int {
	return new(big.Int).SetUint64(n.ChainID)
}

// HexChainID returns the chain id in the 0x-prefixed form wallets use, e.g. 0xaa36a7.
func (n *Network) HexChainID() string {
	return "0x" + strconv.FormatUint(n.ChainID, 16)
}

// WithContracts returns a copy of n pointing at the given deployment.
func (n *Network) WithContracts(token, dao common.Address) *Network {
	cpy := *n
	cpy.GrooveToken, cpy.PlaylistDAO = &token, &dao
	return &cpy
}

// TxURL links a transaction on the block explorer, or returns "" without one.
func (n *Network) TxURL(hash common.Hash) string {
	return n.explorerLink("tx", hash.Hex())
}

// AddressURL links an address on the block explorer, or returns "" without one.
func (n *Network) AddressURL(addr common.Address) string {
	return n.explorerLink("address", addr.Hex())
}

func (n *Network) explorerLink(kind, id string) string {
	if n.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(n.ExplorerURL, "/") + "/" + kind + "/" + id
}

// Marshal encodes the network as YAML.
func (n *Network) Marshal() ([]byte, error) {
	return yaml.Marshal(n)
}
