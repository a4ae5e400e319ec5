// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package network

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/network"
)

// Head reports the latest block seen. *watcher.Watcher satisfies it through
// its snapshots.
type Head interface {
	BlockNumber() uint64
}

// Info is the network a server is attached to.
type Info struct {
	Name        string           `json:"name"`
	ChainID     uint64           `json:"chainId"`
	HexChainID  string           `json:"hexChainId"`
	ExplorerURL string           `json:"explorerUrl,omitempty"`
	Currency    network.Currency `json:"currency"`
	GrooveToken *common.Address  `json:"grooveToken"`
	PlaylistDAO *common.Address  `json:"playlistDao"`
	Block       uint64           `json:"block"`
}

type Network struct {
	net  *network.Network
	head Head
}

func New(net *network.Network, head Head) *Network {
	return &Network{net: net, head: head}
}

func (n *Network) handleGetNetwork(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &Info{
		Name:        n.net.Name,
		ChainID:     n.net.ChainID,
		HexChainID:  n.net.HexChainID(),
		ExplorerURL: n.net.ExplorerURL,
		Currency:    n.net.Currency,
		GrooveToken: n.net.GrooveToken,
		PlaylistDAO: n.net.PlaylistDAO,
		Block:       n.head.BlockNumber(),
	})
}

func (n *Network) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("network_get").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetNetwork))
}
