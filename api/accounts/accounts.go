// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/watcher"
)

// Account is the connected account of the server.
type Account struct {
	Connected bool            `json:"connected"`
	Address   *common.Address `json:"address"`
	Short     string          `json:"short,omitempty"`
	Balance   string          `json:"balance"`
}

// Balance is the GROOVE balance of an address, in whole tokens.
type Balance struct {
	Address common.Address `json:"address"`
	Balance string         `json:"balance"`
}

type Accounts struct {
	watcher *watcher.Watcher
}

func New(w *watcher.Watcher) *Accounts {
	return &Accounts{watcher: w}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	client := a.watcher.Client()
	if !client.Connected() {
		return utils.WriteJSON(w, &Account{Balance: "0"})
	}
	addr := client.Account()
	balance, err := a.watcher.BalanceOf(req.Context(), addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Connected: true,
		Address:   &addr,
		Short:     a.watcher.ShortAccount(),
		Balance:   balance,
	})
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	balance, err := a.watcher.BalanceOf(req.Context(), addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Address: addr, Balance: balance})
}

func (a *Accounts) handleGetVotes(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	db := a.watcher.EventDB()
	if db == nil {
		return utils.NotFound(errors.New("event index disabled"))
	}
	votes, err := db.VotesBy(req.Context(), addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, votes)
}

// handleGetProposals lists the proposals an address created, newest first.
func (a *Accounts) handleGetProposals(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	db := a.watcher.EventDB()
	if db == nil {
		return utils.NotFound(errors.New("event index disabled"))
	}
	events, err := db.Proposals(req.Context(), &addr, &eventdb.Options{Order: eventdb.DESC})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, events)
}

// ConnectedHandler serves the connected account outside the /accounts prefix.
func (a *Accounts) ConnectedHandler() http.HandlerFunc {
	return utils.WrapHandlerFunc(a.handleGetAccount)
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, utils.BadRequest(errors.Errorf("address: invalid %q", s))
	}
	return common.HexToAddress(s), nil
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("accounts_get_connected").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/balance").
		Methods(http.MethodGet).
		Name("accounts_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalance))
	sub.Path("/{address}/votes").
		Methods(http.MethodGet).
		Name("accounts_get_votes").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetVotes))
	sub.Path("/{address}/proposals").
		Methods(http.MethodGet).
		Name("accounts_get_proposals").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetProposals))
}
