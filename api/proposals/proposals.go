// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proposals

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/api/utils"
	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/watcher"
)

// maxHistoryLimit bounds a single page of indexed proposals.
const maxHistoryLimit = 256

// TxResponse is returned by every write.
type TxResponse struct {
	TxHash common.Hash `json:"txHash"`
	TxURL  string      `json:"txUrl,omitempty"`
}

type CountResponse struct {
	Count *big.Int `json:"count"`
}

type Proposals struct {
	watcher *watcher.Watcher
}

func New(w *watcher.Watcher) *Proposals {
	return &Proposals{watcher: w}
}

func (p *Proposals) handleGetProposals(w http.ResponseWriter, req *http.Request) error {
	list, err := p.watcher.Client().Proposals(req.Context())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, list)
}

func (p *Proposals) handleGetCount(w http.ResponseWriter, req *http.Request) error {
	count, err := p.watcher.Client().ProposalCount(req.Context())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &CountResponse{Count: count})
}

func (p *Proposals) handleGetHistory(w http.ResponseWriter, req *http.Request) error {
	db := p.watcher.EventDB()
	if db == nil {
		return utils.NotFound(errors.New("event index disabled"))
	}
	q := req.URL.Query()

	opts := &eventdb.Options{Order: eventdb.ASC}
	switch order := q.Get("order"); order {
	case "", string(eventdb.ASC):
	case string(eventdb.DESC):
		opts.Order = eventdb.DESC
	default:
		return utils.BadRequest(errors.Errorf("order: invalid %q", order))
	}
	var err error
	if opts.Offset, err = parseUint(q.Get("offset"), 0); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "offset"))
	}
	if opts.Limit, err = parseUint(q.Get("limit"), maxHistoryLimit); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "limit"))
	}
	if opts.Limit == 0 {
		return utils.BadRequest(errors.New("limit: must be positive"))
	}
	if opts.Limit > maxHistoryLimit {
		return utils.BadRequest(errors.Errorf("limit: exceeds %d", maxHistoryLimit))
	}

	var proposer *common.Address
	if s := q.Get("proposer"); s != "" {
		if !common.IsHexAddress(s) {
			return utils.BadRequest(errors.Errorf("proposer: invalid %q", s))
		}
		addr := common.HexToAddress(s)
		proposer = &addr
	}

	events, err := db.Proposals(req.Context(), proposer, opts)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, events)
}

func (p *Proposals) handleGetVotes(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	db := p.watcher.EventDB()
	if db == nil {
		return utils.NotFound(errors.New("event index disabled"))
	}
	votes, err := db.Votes(req.Context(), id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, votes)
}

func (p *Proposals) handleCreateProposal(w http.ResponseWriter, req *http.Request) error {
	var in dapp.ProposalInput
	if err := utils.ParseJSON(req.Body, &in); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	hash, err := p.watcher.Client().CreateProposal(req.Context(), in)
	if err != nil {
		return writeError(err)
	}
	p.watcher.Refresh()
	return p.writeTx(w, hash)
}

func (p *Proposals) handleVote(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	hash, err := p.watcher.Client().Vote(req.Context(), id)
	if err != nil {
		return writeError(err)
	}
	p.watcher.Refresh()
	return p.writeTx(w, hash)
}

func (p *Proposals) writeTx(w http.ResponseWriter, hash common.Hash) error {
	return utils.WriteJSON(w, &TxResponse{
		TxHash: hash,
		TxURL:  p.watcher.Client().Network().TxURL(hash),
	})
}

// writeError maps client write errors to a status code.
func writeError(err error) error {
	switch {
	case dapp.IsValidationError(err):
		return utils.BadRequest(err)
	case errors.Is(err, dapp.ErrNotConnected):
		return utils.Forbidden(err)
	case errors.Is(err, dapp.ErrReverted):
		return utils.HTTPError(err, http.StatusConflict)
	default:
		return err
	}
}

func parseID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		return nil, utils.BadRequest(errors.Errorf("id: invalid %q", s))
	}
	return id, nil
}

func parseUint(s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func (p *Proposals) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("proposals_list").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetProposals))
	sub.Path("").
		Methods(http.MethodPost).
		Name("proposals_create").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCreateProposal))
	sub.Path("/count").
		Methods(http.MethodGet).
		Name("proposals_count").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetCount))
	sub.Path("/history").
		Methods(http.MethodGet).
		Name("proposals_history").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetHistory))
	sub.Path("/{id}/votes").
		Methods(http.MethodGet).
		Name("proposals_get_votes").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetVotes))
	sub.Path("/{id}/vote").
		Methods(http.MethodPost).
		Name("proposals_vote").
		HandlerFunc(utils.WrapHandlerFunc(p.handleVote))
}
