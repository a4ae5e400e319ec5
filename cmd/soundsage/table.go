// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/deploy"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/units"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	return table
}

func renderProposals(w io.Writer, proposals []dapp.Proposal) {
	table := newTable(w, "ID", "Title", "Artist", "Proposed by", "Votes", "Link")
	for _, p := range proposals {
		table.Append([]string{
			p.ID.String(),
			p.Title,
			p.Artist,
			units.ShortAddress(p.Proposer),
			p.VoteCount.String(),
			p.SongLink,
		})
	}
	table.Render()
}

func renderHistory(w io.Writer, events []*eventdb.ProposalEvent) {
	table := newTable(w, "Block", "ID", "Title", "Artist", "Proposed by", "Tx")
	for _, ev := range events {
		table.Append([]string{
			strconv.FormatUint(ev.BlockNumber, 10),
			ev.ProposalID.String(),
			ev.Title,
			ev.Artist,
			units.ShortAddress(ev.Proposer),
			ev.TxHash.Hex(),
		})
	}
	table.Render()
}

func renderDeployment(w io.Writer, out *deploy.Addresses) {
	table := newTable(w, "Contract", "Address", "Tx")
	table.Append([]string{"GrooveToken", out.GrooveToken.Hex(), out.TokenTx.Hex()})
	table.Append([]string{"PlaylistDAO", out.PlaylistDAO.Hex(), out.DAOTx.Hex()})
	table.Render()
}
