// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package watcher

import (
	"context"

	"github.com/soundsage/soundsage/eventdb"
)

// index copies the DAO logs up to head into the event db, in ranges of at most
// BlockRange blocks, committing the cursor with every range.
func (w *Watcher) index(ctx context.Context, head uint64) error {
	last, ok, err := w.db.LastBlock(ctx)
	if err != nil {
		return err
	}
	from := w.cfg.StartBlock
	if ok {
		from = last + 1
	}

	dao := w.client.DAO()
	for i := 0; i < w.cfg.MaxRangesPerPoll && from <= head; i++ {
		to := min(from+w.cfg.BlockRange-1, head)
		logs, err := dao.FilterLogs(ctx, from, &to)
		if err != nil {
			return err
		}

		batch := w.db.NewBatch()
		var created, voted int
		for _, l := range logs {
			if ev, err := dao.ParseProposalCreated(l); err == nil {
				batch.ProposalCreated(eventdb.NewProposalEvent(ev))
				created++
			} else if ev, err := dao.ParseVoted(l); err == nil {
				batch.Voted(eventdb.NewVoteEvent(ev))
				voted++
			} else {
				logger.Debug("skipping unknown log", "tx", l.TxHash, "index", l.Index)
			}
		}
		if err := batch.SetLastBlock(to).Write(ctx); err != nil {
			return err
		}
		if created+voted > 0 {
			logger.Debug("indexed events", "from", from, "to", to, "proposals", created, "votes", voted)
		}
		metricIndexedBlock().Set(int64(to))
		from = to + 1
	}
	return nil
}
