// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb indexes PlaylistDAO events in sqlite so vote history can be
// queried without scanning the chain.
package eventdb

import (
	"context"
	"database/sql"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/log"
)

var logger = log.WithContext("pkg", "eventdb")

const syncCursor = "lastBlock"

type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens an event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// an in-memory database lives as long as its connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(proposalTableSchema + voteTableSchema + cursorTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", driverVer)
	return &EventDB{path, db, driverVer}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// NewBatch starts collecting events to be written in one transaction.
func (db *EventDB) NewBatch() *Batch {
	return &Batch{db: db.db}
}

// InsertProposalCreated stores a single ProposalCreated event.
func (db *EventDB) InsertProposalCreated(ctx context.Context, ev *ProposalEvent) error {
	return db.NewBatch().ProposalCreated(ev).Write(ctx)
}

// InsertVoted stores a single Voted event.
func (db *EventDB) InsertVoted(ctx context.Context, ev *VoteEvent) error {
	return db.NewBatch().Voted(ev).Write(ctx)
}

// LastBlock returns the last fully indexed block. ok is false before the first sync.
func (db *EventDB) LastBlock(ctx context.Context) (n uint64, ok bool, err error) {
	err = db.db.QueryRowContext(ctx, "SELECT value FROM sync_cursor WHERE name = ?", syncCursor).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// SetLastBlock moves the sync cursor.
func (db *EventDB) SetLastBlock(ctx context.Context, n uint64) error {
	_, err := db.db.ExecContext(ctx, setCursorStmt, syncCursor, n)
	return err
}

const setCursorStmt = "INSERT OR REPLACE INTO sync_cursor(name, value) VALUES (?, ?)"

// Votes returns the votes cast for a proposal, oldest first.
func (db *EventDB) Votes(ctx context.Context, proposalID *big.Int) ([]*VoteEvent, error) {
	return db.queryVotes(ctx,
		"SELECT blockNumber, logIndex, txHash, proposalID, voter FROM vote_event WHERE proposalID = ? ORDER BY blockNumber ASC, logIndex ASC",
		common.BigToHash(proposalID).Bytes())
}

// VotesBy returns the votes cast by voter, oldest first.
func (db *EventDB) VotesBy(ctx context.Context, voter common.Address) ([]*VoteEvent, error) {
	return db.queryVotes(ctx,
		"SELECT blockNumber, logIndex, txHash, proposalID, voter FROM vote_event WHERE voter = ? ORDER BY blockNumber ASC, logIndex ASC",
		voter.Bytes())
}

// Proposals returns indexed ProposalCreated events. A nil proposer matches all.
func (db *EventDB) Proposals(ctx context.Context, proposer *common.Address, opts *Options) ([]*ProposalEvent, error) {
	var args []any
	stmt := "SELECT blockNumber, logIndex, txHash, proposalID, proposer, title, artist, songLink FROM proposal_event WHERE 1"
	if proposer != nil {
		stmt += " AND proposer = ?"
		args = append(args, proposer.Bytes())
	}
	if opts != nil && opts.Order == DESC {
		stmt += " ORDER BY blockNumber DESC, logIndex DESC"
	} else {
		stmt += " ORDER BY blockNumber ASC, logIndex ASC"
	}
	if opts != nil && (opts.Limit > 0 || opts.Offset > 0) {
		// a negative LIMIT is unbounded in sqlite
		limit := int64(-1)
		if opts.Limit > 0 && opts.Limit <= math.MaxInt64 {
			limit = int64(opts.Limit)
		}
		stmt += " LIMIT ? OFFSET ?"
		args = append(args, limit, opts.Offset)
	}

	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*ProposalEvent, 0)
	for rows.Next() {
		var (
			ev                      ProposalEvent
			txHash, id, proposerRaw []byte
		)
		if err := rows.Scan(&ev.BlockNumber, &ev.LogIndex, &txHash, &id, &proposerRaw, &ev.Title, &ev.Artist, &ev.SongLink); err != nil {
			return nil, err
		}
		ev.TxHash = common.BytesToHash(txHash)
		ev.ProposalID = new(big.Int).SetBytes(id)
		ev.Proposer = common.BytesToAddress(proposerRaw)
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (db *EventDB) queryVotes(ctx context.Context, stmt string, args ...any) ([]*VoteEvent, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*VoteEvent, 0)
	for rows.Next() {
		var (
			ev                   VoteEvent
			txHash, id, voterRaw []byte
		)
		if err := rows.Scan(&ev.BlockNumber, &ev.LogIndex, &txHash, &id, &voterRaw); err != nil {
			return nil, err
		}
		ev.TxHash = common.BytesToHash(txHash)
		ev.ProposalID = new(big.Int).SetBytes(id)
		ev.Voter = common.BytesToAddress(voterRaw)
		events = append(events, &ev)
	}
	return events, rows.Err()
}

// Batch collects events for one atomic write.
type Batch struct {
	db        *sql.DB
	proposals []*ProposalEvent
	votes     []*VoteEvent
	lastBlock *uint64
}

func (b *Batch) ProposalCreated(ev *ProposalEvent) *Batch {
	b.proposals = append(b.proposals, ev)
	return b
}

func (b *Batch) Voted(ev *VoteEvent) *Batch {
	b.votes = append(b.votes, ev)
	return b
}

// SetLastBlock moves the sync cursor together with the batched events.
func (b *Batch) SetLastBlock(n uint64) *Batch {
	b.lastBlock = &n
	return b
}

// Write commits the batch. Re-inserting an event at the same position is a no-op.
func (b *Batch) Write(ctx context.Context) (err error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, ev := range b.proposals {
		if _, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO proposal_event(blockNumber, logIndex, txHash, proposalID, proposer, title, artist, songLink) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			ev.BlockNumber, ev.LogIndex, ev.TxHash.Bytes(), common.BigToHash(ev.ProposalID).Bytes(), ev.Proposer.Bytes(),
			ev.Title, ev.Artist, ev.SongLink); err != nil {
			return errors.Wrap(err, "insert proposal event")
		}
	}
	for _, ev := range b.votes {
		if _, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO vote_event(blockNumber, logIndex, txHash, proposalID, voter) VALUES (?, ?, ?, ?, ?)",
			ev.BlockNumber, ev.LogIndex, ev.TxHash.Bytes(), common.BigToHash(ev.ProposalID).Bytes(), ev.Voter.Bytes()); err != nil {
			return errors.Wrap(err, "insert vote event")
		}
	}
	if b.lastBlock != nil {
		if _, err = tx.ExecContext(ctx, setCursorStmt, syncCursor, *b.lastBlock); err != nil {
			return errors.Wrap(err, "set cursor")
		}
	}
	return tx.Commit()
}
