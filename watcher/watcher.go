// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package watcher polls the chain for the GROOVE balance and the proposal list,
// publishes snapshots to subscribers and keeps the event index in sync.
package watcher

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/soundsage/soundsage/cache"
	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/units"
)

var logger = log.WithContext("pkg", "watcher")

// DefaultInterval matches the refresh period of the web UI.
const DefaultInterval = 10 * time.Second

// Snapshot is the state shown to a user at one point in time.
type Snapshot struct {
	Account   common.Address  `json:"account"`
	Balance   string          `json:"balance"`
	Proposals []dapp.Proposal `json:"proposals"`
	Count     *big.Int        `json:"count"`
	Block     uint64          `json:"block"`
	At        time.Time       `json:"at"`
}

// SameState reports whether both snapshots show the same data, ignoring when
// they were taken.
func (s *Snapshot) SameState(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Account != o.Account || s.Balance != o.Balance || len(s.Proposals) != len(o.Proposals) {
		return false
	}
	if (s.Count == nil) != (o.Count == nil) || (s.Count != nil && s.Count.Cmp(o.Count) != 0) {
		return false
	}
	for i := range s.Proposals {
		if !s.Proposals[i].Equal(o.Proposals[i]) {
			return false
		}
	}
	return true
}

// Config tunes a Watcher.
type Config struct {
	Interval time.Duration
	// StartBlock is where indexing begins when the event db has no cursor yet.
	StartBlock uint64
	// BlockRange caps the span of a single log query.
	BlockRange uint64
	// MaxRangesPerPoll caps how many log queries one poll may issue while catching up.
	MaxRangesPerPoll int
	// BalanceTTL is how long balances of other accounts are cached.
	BalanceTTL       time.Duration
	BalanceCacheSize int
}

func (c *Config) setDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.BlockRange == 0 {
		c.BlockRange = 5000
	}
	if c.MaxRangesPerPoll <= 0 {
		c.MaxRangesPerPoll = 10
	}
	if c.BalanceTTL <= 0 {
		c.BalanceTTL = c.Interval
	}
	if c.BalanceCacheSize <= 0 {
		c.BalanceCacheSize = 256
	}
}

// Watcher polls a dapp.Client.
type Watcher struct {
	client   *dapp.Client
	db       *eventdb.EventDB
	cfg      Config
	balances *cache.LRU
	refresh  chan struct{}

	mu      sync.RWMutex
	latest  *Snapshot
	lastErr error
	subs    map[int]chan *Snapshot
	nextSub int
}

// New creates a watcher. db may be nil to disable event indexing.
func New(client *dapp.Client, db *eventdb.EventDB, cfg Config) (*Watcher, error) {
	cfg.setDefaults()
	balances, err := cache.NewLRU(cfg.BalanceCacheSize, cfg.BalanceTTL)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		client:   client,
		db:       db,
		cfg:      cfg,
		balances: balances,
		refresh:  make(chan struct{}, 1),
		subs:     make(map[int]chan *Snapshot),
	}, nil
}

// Client returns the polled client.
func (w *Watcher) Client() *dapp.Client { return w.client }

// EventDB returns the event index, nil if indexing is disabled.
func (w *Watcher) EventDB() *eventdb.EventDB { return w.db }

// Run polls until ctx is done. The first poll happens immediately.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	logger.Info("watching", "interval", w.cfg.Interval, "dao", w.client.DAO().Address())
	forced := false
	for {
		if _, err := w.poll(ctx, forced); err != nil && ctx.Err() == nil {
			logger.Warn("poll failed", "err", err)
		}
		forced = false
		select {
		case <-ctx.Done():
			w.closeSubs()
			return nil
		case <-ticker.C:
		case <-w.refresh:
			forced = true
			ticker.Reset(w.cfg.Interval)
		}
	}
}

// Refresh asks Run to poll now rather than at the next tick. The snapshot of
// that poll is published even when the state did not change.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Latest returns the last published snapshot, nil before the first successful poll.
func (w *Watcher) Latest() *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

// BlockNumber is the head block of the latest snapshot, 0 before the first poll.
func (w *Watcher) BlockNumber() uint64 {
	if snap := w.Latest(); snap != nil {
		return snap.Block
	}
	return 0
}

// Err returns the error of the last poll, nil if it succeeded.
func (w *Watcher) Err() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

// Subscribe returns a channel receiving every changed snapshot, starting with
// the latest one if any. A slow subscriber only sees the newest snapshot.
// The channel is closed by the returned cancel func or when Run exits.
func (w *Watcher) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	if w.latest != nil {
		ch <- w.latest
	}
	w.mu.Unlock()
	metricSubscribers().Add(1)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if _, ok := w.subs[id]; ok {
				delete(w.subs, id)
				close(ch)
				metricSubscribers().Add(-1)
			}
		})
	}
}

func (w *Watcher) closeSubs() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, ch := range w.subs {
		delete(w.subs, id)
		close(ch)
		metricSubscribers().Add(-1)
	}
}

// Poll fetches a snapshot, publishes it if it changed and indexes new events.
// A failure of either step is kept as the last error.
func (w *Watcher) Poll(ctx context.Context) (*Snapshot, error) {
	return w.poll(ctx, false)
}

func (w *Watcher) poll(ctx context.Context, force bool) (*Snapshot, error) {
	start := time.Now()
	snap, err := w.fetch(ctx)
	if err != nil {
		w.setErr(err)
		metricPollErrors().Add(1)
		return nil, err
	}
	metricPollDuration().Observe(time.Since(start).Milliseconds())
	metricProposals().Set(int64(len(snap.Proposals)))
	w.publish(snap, force)

	if w.db != nil {
		if err := w.index(ctx, snap.Block); err != nil {
			err = errors.WithMessage(err, "index events")
			w.setErr(err)
			metricPollErrors().Add(1)
			return snap, err
		}
	}
	w.setErr(nil)
	return snap, nil
}

func (w *Watcher) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastErr = err
}

func (w *Watcher) fetch(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Account: w.client.Account()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Balance, err = w.client.Balance(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.Proposals, err = w.client.Proposals(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.Count, err = w.client.ProposalCount(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.Block, err = w.client.Backend().BlockNumber(gctx)
		return errors.Wrap(err, "query head")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.At = time.Now()
	return snap, nil
}

func (w *Watcher) publish(snap *Snapshot, force bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !force && w.latest.SameState(snap) {
		w.latest = snap
		return
	}
	w.latest = snap
	logger.Debug("state changed", "proposals", len(snap.Proposals), "balance", snap.Balance, "block", snap.Block)
	for _, ch := range w.subs {
		// drop the stale snapshot a slow subscriber has not read yet
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// BalanceOf returns the GROOVE balance of account. The connected account is
// always read live, others go through the TTL cache.
func (w *Watcher) BalanceOf(ctx context.Context, account common.Address) (string, error) {
	if account == w.client.Account() {
		return w.client.GrooveBalance(ctx, account)
	}
	v, err := w.balances.GetOrLoad(account, func(any) (any, error) {
		return w.client.GrooveBalance(ctx, account)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ShortAccount is the abbreviated connected account, empty when read-only.
func (w *Watcher) ShortAccount() string {
	if !w.client.Connected() {
		return ""
	}
	return units.ShortAddress(w.client.Account())
}
