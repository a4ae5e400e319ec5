// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/eventdb"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/watcher"
)

func proposeAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	in := dapp.ProposalInput{
		Title:    ctx.String(titleFlag.Name),
		Artist:   ctx.String(artistFlag.Name),
		SongLink: ctx.String(linkFlag.Name),
	}.Normalize()
	// fail before dialing
	if err := in.Validate(); err != nil {
		return err
	}

	client, closeClient, err := newClient(goCtx, ctx, true)
	if err != nil {
		return err
	}
	defer closeClient()

	hash, err := client.CreateProposal(goCtx, in)
	if err != nil {
		return err
	}
	fmt.Println("Proposal submitted:", hash.Hex())
	if url := client.Network().TxURL(hash); url != "" {
		fmt.Println(url)
	}
	return nil
}

func voteAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	if ctx.NArg() != 1 {
		return errors.New("expected exactly one proposal id")
	}
	id, ok := new(big.Int).SetString(ctx.Args().First(), 10)
	if !ok || id.Sign() < 0 {
		return errors.Errorf("invalid proposal id %q", ctx.Args().First())
	}

	client, closeClient, err := newClient(goCtx, ctx, true)
	if err != nil {
		return err
	}
	defer closeClient()

	hash, err := client.Vote(goCtx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Voted for proposal %s: %s\n", id, hash.Hex())
	if url := client.Network().TxURL(hash); url != "" {
		fmt.Println(url)
	}
	return nil
}

func proposalsAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	client, closeClient, err := newClient(goCtx, ctx, false)
	if err != nil {
		return err
	}
	defer closeClient()

	proposals, err := client.Proposals(goCtx)
	if err != nil {
		return err
	}
	if len(proposals) == 0 {
		fmt.Println("No proposals yet. Be the first to propose a song!")
		return nil
	}
	renderProposals(os.Stdout, proposals)
	return nil
}

func countAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	client, closeClient, err := newClient(goCtx, ctx, false)
	if err != nil {
		return err
	}
	defer closeClient()

	count, err := client.ProposalCount(goCtx)
	if err != nil {
		return err
	}
	fmt.Println(count)
	return nil
}

func historyAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	proposer, err := parseAddressFlag(ctx, proposerFlag.Name)
	if err != nil {
		return err
	}
	client, closeClient, err := newClient(goCtx, ctx, false)
	if err != nil {
		return err
	}
	defer closeClient()

	db, err := openEventDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	start := ctx.Uint64(startBlockFlag.Name)
	w, err := watcher.New(client, db, watcher.Config{StartBlock: start})
	if err != nil {
		return err
	}
	if err := catchUp(goCtx, w, db, start); err != nil {
		return err
	}

	order := eventdb.ASC
	if ctx.Bool(descFlag.Name) {
		order = eventdb.DESC
	}
	events, err := db.Proposals(goCtx, proposer, &eventdb.Options{
		Offset: ctx.Uint64(offsetFlag.Name),
		Limit:  ctx.Uint64(limitFlag.Name),
		Order:  order,
	})
	if err != nil {
		return err
	}
	renderHistory(os.Stdout, events)
	return nil
}

// catchUp polls until the event index has reached the head seen by the poll.
func catchUp(ctx context.Context, w *watcher.Watcher, db *eventdb.EventDB, start uint64) error {
	for {
		snap, err := w.Poll(ctx)
		if err != nil {
			return err
		}
		last, ok, err := db.LastBlock(ctx)
		if err != nil {
			return err
		}
		if (ok && last >= snap.Block) || (!ok && start > snap.Block) {
			return nil
		}
		log.Info("indexing events", "block", last, "head", snap.Block)
	}
}
