// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/soundsage/soundsage/units"
)

func mintAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	amount, err := units.ParseEther(ctx.String(amountFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "amount")
	}
	to, err := parseAddressFlag(ctx, toFlag.Name)
	if err != nil {
		return err
	}

	client, closeClient, err := newClient(goCtx, ctx, true)
	if err != nil {
		return err
	}
	defer closeClient()

	recipient := client.Account()
	if to != nil {
		recipient = *to
	}
	balance, err := client.Mint(goCtx, recipient, amount)
	if err != nil {
		return err
	}
	fmt.Printf("Minted %s GROOVE tokens to %s\n", units.FormatEther(amount), recipient.Hex())
	fmt.Printf("New balance: %s GROOVE\n", balance)
	return nil
}

func balanceAction(ctx *cli.Context) error {
	initLogger(ctx)
	goCtx := handleExitSignal()

	account, err := parseAddressFlag(ctx, accountFlag.Name)
	if err != nil {
		return err
	}
	client, closeClient, err := newClient(goCtx, ctx, account == nil)
	if err != nil {
		return err
	}
	defer closeClient()

	if account == nil {
		addr := client.Account()
		account = &addr
	}
	balance, err := client.GrooveBalance(goCtx, *account)
	if err != nil {
		return err
	}
	fmt.Printf("%s GROOVE (%s)\n", balance, account.Hex())
	return nil
}
