package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var getfunds = cli.Command{
	Name:   "getfunds",
	Usage:  "refresh the ledger against the node, then show the balances",
	Action: getFundsAction,
}

func getFundsAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	balances, err := svc.GetFunds(context.Background())
	if err != nil {
		return err
	}

	printBalances(balances)
	return nil
}
