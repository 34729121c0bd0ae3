package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/simplicity-wallet/simplicityw/internal/core/application"
)

var getbalance = cli.Command{
	Name:   "getbalance",
	Usage:  "show the per-asset balances from the local ledger",
	Action: getBalanceAction,
}

func getBalanceAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	balances, err := svc.GetBalance(context.Background())
	if err != nil {
		return err
	}

	printBalances(balances)
	return nil
}

func printBalances(balances map[string]application.BalanceInfo) {
	if len(balances) <= 0 {
		fmt.Println("no funds")
		return
	}

	assets := make([]string, 0, len(balances))
	for asset := range balances {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	for _, asset := range assets {
		info := balances[asset]
		fmt.Printf(
			"%s\tspendable %s\tlocked %s\n",
			asset,
			decimal.New(int64(info.Spendable), -8).String(),
			decimal.New(int64(info.Locked), -8).String(),
		)
	}
}
