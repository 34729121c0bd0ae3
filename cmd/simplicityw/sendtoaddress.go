package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var sendtoaddress = cli.Command{
	Name:      "sendtoaddress",
	Usage:     "send an amount of the policy asset to an address",
	ArgsUsage: "<address> <amount>",
	Action:    sendToAddressAction,
}

func sendToAddressAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("sendtoaddress requires <address> <amount>")
	}
	addr := ctx.Args().Get(0)

	amount, err := parseAmount(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	txid, err := svc.SendToAddress(context.Background(), addr, amount)
	if err != nil {
		return err
	}

	fmt.Println(txid)
	return nil
}

// parseAmount converts a decimal amount in wallet units to satoshis.
func parseAmount(arg string) (uint64, error) {
	amount, err := decimal.NewFromString(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}

	sats := amount.Mul(decimal.New(1, 8))
	if sats.Exponent() < 0 {
		return 0, fmt.Errorf("amount %q has more than 8 decimal places", arg)
	}
	if sats.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return uint64(sats.IntPart()), nil
}
