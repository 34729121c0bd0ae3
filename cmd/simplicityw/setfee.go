package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/urfave/cli/v2"
)

var setfee = cli.Command{
	Name:      "setfee",
	Usage:     "set the fee rate in millisatoshis per virtual byte",
	ArgsUsage: "<msats_per_vbyte>",
	Action:    setFeeAction,
}

func setFeeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("setfee requires <msats_per_vbyte>")
	}
	rate, err := strconv.ParseUint(ctx.Args().First(), 10, 64)
	if err != nil {
		return errors.New("fee rate must be a positive integer")
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	return svc.UpdateFeeRate(context.Background(), rate)
}
