package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"
)

var setnetwork = cli.Command{
	Name:      "setnetwork",
	Usage:     "set the network the wallet operates on",
	ArgsUsage: "<regtest|testnet>",
	Action:    setNetworkAction,
}

func setNetworkAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("setnetwork requires the network name")
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	return svc.UpdateNetwork(context.Background(), ctx.Args().First())
}
