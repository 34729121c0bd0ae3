package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var getnewaddress = cli.Command{
	Name:   "getnewaddress",
	Usage:  "derive a never used receiving address",
	Action: getNewAddressAction,
}

func getNewAddressAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := svc.GetNewAddress(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(addr)
	return nil
}
