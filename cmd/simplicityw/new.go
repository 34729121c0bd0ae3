package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var newWallet = cli.Command{
	Name:   "new",
	Usage:  "initialize a new wallet, printing its mnemonic once",
	Action: newWalletAction,
}

func newWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	mnemonic, err := svc.InitWallet(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("write down the mnemonic, it is shown only now:")
	fmt.Println()
	fmt.Println(strings.Join(mnemonic, " "))

	return nil
}
