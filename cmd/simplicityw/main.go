package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/simplicity-wallet/simplicityw/config"
	"github.com/simplicity-wallet/simplicityw/internal/core/application"
	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
	dbbadger "github.com/simplicity-wallet/simplicityw/internal/infrastructure/storage/badger"
	dbfile "github.com/simplicity-wallet/simplicityw/internal/infrastructure/storage/file"
	"github.com/simplicity-wallet/simplicityw/internal/infrastructure/storage/inmemory"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "simplicityw"
	app.Usage = "command line wallet for Simplicity descriptors on Elements chains"
	app.Commands = append(
		app.Commands,
		&newWallet,
		&getnewaddress,
		&getbalance,
		&getfunds,
		&sendtoaddress,
		&setfee,
		&setrpc,
		&setnetwork,
	)

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

type stateStore interface {
	WalletRepository() domain.WalletRepository
	UtxoRepository() domain.UtxoRepository
	Close() error
}

func getWalletService() (application.WalletService, func(), error) {
	datadir, err := config.GetDatadir()
	if err != nil {
		return nil, nil, err
	}

	var store stateStore
	switch config.GetString(config.DbTypeKey) {
	case config.DbTypeBadger:
		store, err = dbbadger.NewStateStore(datadir, nil)
	case config.DbTypeInMemory:
		store = inmemory.NewStateStore()
	default:
		store, err = dbfile.NewStateStore(datadir)
	}
	if err != nil {
		return nil, nil, err
	}

	svc := application.NewWalletService(
		store.WalletRepository(),
		store.UtxoRepository(),
		config.GetExplorer,
		config.GetString(config.NetworkKey),
		config.GetString(config.RPCEndpointKey),
		config.GetUint(config.FeeMsatsPerByteKey),
		config.GetUint(config.DustThresholdKey),
		config.GetUint(config.PendingExpiryBlocksKey),
		config.GetInt(config.EntropySizeKey),
	)
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warnf("closing state store: %s", err)
		}
	}
	return svc, cleanup, nil
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[simplicityw] %v\n", err)
	os.Exit(1)
}
