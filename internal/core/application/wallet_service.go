// Package application implements the wallet's use cases on top of the
// domain aggregates, the key derivation engine and the node client.
package application

import (
	"context"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/simplicity-wallet/simplicityw/internal/chain"
	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
	"github.com/simplicity-wallet/simplicityw/pkg/explorer"
	"github.com/simplicity-wallet/simplicityw/pkg/wallet"
)

// ExplorerFactory builds the node client for the given RPC endpoint. The
// endpoint lives in the wallet state, so the client is built lazily by the
// operations that talk to the node.
type ExplorerFactory func(rpcEndpoint string) (explorer.Service, error)

// BalanceInfo is the per-asset balance of the wallet, split between the
// spendable amount and the amount reserved by pending spends.
type BalanceInfo struct {
	Spendable uint64
	Locked    uint64
}

// WalletService exposes the wallet's operations. Every operation reads
// the current state from the repositories and commits any mutation
// durably before disclosing its effects.
type WalletService interface {
	// InitWallet creates the wallet with a freshly generated mnemonic and
	// returns it for the one-time backup prompt.
	InitWallet(ctx context.Context) ([]string, error)
	// GetNewAddress reserves the next derivation index, commits the bump
	// and only then returns the address derived from it.
	GetNewAddress(ctx context.Context) (string, error)
	// GetBalance returns the per-asset balances from the local ledger,
	// without hitting the node.
	GetBalance(ctx context.Context) (map[string]BalanceInfo, error)
	// GetFunds refreshes the ledger against the node's utxo set, then
	// returns the balances.
	GetFunds(ctx context.Context) (map[string]BalanceInfo, error)
	// SendToAddress builds, signs and broadcasts a transaction sending the
	// given amount of the policy asset to the given address. It returns
	// the txid of the broadcast transaction.
	SendToAddress(ctx context.Context, addr string, amount uint64) (string, error)
	// UpdateFeeRate changes the fee rate, in millisatoshis per virtual
	// byte, used by subsequent sends.
	UpdateFeeRate(ctx context.Context, millisatsPerByte uint64) error
	// UpdateRPCEndpoint changes the node endpoint used by subsequent
	// operations.
	UpdateRPCEndpoint(ctx context.Context, rpcEndpoint string) error
	// UpdateNetwork changes the network the wallet operates on.
	UpdateNetwork(ctx context.Context, networkName string) error
}

type walletService struct {
	walletRepository domain.WalletRepository
	utxoRepository   domain.UtxoRepository
	explorerFactory  ExplorerFactory

	network          string
	rpcEndpoint      string
	millisatsPerByte uint64
	dustThreshold    uint64
	lockExpiryBlocks uint64
	entropySize      int
}

// NewWalletService returns a WalletService over the given repositories.
// network, rpcEndpoint and millisatsPerByte seed the wallet created by
// InitWallet; afterwards the persisted values rule.
func NewWalletService(
	walletRepository domain.WalletRepository,
	utxoRepository domain.UtxoRepository,
	explorerFactory ExplorerFactory,
	network, rpcEndpoint string,
	millisatsPerByte, dustThreshold, lockExpiryBlocks uint64,
	entropySize int,
) WalletService {
	return &walletService{
		walletRepository: walletRepository,
		utxoRepository:   utxoRepository,
		explorerFactory:  explorerFactory,
		network:          network,
		rpcEndpoint:      rpcEndpoint,
		millisatsPerByte: millisatsPerByte,
		dustThreshold:    dustThreshold,
		lockExpiryBlocks: lockExpiryBlocks,
		entropySize:      entropySize,
	}
}

func (s *walletService) InitWallet(ctx context.Context) ([]string, error) {
	if _, err := chain.GetNetwork(s.network); err != nil {
		return nil, err
	}

	walletSvc, err := wallet.NewWallet(wallet.NewWalletOpts{
		EntropySize: s.entropySize,
	})
	if err != nil {
		return nil, err
	}
	mnemonic, err := walletSvc.SigningMnemonic()
	if err != nil {
		return nil, err
	}

	w, err := domain.NewWallet(
		mnemonic, s.millisatsPerByte, s.network, s.rpcEndpoint,
	)
	if err != nil {
		return nil, err
	}

	if err := s.walletRepository.CreateWallet(ctx, w); err != nil {
		return nil, err
	}

	log.Infof("wallet initialized on network %s", s.network)
	return mnemonic, nil
}

func (s *walletService) GetNewAddress(ctx context.Context) (string, error) {
	w, params, err := s.getWallet(ctx)
	if err != nil {
		return "", err
	}

	// the bump is committed before the address leaves the wallet, so a
	// crash in between burns the index instead of reusing it
	var index uint32
	if err := s.walletRepository.UpdateWallet(
		ctx,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			i, err := w.BumpIndex()
			if err != nil {
				return nil, err
			}
			index = i
			return w, nil
		},
	); err != nil {
		return "", err
	}

	walletSvc, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: w.Mnemonic,
	})
	if err != nil {
		return "", err
	}

	return walletSvc.DeriveTaprootAddress(wallet.DeriveTaprootAddressOpts{
		DerivationPath: w.DerivationPath(index),
		Network:        params.Net,
	})
}

func (s *walletService) GetBalance(
	ctx context.Context,
) (map[string]BalanceInfo, error) {
	if _, err := s.walletRepository.GetWallet(ctx); err != nil {
		return nil, err
	}
	return s.balances(ctx)
}

func (s *walletService) GetFunds(
	ctx context.Context,
) (map[string]BalanceInfo, error) {
	w, params, err := s.getWallet(ctx)
	if err != nil {
		return nil, err
	}

	explorerSvc, err := s.explorerFactory(w.RPCEndpoint)
	if err != nil {
		return nil, err
	}

	if _, err := s.refresh(ctx, w, params, explorerSvc); err != nil {
		return nil, err
	}
	return s.balances(ctx)
}

func (s *walletService) UpdateFeeRate(
	ctx context.Context, millisatsPerByte uint64,
) error {
	if millisatsPerByte == 0 {
		return wallet.ErrZeroFeeRate
	}
	return s.walletRepository.UpdateWallet(
		ctx,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.MillisatsPerByte = millisatsPerByte
			return w, nil
		},
	)
}

func (s *walletService) UpdateRPCEndpoint(
	ctx context.Context, rpcEndpoint string,
) error {
	if _, err := s.explorerFactory(rpcEndpoint); err != nil {
		return err
	}
	return s.walletRepository.UpdateWallet(
		ctx,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.RPCEndpoint = rpcEndpoint
			return w, nil
		},
	)
}

func (s *walletService) UpdateNetwork(
	ctx context.Context, networkName string,
) error {
	if _, err := chain.GetNetwork(networkName); err != nil {
		return err
	}
	return s.walletRepository.UpdateWallet(
		ctx,
		func(w *domain.Wallet) (*domain.Wallet, error) {
			w.Network = networkName
			return w, nil
		},
	)
}

func (s *walletService) getWallet(
	ctx context.Context,
) (*domain.Wallet, *chain.Params, error) {
	w, err := s.walletRepository.GetWallet(ctx)
	if err != nil {
		return nil, nil, err
	}
	params, err := chain.GetNetwork(w.Network)
	if err != nil {
		return nil, nil, err
	}
	return w, params, nil
}

func (s *walletService) balances(
	ctx context.Context,
) (map[string]BalanceInfo, error) {
	utxos, err := s.utxoRepository.GetAllUtxos(ctx)
	if err != nil {
		return nil, err
	}

	balances := map[string]BalanceInfo{}
	for _, u := range utxos {
		if u.IsSpent() {
			continue
		}
		info := balances[u.AssetHash]
		if u.IsLocked() {
			info.Locked += u.Value
		} else if u.IsConfirmed() {
			info.Spendable += u.Value
		}
		balances[u.AssetHash] = info
	}
	return balances, nil
}

// deriveOwnedScripts maps the hex output script of every disclosed index
// to its address and derivation index.
type ownedScript struct {
	address         string
	derivationIndex uint32
}

func (s *walletService) deriveOwnedScripts(
	w *domain.Wallet, params *chain.Params,
) (map[string]ownedScript, []string, error) {
	walletSvc, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: w.Mnemonic,
	})
	if err != nil {
		return nil, nil, err
	}

	byScript := make(map[string]ownedScript)
	addresses := make([]string, 0, w.NextIndex)
	for i := uint32(0); i < w.NextIndex; i++ {
		desc, err := walletSvc.DeriveDescriptor(wallet.DeriveDescriptorOpts{
			DerivationPath: w.DerivationPath(i),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrSigning, err)
		}
		addr, err := desc.Address(params.Net)
		if err != nil {
			return nil, nil, err
		}
		byScript[hex.EncodeToString(desc.Script())] = ownedScript{
			address:         addr,
			derivationIndex: i,
		}
		addresses = append(addresses, addr)
	}
	return byScript, addresses, nil
}
