package dbfile

import (
	"context"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

type walletRepositoryImpl struct {
	store *StateStore
}

func (r walletRepositoryImpl) CreateWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	return r.store.update(func(data *stateData) error {
		if data.Wallet != nil {
			return domain.ErrWalletAlreadyInitialized
		}
		data.Wallet = wallet
		return nil
	})
}

func (r walletRepositoryImpl) GetWallet(
	_ context.Context,
) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	if err := r.store.view(func(data stateData) error {
		if data.Wallet == nil {
			return domain.ErrWalletNotInitialized
		}
		w := *data.Wallet
		wallet = &w
		return nil
	}); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r walletRepositoryImpl) UpdateWallet(
	_ context.Context, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	return r.store.update(func(data *stateData) error {
		if data.Wallet == nil {
			return domain.ErrWalletNotInitialized
		}
		updated, err := updateFn(data.Wallet)
		if err != nil {
			return err
		}
		data.Wallet = updated
		return nil
	})
}
