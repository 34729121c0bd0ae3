package inmemory

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
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	if r.store.wallet != nil {
		return domain.ErrWalletAlreadyInitialized
	}
	w := *wallet
	r.store.wallet = &w
	return nil
}

func (r walletRepositoryImpl) GetWallet(
	_ context.Context,
) (*domain.Wallet, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	if r.store.wallet == nil {
		return nil, domain.ErrWalletNotInitialized
	}
	w := *r.store.wallet
	return &w, nil
}

func (r walletRepositoryImpl) UpdateWallet(
	_ context.Context, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	if r.store.wallet == nil {
		return domain.ErrWalletNotInitialized
	}
	w := *r.store.wallet
	updated, err := updateFn(&w)
	if err != nil {
		return err
	}
	r.store.wallet = updated
	return nil
}
