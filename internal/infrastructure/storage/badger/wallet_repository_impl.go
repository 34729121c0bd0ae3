package dbbadger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

const walletKey = "wallet"

type walletRepositoryImpl struct {
	store *StateStore
}

func (r walletRepositoryImpl) CreateWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	if err := r.store.db.Insert(walletKey, wallet); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrWalletAlreadyInitialized
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r walletRepositoryImpl) GetWallet(
	_ context.Context,
) (*domain.Wallet, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	return r.getWallet()
}

func (r walletRepositoryImpl) UpdateWallet(
	_ context.Context, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	wallet, err := r.getWallet()
	if err != nil {
		return err
	}

	updated, err := updateFn(wallet)
	if err != nil {
		return err
	}

	if err := r.store.db.Update(walletKey, updated); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r walletRepositoryImpl) getWallet() (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := r.store.db.Get(walletKey, &wallet); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrWalletNotInitialized
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &wallet, nil
}
