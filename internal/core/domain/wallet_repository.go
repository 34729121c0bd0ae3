package domain

import (
	"context"
)

// WalletRepository gives access to the persisted Wallet aggregate.
type WalletRepository interface {
	// CreateWallet persists a brand new wallet, failing with
	// ErrWalletAlreadyInitialized if one exists already.
	CreateWallet(ctx context.Context, wallet *Wallet) error
	// GetWallet returns the current wallet, failing with
	// ErrWalletNotInitialized if none was created yet.
	GetWallet(ctx context.Context) (*Wallet, error)
	// UpdateWallet applies updateFn to the current wallet and commits the
	// returned copy durably before returning.
	UpdateWallet(
		ctx context.Context,
		updateFn func(w *Wallet) (*Wallet, error),
	) error
}
