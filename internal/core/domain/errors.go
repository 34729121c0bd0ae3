package domain

import "errors"

var (
	// ErrWalletAlreadyInitialized ...
	ErrWalletAlreadyInitialized = errors.New("wallet is already initialized")
	// ErrWalletNotInitialized ...
	ErrWalletNotInitialized = errors.New("wallet is not initialized")
	// ErrWalletIndexExhausted is thrown when the next derivation index would
	// reach the hardened range.
	ErrWalletIndexExhausted = errors.New("no derivation index left")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")

	// ErrInsufficientFunds is thrown when the spendable utxos do not cover
	// the requested amount plus fees.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnsupportedDescriptor ...
	ErrUnsupportedDescriptor = errors.New("unsupported descriptor")
	// ErrSigning ...
	ErrSigning = errors.New("failed to sign transaction")
	// ErrFeeEstimation ...
	ErrFeeEstimation = errors.New("failed to estimate fees")
	// ErrBroadcast is thrown when the node rejected or never received the
	// final transaction. The inputs stay locked until their lock expires.
	ErrBroadcast = errors.New("failed to broadcast transaction")
	// ErrLockedState is thrown when another process holds the state lock.
	ErrLockedState = errors.New("wallet state is locked by another process")
	// ErrPersistence wraps any failure of the underlying state store.
	ErrPersistence = errors.New("failed to access wallet state")

	// ErrUtxoAlreadyLocked ...
	ErrUtxoAlreadyLocked = errors.New("utxo is already locked for another spend")
	// ErrUtxoNotFound ...
	ErrUtxoNotFound = errors.New("utxo not found")
)
