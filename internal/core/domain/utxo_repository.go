package domain

import (
	"context"

	"github.com/google/uuid"
)

// UtxoRepository gives access to the persisted utxo ledger.
type UtxoRepository interface {
	// AddUtxos inserts the given utxos, skipping those already known.
	AddUtxos(ctx context.Context, utxos []Utxo) error
	// GetAllUtxos returns the whole ledger, whatever the markers.
	GetAllUtxos(ctx context.Context) ([]Utxo, error)
	// GetSpendableUtxos returns the confirmed, unspent, unlocked utxos.
	GetSpendableUtxos(ctx context.Context) ([]Utxo, error)
	// GetBalance returns the spendable and the locked balance for the
	// given asset.
	GetBalance(
		ctx context.Context, assetHash string,
	) (spendable uint64, locked uint64, err error)
	// GetUtxoForKey returns the utxo identified by the given key.
	GetUtxoForKey(ctx context.Context, key UtxoKey) (*Utxo, error)
	// LockUtxos reserves the given utxos for the spend identified by
	// spendID/txid until expiryHeight. The reservation is committed
	// durably before returning.
	LockUtxos(
		ctx context.Context,
		keys []UtxoKey,
		spendID uuid.UUID,
		txid string,
		expiryHeight uint64,
	) error
	// UnlockUtxos releases the reservation of the given utxos.
	UnlockUtxos(ctx context.Context, keys []UtxoKey) error
	// SpendUtxos marks the given utxos as spent by txid.
	SpendUtxos(ctx context.Context, keys []UtxoKey, txid string) error
	// ConfirmUtxos marks the given utxos as confirmed at the given height.
	ConfirmUtxos(ctx context.Context, keys []UtxoKey, blockHeight uint64) error
}
