package domain

import (
	"github.com/google/uuid"

	"github.com/simplicity-wallet/simplicityw/pkg/explorer"
)

// IsKeyEqual returns whether the provided UtxoKey matches that of the
// current utxo.
func (u *Utxo) IsKeyEqual(key UtxoKey) bool {
	return u.TxID == key.TxID && u.VOut == key.VOut
}

// IsSpent returns whether the utxo is already spent.
func (u *Utxo) IsSpent() bool {
	return u.Spent
}

// IsConfirmed returns whether the utxo is already confirmed.
func (u *Utxo) IsConfirmed() bool {
	return u.Confirmed
}

// IsLocked returns whether the utxo is reserved by a pending spend.
func (u *Utxo) IsLocked() bool {
	return u.Locked
}

// IsLockExpired returns whether a pending spend reservation has outlived
// its expiry height without confirming.
func (u *Utxo) IsLockExpired(blockHeight uint64) bool {
	return u.Locked && blockHeight >= u.LockExpiry
}

// IsSpendable returns whether the utxo can be offered to coin selection:
// confirmed, not spent and not reserved.
func (u *Utxo) IsSpendable() bool {
	return u.Confirmed && !u.Spent && !u.Locked
}

// Key returns the UtxoKey of the current utxo.
func (u *Utxo) Key() UtxoKey {
	return UtxoKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}

// Spend marks the utxo as spent. A spent utxo never comes back.
func (u *Utxo) Spend(txid string) {
	u.Spent = true
	u.Locked = false
	u.LockedBy = nil
	if txid != "" {
		u.SpentByTxID = txid
	}
}

// Confirm marks the utxo as confirmed.
func (u *Utxo) Confirm(blockHeight uint64) {
	u.Confirmed = true
	if blockHeight > 0 {
		u.BlockHeight = blockHeight
	}
}

// Lock reserves the utxo for the spend identified by the given id, until
// the given expiry height. Locking on behalf of another spend while
// reserved is an error.
func (u *Utxo) Lock(spendID *uuid.UUID, txid string, expiryHeight uint64) error {
	if u.IsLocked() {
		if spendID.String() != u.LockedBy.String() {
			return ErrUtxoAlreadyLocked
		}
		return nil
	}

	u.Locked = true
	u.LockedBy = spendID
	u.SpentByTxID = txid
	u.LockExpiry = expiryHeight
	return nil
}

// Unlock releases an expired reservation, making the utxo spendable again.
func (u *Utxo) Unlock() {
	u.Locked = false
	u.LockedBy = nil
	u.SpentByTxID = ""
	u.LockExpiry = 0
}

// ToUtxo returns the current utxo as an explorer.Utxo interface.
func (u *Utxo) ToUtxo() explorer.Utxo {
	return explorer.NewWitnessUtxo(
		u.TxID,
		u.VOut,
		u.Value,
		u.AssetHash,
		u.ScriptPubKey,
		u.BlockHeight,
		u.Confirmed,
	)
}
