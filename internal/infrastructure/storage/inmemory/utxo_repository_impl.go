package inmemory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

type utxoRepositoryImpl struct {
	store *StateStore
}

func (r utxoRepositoryImpl) AddUtxos(
	_ context.Context, utxos []domain.Utxo,
) error {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	for _, u := range utxos {
		if _, ok := r.store.utxos[u.Key()]; ok {
			continue
		}
		utxo := u
		r.store.utxos[u.Key()] = &utxo
	}
	return nil
}

func (r utxoRepositoryImpl) GetAllUtxos(
	_ context.Context,
) ([]domain.Utxo, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	utxos := make([]domain.Utxo, 0, len(r.store.utxos))
	for _, u := range r.store.utxos {
		utxos = append(utxos, *u)
	}
	return utxos, nil
}

func (r utxoRepositoryImpl) GetSpendableUtxos(
	_ context.Context,
) ([]domain.Utxo, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	var utxos []domain.Utxo
	for _, u := range r.store.utxos {
		if u.IsSpendable() {
			utxos = append(utxos, *u)
		}
	}
	return utxos, nil
}

func (r utxoRepositoryImpl) GetBalance(
	_ context.Context, assetHash string,
) (uint64, uint64, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	spendable, locked := uint64(0), uint64(0)
	for _, u := range r.store.utxos {
		if u.AssetHash != assetHash || u.IsSpent() {
			continue
		}
		if u.IsLocked() {
			locked += u.Value
			continue
		}
		if u.IsConfirmed() {
			spendable += u.Value
		}
	}
	return spendable, locked, nil
}

func (r utxoRepositoryImpl) GetUtxoForKey(
	_ context.Context, key domain.UtxoKey,
) (*domain.Utxo, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	u, ok := r.store.utxos[key]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s:%d", domain.ErrUtxoNotFound, key.TxID, key.VOut,
		)
	}
	utxo := *u
	return &utxo, nil
}

func (r utxoRepositoryImpl) LockUtxos(
	_ context.Context,
	keys []domain.UtxoKey, spendID uuid.UUID, txid string, expiryHeight uint64,
) error {
	return r.updateUtxos(keys, func(u *domain.Utxo) error {
		return u.Lock(&spendID, txid, expiryHeight)
	})
}

func (r utxoRepositoryImpl) UnlockUtxos(
	_ context.Context, keys []domain.UtxoKey,
) error {
	return r.updateUtxos(keys, func(u *domain.Utxo) error {
		u.Unlock()
		return nil
	})
}

func (r utxoRepositoryImpl) SpendUtxos(
	_ context.Context, keys []domain.UtxoKey, txid string,
) error {
	return r.updateUtxos(keys, func(u *domain.Utxo) error {
		u.Spend(txid)
		return nil
	})
}

func (r utxoRepositoryImpl) ConfirmUtxos(
	_ context.Context, keys []domain.UtxoKey, blockHeight uint64,
) error {
	return r.updateUtxos(keys, func(u *domain.Utxo) error {
		u.Confirm(blockHeight)
		return nil
	})
}

func (r utxoRepositoryImpl) updateUtxos(
	keys []domain.UtxoKey, fn func(u *domain.Utxo) error,
) error {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	for _, key := range keys {
		if _, ok := r.store.utxos[key]; !ok {
			return fmt.Errorf(
				"%w: %s:%d", domain.ErrUtxoNotFound, key.TxID, key.VOut,
			)
		}
	}
	for _, key := range keys {
		if err := fn(r.store.utxos[key]); err != nil {
			return err
		}
	}
	return nil
}
