package dbbadger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

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
		if err := r.store.db.Insert(u.Key(), u); err != nil {
			if err == badgerhold.ErrKeyExists {
				continue
			}
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}
	return nil
}

func (r utxoRepositoryImpl) GetAllUtxos(
	_ context.Context,
) ([]domain.Utxo, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	return r.findUtxos(&badgerhold.Query{})
}

func (r utxoRepositoryImpl) GetSpendableUtxos(
	_ context.Context,
) ([]domain.Utxo, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	query := badgerhold.Where("Spent").Eq(false).
		And("Locked").Eq(false).
		And("Confirmed").Eq(true)
	return r.findUtxos(query)
}

func (r utxoRepositoryImpl) GetBalance(
	_ context.Context, assetHash string,
) (uint64, uint64, error) {
	r.store.mtx.Lock()
	defer r.store.mtx.Unlock()

	query := badgerhold.Where("AssetHash").Eq(assetHash).And("Spent").Eq(false)
	utxos, err := r.findUtxos(query)
	if err != nil {
		return 0, 0, err
	}

	spendable, locked := uint64(0), uint64(0)
	for _, u := range utxos {
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

	return r.getUtxo(key)
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

	// apply the change to every utxo before persisting any of them, so
	// that a rejected mutation leaves the batch untouched
	updated := make([]*domain.Utxo, 0, len(keys))
	for _, key := range keys {
		u, err := r.getUtxo(key)
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
		updated = append(updated, u)
	}

	for _, u := range updated {
		if err := r.store.db.Update(u.Key(), *u); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}
	return nil
}

func (r utxoRepositoryImpl) getUtxo(key domain.UtxoKey) (*domain.Utxo, error) {
	var utxo domain.Utxo
	if err := r.store.db.Get(key, &utxo); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf(
				"%w: %s:%d", domain.ErrUtxoNotFound, key.TxID, key.VOut,
			)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &utxo, nil
}

func (r utxoRepositoryImpl) findUtxos(
	query *badgerhold.Query,
) ([]domain.Utxo, error) {
	var utxos []domain.Utxo
	if err := r.store.db.Find(&utxos, query); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return utxos, nil
}
