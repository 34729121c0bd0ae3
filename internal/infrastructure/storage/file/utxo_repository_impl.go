package dbfile

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
	return r.store.update(func(data *stateData) error {
		for _, u := range utxos {
			if indexOfUtxo(data.Utxos, u.Key()) < 0 {
				data.Utxos = append(data.Utxos, u)
			}
		}
		return nil
	})
}

func (r utxoRepositoryImpl) GetAllUtxos(
	_ context.Context,
) ([]domain.Utxo, error) {
	var utxos []domain.Utxo
	if err := r.store.view(func(data stateData) error {
		utxos = append(utxos, data.Utxos...)
		return nil
	}); err != nil {
		return nil, err
	}
	return utxos, nil
}

func (r utxoRepositoryImpl) GetSpendableUtxos(
	_ context.Context,
) ([]domain.Utxo, error) {
	var utxos []domain.Utxo
	if err := r.store.view(func(data stateData) error {
		for _, u := range data.Utxos {
			if u.IsSpendable() {
				utxos = append(utxos, u)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return utxos, nil
}

func (r utxoRepositoryImpl) GetBalance(
	_ context.Context, assetHash string,
) (uint64, uint64, error) {
	spendable, locked := uint64(0), uint64(0)
	if err := r.store.view(func(data stateData) error {
		for _, u := range data.Utxos {
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
		return nil
	}); err != nil {
		return 0, 0, err
	}
	return spendable, locked, nil
}

func (r utxoRepositoryImpl) GetUtxoForKey(
	_ context.Context, key domain.UtxoKey,
) (*domain.Utxo, error) {
	var utxo *domain.Utxo
	if err := r.store.view(func(data stateData) error {
		i := indexOfUtxo(data.Utxos, key)
		if i < 0 {
			return fmt.Errorf("%w: %s:%d", domain.ErrUtxoNotFound, key.TxID, key.VOut)
		}
		u := data.Utxos[i]
		utxo = &u
		return nil
	}); err != nil {
		return nil, err
	}
	return utxo, nil
}

func (r utxoRepositoryImpl) LockUtxos(
	_ context.Context,
	keys []domain.UtxoKey, spendID uuid.UUID, txid string, expiryHeight uint64,
) error {
	return r.store.update(func(data *stateData) error {
		return forEachUtxo(data, keys, func(u *domain.Utxo) error {
			return u.Lock(&spendID, txid, expiryHeight)
		})
	})
}

func (r utxoRepositoryImpl) UnlockUtxos(
	_ context.Context, keys []domain.UtxoKey,
) error {
	return r.store.update(func(data *stateData) error {
		return forEachUtxo(data, keys, func(u *domain.Utxo) error {
			u.Unlock()
			return nil
		})
	})
}

func (r utxoRepositoryImpl) SpendUtxos(
	_ context.Context, keys []domain.UtxoKey, txid string,
) error {
	return r.store.update(func(data *stateData) error {
		return forEachUtxo(data, keys, func(u *domain.Utxo) error {
			u.Spend(txid)
			return nil
		})
	})
}

func (r utxoRepositoryImpl) ConfirmUtxos(
	_ context.Context, keys []domain.UtxoKey, blockHeight uint64,
) error {
	return r.store.update(func(data *stateData) error {
		return forEachUtxo(data, keys, func(u *domain.Utxo) error {
			u.Confirm(blockHeight)
			return nil
		})
	})
}

func forEachUtxo(
	data *stateData, keys []domain.UtxoKey, fn func(u *domain.Utxo) error,
) error {
	for _, key := range keys {
		i := indexOfUtxo(data.Utxos, key)
		if i < 0 {
			return fmt.Errorf("%w: %s:%d", domain.ErrUtxoNotFound, key.TxID, key.VOut)
		}
		if err := fn(&data.Utxos[i]); err != nil {
			return err
		}
	}
	return nil
}

func indexOfUtxo(utxos []domain.Utxo, key domain.UtxoKey) int {
	for i := range utxos {
		if utxos[i].IsKeyEqual(key) {
			return i
		}
	}
	return -1
}
