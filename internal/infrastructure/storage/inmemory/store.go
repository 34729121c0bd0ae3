// Package inmemory implements the persistence interfaces on plain maps,
// guarded by a mutex. Nothing survives the process, it exists for tests
// and for throwaway runs.
package inmemory

import (
	"sync"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

type StateStore struct {
	mtx    sync.Mutex
	wallet *domain.Wallet
	utxos  map[domain.UtxoKey]*domain.Utxo
}

func NewStateStore() *StateStore {
	return &StateStore{
		utxos: make(map[domain.UtxoKey]*domain.Utxo),
	}
}

func (s *StateStore) Close() error { return nil }

func (s *StateStore) WalletRepository() domain.WalletRepository {
	return walletRepositoryImpl{s}
}

func (s *StateStore) UtxoRepository() domain.UtxoRepository {
	return utxoRepositoryImpl{s}
}
