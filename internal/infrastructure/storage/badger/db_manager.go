// Package dbbadger implements the persistence backend on top of badger,
// through badgerhold. An empty datadir opens the store in memory, which
// is what the tests use.
package dbbadger

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

const stateDir = "state"

// StateStore wraps the badgerhold store and hands out the repositories
// backed by it. Updates are serialized by a store-wide mutex so that a
// read-modify-write cycle is never interleaved with another.
type StateStore struct {
	mtx  sync.Mutex
	db   *badgerhold.Store
	done chan struct{}
}

// NewStateStore opens the badger store under the given datadir, or in
// memory if datadir is empty. It fails with domain.ErrLockedState if
// another process holds the badger directory lock.
func NewStateStore(datadir string, logger badger.Logger) (*StateStore, error) {
	var dbDir string
	if len(datadir) > 0 {
		dbDir = filepath.Join(datadir, stateDir)
	}

	done := make(chan struct{})
	db, err := createDb(dbDir, logger, done)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, fmt.Errorf("%w: %s", domain.ErrLockedState, dbDir)
		}
		return nil, fmt.Errorf("%w: opening state db: %v", domain.ErrPersistence, err)
	}

	return &StateStore{db: db, done: done}, nil
}

// Close stops the value log GC and releases the store with its directory
// lock.
func (s *StateStore) Close() error {
	close(s.done)
	return s.db.Close()
}

// WalletRepository returns the wallet repository backed by this store.
func (s *StateStore) WalletRepository() domain.WalletRepository {
	return walletRepositoryImpl{s}
}

// UtxoRepository returns the utxo repository backed by this store.
func (s *StateStore) UtxoRepository() domain.UtxoRepository {
	return utxoRepositoryImpl{s}
}

func createDb(
	dbDir string, logger badger.Logger, done <-chan struct{},
) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := db.Badger().RunValueLogGC(0.5); err != nil &&
						err != badger.ErrNoRewrite {
						log.Warnf("state db value log GC: %s", err)
					}
				}
			}
		}()
	}

	return db, nil
}
