// Package dbfile implements the default persistence backend: the whole
// wallet state lives in a single JSON file, replaced atomically on every
// update by writing a temporary file, syncing it and renaming it over the
// current one. An exclusive flock-ed lock file keeps a second process from
// opening the same state.
package dbfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

const (
	stateFilename = "state.json"
	lockFilename  = "state.lock"
)

type stateData struct {
	Wallet *domain.Wallet `json:"wallet,omitempty"`
	Utxos  []domain.Utxo  `json:"utxos"`
}

// StateStore owns the state file and hands out the repositories reading
// and mutating it. All mutations go through update, which serializes them
// and commits the whole state before returning.
type StateStore struct {
	mtx      sync.Mutex
	path     string
	lockFile *os.File
	data     stateData
}

// NewStateStore opens the state file in the given datadir, acquiring the
// exclusive lock. It fails with domain.ErrLockedState if another process
// holds it.
func NewStateStore(datadir string) (*StateStore, error) {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	lockFile, err := os.OpenFile(
		filepath.Join(datadir, lockFilename), os.O_CREATE|os.O_RDWR, 0600,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := syscall.Flock(
		int(lockFile.Fd()), syscall.LOCK_EX|syscall.LOCK_NB,
	); err != nil {
		lockFile.Close()
		return nil, fmt.Errorf("%w: %s", domain.ErrLockedState, datadir)
	}

	store := &StateStore{
		path:     filepath.Join(datadir, stateFilename),
		lockFile: lockFile,
	}
	if err := store.load(); err != nil {
		lockFile.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the state lock.
func (s *StateStore) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.lockFile == nil {
		return nil
	}
	syscall.Flock(int(s.lockFile.Fd()), syscall.LOCK_UN)
	err := s.lockFile.Close()
	s.lockFile = nil
	return err
}

// WalletRepository returns the wallet repository backed by this store.
func (s *StateStore) WalletRepository() domain.WalletRepository {
	return walletRepositoryImpl{s}
}

// UtxoRepository returns the utxo repository backed by this store.
func (s *StateStore) UtxoRepository() domain.UtxoRepository {
	return utxoRepositoryImpl{s}
}

func (s *StateStore) load() error {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := json.Unmarshal(buf, &s.data); err != nil {
		return fmt.Errorf("%w: corrupted state file: %v", domain.ErrPersistence, err)
	}
	return nil
}

// update applies updateFn to a deep copy of the state and atomically
// replaces the state file with it. The in-memory view is swapped only
// after the rename succeeded, a failed commit leaves no trace.
func (s *StateStore) update(updateFn func(data *stateData) error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	next, err := copyState(s.data)
	if err != nil {
		return err
	}
	if err := updateFn(&next); err != nil {
		return err
	}
	if err := s.commit(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *StateStore) view(viewFn func(data stateData) error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return viewFn(s.data)
}

func (s *StateStore) commit(data stateData) error {
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	tmpPath := s.path + ".tmp"
	tmpFile, err := os.OpenFile(
		tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if _, err := tmpFile.Write(buf); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	syncDir(filepath.Dir(s.path))
	return nil
}

func syncDir(path string) {
	dir, err := os.Open(path)
	if err != nil {
		return
	}
	dir.Sync()
	dir.Close()
}

func copyState(data stateData) (stateData, error) {
	buf, err := json.Marshal(data)
	if err != nil {
		return stateData{}, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	var next stateData
	if err := json.Unmarshal(buf, &next); err != nil {
		return stateData{}, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return next, nil
}
