package domain

import (
	"fmt"
)

const (
	// externalBranch is the only branch in use, both receiving and change
	// addresses are derived from it.
	externalBranch = 0

	// maxDerivationIndex is the lowest index of the hardened range, never
	// reached by provisioning.
	maxDerivationIndex = uint32(1) << 31
)

// DerivationPath returns the relative path of the signing key at the given
// index, in the account'/branch/index form.
func (w *Wallet) DerivationPath(index uint32) string {
	return fmt.Sprintf("0'/%d/%d", externalBranch, index)
}

// BumpIndex reserves the next derivation index and advances the counter.
// The mutation must be persisted before the reserved index is used to
// derive an address for disclosure.
func (w *Wallet) BumpIndex() (uint32, error) {
	if w.NextIndex >= maxDerivationIndex {
		return 0, ErrWalletIndexExhausted
	}
	index := w.NextIndex
	w.NextIndex++
	return index, nil
}

// AllDerivationPaths returns the paths of every index disclosed so far,
// ie. all indexes below NextIndex.
func (w *Wallet) AllDerivationPaths() []string {
	paths := make([]string, 0, w.NextIndex)
	for i := uint32(0); i < w.NextIndex; i++ {
		paths = append(paths, w.DerivationPath(i))
	}
	return paths
}
