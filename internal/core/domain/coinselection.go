package domain

import (
	"sort"
)

// SelectUtxos deterministically picks the utxos of the given asset
// covering the target amount. Candidates are ranked by descending value,
// ties broken by txid and vout; a single utxo whose value matches the
// target exactly is always preferred, otherwise candidates accumulate in
// rank order until the target is covered. The second return value is the
// change left over.
func SelectUtxos(
	utxos []Utxo, targetAmount uint64, assetHash string,
) ([]Utxo, uint64, error) {
	candidates := make([]Utxo, 0, len(utxos))
	for _, u := range utxos {
		if u.AssetHash == assetHash && u.IsSpendable() {
			candidates = append(candidates, u)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Value != candidates[j].Value {
			return candidates[i].Value > candidates[j].Value
		}
		if candidates[i].TxID != candidates[j].TxID {
			return candidates[i].TxID < candidates[j].TxID
		}
		return candidates[i].VOut < candidates[j].VOut
	})

	for _, u := range candidates {
		if u.Value == targetAmount {
			return []Utxo{u}, 0, nil
		}
	}

	selected := make([]Utxo, 0, len(candidates))
	total := uint64(0)
	for _, u := range candidates {
		selected = append(selected, u)
		total += u.Value
		if total >= targetAmount {
			return selected, total - targetAmount, nil
		}
	}

	return nil, 0, ErrInsufficientFunds
}
