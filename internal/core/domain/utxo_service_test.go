package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

func TestUtxoLockUnlock(t *testing.T) {
	u := newTestUtxo("aaaa", 0, 1000)
	spendID := uuid.New()

	require.True(t, u.IsSpendable())

	err := u.Lock(&spendID, "cafe", 106)
	require.NoError(t, err)
	assert.True(t, u.IsLocked())
	assert.False(t, u.IsSpendable())
	assert.Equal(t, "cafe", u.SpentByTxID)

	// relocking on behalf of the same spend is idempotent
	err = u.Lock(&spendID, "cafe", 106)
	require.NoError(t, err)

	otherSpendID := uuid.New()
	err = u.Lock(&otherSpendID, "beef", 110)
	assert.ErrorIs(t, err, domain.ErrUtxoAlreadyLocked)

	assert.False(t, u.IsLockExpired(105))
	assert.True(t, u.IsLockExpired(106))

	u.Unlock()
	assert.False(t, u.IsLocked())
	assert.True(t, u.IsSpendable())
	assert.Empty(t, u.SpentByTxID)
}

func TestUtxoSpend(t *testing.T) {
	u := newTestUtxo("aaaa", 0, 1000)
	spendID := uuid.New()

	err := u.Lock(&spendID, "cafe", 106)
	require.NoError(t, err)

	u.Spend("cafe")
	assert.True(t, u.IsSpent())
	assert.False(t, u.IsLocked())
	assert.False(t, u.IsSpendable())
	assert.Equal(t, "cafe", u.SpentByTxID)
}

func TestUtxoConfirm(t *testing.T) {
	u := newTestUtxo("aaaa", 0, 1000)
	u.Confirmed = false

	assert.False(t, u.IsSpendable())
	u.Confirm(101)
	assert.True(t, u.IsConfirmed())
	assert.Equal(t, uint64(101), u.BlockHeight)
	assert.True(t, u.IsSpendable())
}

func TestUtxoToUtxo(t *testing.T) {
	u := newTestUtxo("aaaa", 3, 1000)

	utxo := u.ToUtxo()
	assert.Equal(t, u.TxID, utxo.Hash())
	assert.Equal(t, u.VOut, utxo.Index())
	assert.Equal(t, u.Value, utxo.Value())
	assert.Equal(t, u.AssetHash, utxo.Asset())
	assert.True(t, utxo.IsConfirmed())
}

func newTestUtxo(txid string, vout uint32, value uint64) domain.Utxo {
	return domain.Utxo{
		TxID:      txid,
		VOut:      vout,
		Value:     value,
		AssetHash: "0000000000000000000000000000000000000000000000000000000000000001",
		Confirmed: true,
	}
}
