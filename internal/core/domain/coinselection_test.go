package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
)

const testAsset = "0000000000000000000000000000000000000000000000000000000000000001"

func TestSelectUtxos(t *testing.T) {
	utxos := []domain.Utxo{
		newTestUtxo("aaaa", 0, 1000),
		newTestUtxo("bbbb", 1, 5000),
		newTestUtxo("cccc", 0, 2000),
	}

	t.Run("largest first", func(t *testing.T) {
		selected, change, err := domain.SelectUtxos(utxos, 6000, testAsset)
		require.NoError(t, err)
		require.Len(t, selected, 2)
		assert.Equal(t, "bbbb", selected[0].TxID)
		assert.Equal(t, "cccc", selected[1].TxID)
		assert.Equal(t, uint64(1000), change)
	})

	t.Run("exact match preferred over larger utxo", func(t *testing.T) {
		selected, change, err := domain.SelectUtxos(utxos, 2000, testAsset)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		assert.Equal(t, "cccc", selected[0].TxID)
		assert.Zero(t, change)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, _, err := domain.SelectUtxos(utxos, 5500, testAsset)
		require.NoError(t, err)
		// same inputs in a different order select the same utxos
		shuffled := []domain.Utxo{utxos[2], utxos[0], utxos[1]}
		second, _, err := domain.SelectUtxos(shuffled, 5500, testAsset)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		selected, change, err := domain.SelectUtxos(utxos, 9000, testAsset)
		assert.Nil(t, selected)
		assert.Zero(t, change)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("other asset not selectable", func(t *testing.T) {
		_, _, err := domain.SelectUtxos(
			utxos, 1000,
			"0000000000000000000000000000000000000000000000000000000000000002",
		)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})
}

func TestSelectUtxosSkipsUnspendable(t *testing.T) {
	locked := newTestUtxo("aaaa", 0, 5000)
	spendID := uuid.New()
	require.NoError(t, locked.Lock(&spendID, "cafe", 106))

	spent := newTestUtxo("bbbb", 0, 5000)
	spent.Spend("beef")

	unconfirmed := newTestUtxo("cccc", 0, 5000)
	unconfirmed.Confirmed = false

	utxos := []domain.Utxo{locked, spent, unconfirmed, newTestUtxo("dddd", 0, 3000)}

	selected, change, err := domain.SelectUtxos(utxos, 2000, testAsset)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "dddd", selected[0].TxID)
	assert.Equal(t, uint64(1000), change)

	_, _, err = domain.SelectUtxos(utxos, 4000, testAsset)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}
