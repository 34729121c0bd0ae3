package bufferutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplicity-wallet/simplicityw/pkg/bufferutil"
)

func TestValueRoundTrip(t *testing.T) {
	for _, value := range []uint64{1, 450, 100000000, 2100000000000000} {
		buf, err := bufferutil.ValueToBytes(value)
		require.NoError(t, err)
		require.Len(t, buf, 9)
		assert.Equal(t, byte(0x01), buf[0])
		assert.Equal(t, value, bufferutil.ValueFromBytes(buf))
	}
}

func TestAssetHashRoundTrip(t *testing.T) {
	asset := "b2e15d0d7a0c94e4e2ce0fe6e8691b9e451377f6e46e8045a86f7c4b5d4f0f23"

	buf, err := bufferutil.AssetHashToBytes(asset)
	require.NoError(t, err)
	require.Len(t, buf, 33)
	assert.Equal(t, byte(0x01), buf[0])
	assert.Equal(t, asset, bufferutil.AssetHashFromBytes(buf))
}

func TestTxIDRoundTrip(t *testing.T) {
	txid := "fbdb4a014b0e43f8c7ad23b8dede5b7e5cf70446685b16aa889c8cac484c8d40"

	buf, err := bufferutil.TxIDToBytes(txid)
	require.NoError(t, err)
	require.Len(t, buf, 32)
	assert.Equal(t, txid, bufferutil.TxIDFromBytes(buf))
}
