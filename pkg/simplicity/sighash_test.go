package simplicity_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-elements/transaction"

	"github.com/simplicity-wallet/simplicityw/pkg/bufferutil"
	"github.com/simplicity-wallet/simplicityw/pkg/simplicity"
)

const (
	testAsset = "b2e15d0d7a0c94e4e2ce0fe6e8691b9e451377f6e46e8045a86f7c4b5d4f0f23"
	testTxid  = "3ba19a06df7d85b473e2fbab661fb1bdce80ee7b1f4e3cbba23c0890f1b32a1e"
)

func TestSigHash(t *testing.T) {
	desc, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
	require.NoError(t, err)

	tx, prevouts := testTransaction(t, desc)
	genesis := testGenesisHash(t)

	digest, err := simplicity.SigHash(tx, 0, prevouts, desc.LeafHash(), genesis)
	require.NoError(t, err)

	again, err := simplicity.SigHash(tx, 0, prevouts, desc.LeafHash(), genesis)
	require.NoError(t, err)
	assert.Equal(t, digest, again)

	otherIndex, err := simplicity.SigHash(tx, 1, prevouts, desc.LeafHash(), genesis)
	require.NoError(t, err)
	assert.NotEqual(t, digest, otherIndex)

	otherChain, err := simplicity.SigHash(
		tx, 0, prevouts, desc.LeafHash(), chainhash.Hash{},
	)
	require.NoError(t, err)
	assert.NotEqual(t, digest, otherChain)

	tx.Outputs[0].Value, err = bufferutil.ValueToBytes(4999)
	require.NoError(t, err)
	otherOutputs, err := simplicity.SigHash(tx, 0, prevouts, desc.LeafHash(), genesis)
	require.NoError(t, err)
	assert.NotEqual(t, digest, otherOutputs)
}

func TestFailingSigHash(t *testing.T) {
	desc, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
	require.NoError(t, err)
	tx, prevouts := testTransaction(t, desc)
	genesis := testGenesisHash(t)

	tests := []struct {
		name     string
		inIndex  int
		prevouts []*transaction.TxOutput
	}{
		{
			name:     "negative input index",
			inIndex:  -1,
			prevouts: prevouts,
		},
		{
			name:     "input index out of range",
			inIndex:  len(tx.Inputs),
			prevouts: prevouts,
		},
		{
			name:     "missing prevouts",
			inIndex:  0,
			prevouts: prevouts[:1],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simplicity.SigHash(
				tx, tt.inIndex, tt.prevouts, desc.LeafHash(), genesis,
			)
			assert.Error(t, err)
		})
	}
}

func testTransaction(
	t *testing.T, desc *simplicity.Descriptor,
) (*transaction.Transaction, []*transaction.TxOutput) {
	t.Helper()

	hash, err := bufferutil.TxIDToBytes(testTxid)
	require.NoError(t, err)
	asset, err := bufferutil.AssetHashToBytes(testAsset)
	require.NoError(t, err)

	tx := transaction.NewTx(2)
	tx.Inputs = append(
		tx.Inputs,
		transaction.NewTxInput(hash, 0),
		transaction.NewTxInput(hash, 1),
	)

	outValue, err := bufferutil.ValueToBytes(5000)
	require.NoError(t, err)
	feeValue, err := bufferutil.ValueToBytes(1000)
	require.NoError(t, err)
	tx.Outputs = append(
		tx.Outputs,
		transaction.NewTxOutput(asset, outValue, desc.Script()),
		transaction.NewTxOutput(asset, feeValue, []byte{}),
	)

	prevValue, err := bufferutil.ValueToBytes(3000)
	require.NoError(t, err)
	prevouts := []*transaction.TxOutput{
		transaction.NewTxOutput(asset, prevValue, desc.Script()),
		transaction.NewTxOutput(asset, prevValue, desc.Script()),
	}
	return tx, prevouts
}

func testGenesisHash(t *testing.T) chainhash.Hash {
	t.Helper()
	hash, err := chainhash.NewHashFromStr(
		"209577bda6bf4b5804bd46f8621580dd6d4e8bfa2d190e1c50e932492baca07d",
	)
	require.NoError(t, err)
	return *hash
}
