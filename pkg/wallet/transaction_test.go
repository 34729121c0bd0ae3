package wallet_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-elements/transaction"

	"github.com/simplicity-wallet/simplicityw/pkg/wallet"
)

const (
	testAsset = "b2e15d0d7a0c94e4e2ce0fe6e8691b9e451377f6e46e8045a86f7c4b5d4f0f23"
	testTxid  = "3ba19a06df7d85b473e2fbab661fb1bdce80ee7b1f4e3cbba23c0890f1b32a1e"
)

func TestBuildAndSignTransaction(t *testing.T) {
	w := newTestWallet(t)
	genesis := testGenesisHash(t)

	destDesc, err := w.DeriveDescriptor(wallet.DeriveDescriptorOpts{
		DerivationPath: "0'/0/5",
	})
	require.NoError(t, err)

	opts := wallet.BuildAndSignTransactionOpts{
		Inputs: []wallet.TxInput{
			{
				Txid:           testTxid,
				VOut:           0,
				Value:          100000,
				Asset:          testAsset,
				DerivationPath: "0'/0/0",
			},
			{
				Txid:           testTxid,
				VOut:           1,
				Value:          50000,
				Asset:          testAsset,
				DerivationPath: "0'/0/1",
			},
		},
		Outputs: []wallet.TxOutput{
			{Asset: testAsset, Value: 149000, Script: destDesc.Script()},
		},
		FeeAsset:    testAsset,
		FeeAmount:   1000,
		GenesisHash: genesis,
	}

	txHex, txid, err := w.BuildAndSignTransaction(opts)
	require.NoError(t, err)
	require.NotEmpty(t, txHex)
	require.Len(t, txid, 64)

	tx, err := transaction.NewTxFromHex(txHex)
	require.NoError(t, err)
	assert.Equal(t, int32(2), tx.Version)
	require.Len(t, tx.Inputs, 2)
	require.Len(t, tx.Outputs, 2)
	// fee output comes last with an empty script
	assert.Empty(t, tx.Outputs[1].Script)
	assert.Equal(t, txid, tx.TxHash().String())

	// every input carries a valid script-path satisfaction
	for i, in := range tx.Inputs {
		require.Len(t, in.Witness, 3)

		desc, err := w.DeriveDescriptor(wallet.DeriveDescriptorOpts{
			DerivationPath: opts.Inputs[i].DerivationPath,
		})
		require.NoError(t, err)
		assert.Equal(t, desc.CMR().Bytes(), in.Witness[1])
	}

	// deterministic: rebuilding yields the same transaction
	againHex, againTxid, err := w.BuildAndSignTransaction(opts)
	require.NoError(t, err)
	assert.Equal(t, txHex, againHex)
	assert.Equal(t, txid, againTxid)
}

func TestFailingBuildAndSignTransaction(t *testing.T) {
	w := newTestWallet(t)
	genesis := testGenesisHash(t)

	destDesc, err := w.DeriveDescriptor(wallet.DeriveDescriptorOpts{
		DerivationPath: "0'/0/5",
	})
	require.NoError(t, err)

	validInput := wallet.TxInput{
		Txid:           testTxid,
		VOut:           0,
		Value:          100000,
		Asset:          testAsset,
		DerivationPath: "0'/0/0",
	}
	validOutput := wallet.TxOutput{
		Asset:  testAsset,
		Value:  99000,
		Script: destDesc.Script(),
	}

	tests := []struct {
		name string
		opts wallet.BuildAndSignTransactionOpts
		err  error
	}{
		{
			name: "no inputs",
			opts: wallet.BuildAndSignTransactionOpts{
				Outputs:     []wallet.TxOutput{validOutput},
				FeeAsset:    testAsset,
				FeeAmount:   1000,
				GenesisHash: genesis,
			},
			err: wallet.ErrEmptyInputs,
		},
		{
			name: "no outputs",
			opts: wallet.BuildAndSignTransactionOpts{
				Inputs:      []wallet.TxInput{validInput},
				FeeAsset:    testAsset,
				FeeAmount:   1000,
				GenesisHash: genesis,
			},
			err: wallet.ErrEmptyOutputs,
		},
		{
			name: "zero fee",
			opts: wallet.BuildAndSignTransactionOpts{
				Inputs:      []wallet.TxInput{validInput},
				Outputs:     []wallet.TxOutput{validOutput},
				FeeAsset:    testAsset,
				GenesisHash: genesis,
			},
			err: wallet.ErrZeroFeeAmount,
		},
		{
			name: "bad input txid",
			opts: wallet.BuildAndSignTransactionOpts{
				Inputs: []wallet.TxInput{{
					Txid:           "deadbeef",
					Value:          100000,
					Asset:          testAsset,
					DerivationPath: "0'/0/0",
				}},
				Outputs:     []wallet.TxOutput{validOutput},
				FeeAsset:    testAsset,
				FeeAmount:   1000,
				GenesisHash: genesis,
			},
			err: wallet.ErrInvalidInputTxid,
		},
		{
			name: "bad output asset",
			opts: wallet.BuildAndSignTransactionOpts{
				Inputs: []wallet.TxInput{validInput},
				Outputs: []wallet.TxOutput{{
					Asset:  "beef",
					Value:  99000,
					Script: destDesc.Script(),
				}},
				FeeAsset:    testAsset,
				FeeAmount:   1000,
				GenesisHash: genesis,
			},
			err: wallet.ErrInvalidOutputAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txHex, txid, err := w.BuildAndSignTransaction(tt.opts)
			assert.Empty(t, txHex)
			assert.Empty(t, txid)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSignSchnorr(t *testing.T) {
	w := newTestWallet(t)

	var digest [32]byte
	copy(digest[:], []byte("12345678901234567890123456789012"))

	sig, err := w.SignSchnorr(wallet.SignSchnorrOpts{
		DerivationPath: "0'/0/0",
		Digest:         digest,
	})
	require.NoError(t, err)
	assert.Len(t, sig, 64)

	_, err = w.SignSchnorr(wallet.SignSchnorrOpts{
		DerivationPath: "0'/0/0",
	})
	assert.ErrorIs(t, err, wallet.ErrNullDigest)
}

func TestEstimateFeeAmount(t *testing.T) {
	size, err := wallet.EstimateTxSize(wallet.EstimateTxSizeOpts{
		NumInputs:  1,
		NumOutputs: 2,
	})
	require.NoError(t, err)
	assert.Greater(t, size, 0)

	biggerSize, err := wallet.EstimateTxSize(wallet.EstimateTxSizeOpts{
		NumInputs:  3,
		NumOutputs: 2,
	})
	require.NoError(t, err)
	assert.Greater(t, biggerSize, size)

	fee, err := wallet.EstimateFeeAmount(wallet.EstimateFeeAmountOpts{
		NumInputs:        1,
		NumOutputs:       2,
		MillisatsPerByte: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(size), fee)

	_, err = wallet.EstimateFeeAmount(wallet.EstimateFeeAmountOpts{
		NumInputs:  1,
		NumOutputs: 2,
	})
	assert.ErrorIs(t, err, wallet.ErrZeroFeeRate)

	_, err = wallet.EstimateTxSize(wallet.EstimateTxSizeOpts{NumOutputs: 2})
	assert.ErrorIs(t, err, wallet.ErrEmptyInputs)
}

func testGenesisHash(t *testing.T) chainhash.Hash {
	t.Helper()
	hash, err := chainhash.NewHashFromStr(
		"209577bda6bf4b5804bd46f8621580dd6d4e8bfa2d190e1c50e932492baca07d",
	)
	require.NoError(t, err)
	return *hash
}
