package wallet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplicity-wallet/simplicityw/pkg/wallet"
)

func TestNewWallet(t *testing.T) {
	w, err := wallet.NewWallet(wallet.NewWalletOpts{EntropySize: 256})
	require.NoError(t, err)

	mnemonic, err := w.SigningMnemonic()
	require.NoError(t, err)
	assert.Len(t, mnemonic, 24)

	restored, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: mnemonic,
	})
	require.NoError(t, err)

	path := "0'/0/0"
	_, pubkey, err := w.DeriveSigningKeyPair(wallet.DeriveSigningKeyPairOpts{
		DerivationPath: path,
	})
	require.NoError(t, err)
	_, restoredPubkey, err := restored.DeriveSigningKeyPair(
		wallet.DeriveSigningKeyPairOpts{DerivationPath: path},
	)
	require.NoError(t, err)
	assert.Equal(
		t, pubkey.SerializeCompressed(), restoredPubkey.SerializeCompressed(),
	)
}

func TestFailingNewWallet(t *testing.T) {
	tests := []struct {
		name        string
		entropySize int
	}{
		{"below range", 64},
		{"above range", 512},
		{"not multiple of 32", 144},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := wallet.NewWallet(wallet.NewWalletOpts{
				EntropySize: tt.entropySize,
			})
			assert.Nil(t, w)
			assert.ErrorIs(t, err, wallet.ErrInvalidEntropySize)
		})
	}
}

func TestFailingNewWalletFromMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic []string
		err      error
	}{
		{
			name:     "empty mnemonic",
			mnemonic: nil,
			err:      wallet.ErrNullSigningMnemonic,
		},
		{
			name:     "invalid mnemonic",
			mnemonic: strings.Split("legal winner thank year wave", " "),
			err:      wallet.ErrInvalidSigningMnemonic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := wallet.NewWalletFromMnemonic(
				wallet.NewWalletFromMnemonicOpts{SigningMnemonic: tt.mnemonic},
			)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
