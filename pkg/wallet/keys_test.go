package wallet_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-elements/network"

	"github.com/simplicity-wallet/simplicityw/pkg/wallet"
)

func TestDeriveSigningKeyPair(t *testing.T) {
	w := newTestWallet(t)

	_, first, err := w.DeriveSigningKeyPair(wallet.DeriveSigningKeyPairOpts{
		DerivationPath: "0'/0/0",
	})
	require.NoError(t, err)

	_, again, err := w.DeriveSigningKeyPair(wallet.DeriveSigningKeyPairOpts{
		DerivationPath: "0'/0/0",
	})
	require.NoError(t, err)
	assert.Equal(t, first.SerializeCompressed(), again.SerializeCompressed())

	_, other, err := w.DeriveSigningKeyPair(wallet.DeriveSigningKeyPairOpts{
		DerivationPath: "0'/0/1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.SerializeCompressed(), other.SerializeCompressed())
}

func TestFailingDeriveSigningKeyPair(t *testing.T) {
	w := newTestWallet(t)

	tests := []struct {
		name string
		path string
		err  error
	}{
		{
			name: "empty path",
			path: "",
			err:  wallet.ErrNullDerivationPath,
		},
		{
			name: "malformed path",
			path: "0'/0/",
			err:  wallet.ErrMalformedDerivationPath,
		},
		{
			name: "too short path",
			path: "0/0",
			err:  wallet.ErrInvalidDerivationPathLength,
		},
		{
			name: "account not hardened",
			path: "0/0/0",
			err:  wallet.ErrInvalidDerivationPathAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := w.DeriveSigningKeyPair(wallet.DeriveSigningKeyPairOpts{
				DerivationPath: tt.path,
			})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDeriveTaprootAddress(t *testing.T) {
	w := newTestWallet(t)

	addresses := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		addr, err := w.DeriveTaprootAddress(wallet.DeriveTaprootAddressOpts{
			DerivationPath: fmt.Sprintf("0'/0/%d", i),
			Network:        &network.Regtest,
		})
		require.NoError(t, err)
		assert.Equal(t, "ert", addr[:3])
		addresses[addr] = struct{}{}
	}
	// distinct indexes yield distinct addresses
	assert.Len(t, addresses, 5)

	addr, err := w.DeriveTaprootAddress(wallet.DeriveTaprootAddressOpts{
		DerivationPath: "0'/0/0",
		Network:        &network.Regtest,
	})
	require.NoError(t, err)
	_, ok := addresses[addr]
	assert.True(t, ok)
}

func TestFailingDeriveTaprootAddress(t *testing.T) {
	w := newTestWallet(t)

	addr, err := w.DeriveTaprootAddress(wallet.DeriveTaprootAddressOpts{
		DerivationPath: "0'/0/0",
		Network:        nil,
	})
	assert.Empty(t, addr)
	assert.ErrorIs(t, err, wallet.ErrNullNetwork)
}

func newTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(wallet.NewWalletOpts{EntropySize: 256})
	require.NoError(t, err)
	return w
}
