package simplicity_test

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-elements/network"

	"github.com/simplicity-wallet/simplicityw/pkg/simplicity"
)

func TestNewPkDescriptor(t *testing.T) {
	key := randomKey(t)

	desc, err := simplicity.NewPkDescriptor(key.PubKey())
	require.NoError(t, err)
	require.NotNil(t, desc)

	other, err := simplicity.NewPkDescriptor(key.PubKey())
	require.NoError(t, err)
	assert.Equal(t, desc.CMR(), other.CMR())
	assert.Equal(t, desc.Script(), other.Script())

	script := desc.Script()
	require.Len(t, script, 34)
	assert.Equal(t, byte(0x51), script[0])
	assert.Equal(t, byte(0x20), script[1])

	ctrlBlock := desc.ControlBlock()
	require.Len(t, ctrlBlock, 33)
	assert.Equal(t, byte(0xbe), ctrlBlock[0]&0xfe)
	assert.Equal(
		t,
		schnorr.SerializePubKey(simplicity.UnspendableInternalKey()),
		ctrlBlock[1:],
	)
}

func TestNewPkDescriptorDistinctKeys(t *testing.T) {
	first, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
	require.NoError(t, err)
	second, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
	require.NoError(t, err)

	assert.NotEqual(t, first.CMR(), second.CMR())
	assert.NotEqual(t, first.Script(), second.Script())
}

func TestFailingNewDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		template string
		key      *btcec.PublicKey
		err      error
	}{
		{
			name:     "unsupported template",
			template: "simplicity-multisig",
			key:      randomKey(t).PubKey(),
			err:      simplicity.ErrUnsupportedPolicy,
		},
		{
			name:     "missing key",
			template: simplicity.PkTemplate,
			key:      nil,
			err:      simplicity.ErrMissingPublicKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := simplicity.NewDescriptor(tt.template, tt.key)
			assert.Nil(t, desc)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	desc, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
	require.NoError(t, err)

	addr, err := desc.Address(&network.Regtest)
	require.NoError(t, err)
	assert.Equal(t, "ert", addr[:3])

	script, err := simplicity.TaprootAddressToScript(addr)
	require.NoError(t, err)
	assert.Equal(t, desc.Script(), script)
}

func TestFailingTaprootAddressToScript(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{
			name: "garbage",
			addr: "notanaddress",
		},
		{
			name: "segwit v0 bech32",
			addr: "ert1qw508d6qejxtdg4y5r3zarvary0c5xw7kyrl9eg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := simplicity.TaprootAddressToScript(tt.addr)
			assert.Nil(t, script)
			assert.ErrorIs(t, err, simplicity.ErrInvalidTaprootAddress)
		})
	}
}

func TestSatisfyRoundTrip(t *testing.T) {
	key := randomKey(t)
	desc, err := simplicity.NewPkDescriptor(key.PubKey())
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("spend digest"))
	sig, err := schnorr.Sign(key, digest[:])
	require.NoError(t, err)

	witness, err := desc.Satisfy(sig.Serialize())
	require.NoError(t, err)
	require.Len(t, witness, 3)
	assert.Equal(t, desc.CMR().Bytes(), witness[1])
	assert.Equal(t, desc.ControlBlock(), witness[2])

	err = simplicity.VerifySatisfaction(witness, desc.Script(), digest)
	require.NoError(t, err)
}

func TestFailingVerifySatisfaction(t *testing.T) {
	key := randomKey(t)
	desc, err := simplicity.NewPkDescriptor(key.PubKey())
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("spend digest"))
	sig, err := schnorr.Sign(key, digest[:])
	require.NoError(t, err)
	witness, err := desc.Satisfy(sig.Serialize())
	require.NoError(t, err)

	t.Run("signature of another digest", func(t *testing.T) {
		otherDigest := sha256.Sum256([]byte("another digest"))
		err := simplicity.VerifySatisfaction(witness, desc.Script(), otherDigest)
		assert.ErrorIs(t, err, simplicity.ErrInvalidSignature)
	})

	t.Run("signature of another key", func(t *testing.T) {
		otherSig, err := schnorr.Sign(randomKey(t), digest[:])
		require.NoError(t, err)
		otherWitness, err := desc.Satisfy(otherSig.Serialize())
		require.NoError(t, err)

		err = simplicity.VerifySatisfaction(otherWitness, desc.Script(), digest)
		assert.ErrorIs(t, err, simplicity.ErrInvalidSignature)
	})

	t.Run("script of another descriptor", func(t *testing.T) {
		otherDesc, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
		require.NoError(t, err)

		err = simplicity.VerifySatisfaction(witness, otherDesc.Script(), digest)
		assert.ErrorIs(t, err, simplicity.ErrInvalidWitness)
	})

	t.Run("truncated stack", func(t *testing.T) {
		err := simplicity.VerifySatisfaction(witness[:2], desc.Script(), digest)
		assert.ErrorIs(t, err, simplicity.ErrInvalidWitness)
	})
}

func TestFailingSatisfy(t *testing.T) {
	desc, err := simplicity.NewPkDescriptor(randomKey(t).PubKey())
	require.NoError(t, err)

	witness, err := desc.Satisfy([]byte{0x01, 0x02})
	assert.Nil(t, witness)
	assert.ErrorIs(t, err, simplicity.ErrInvalidSignature)
}

func randomKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return key
}
