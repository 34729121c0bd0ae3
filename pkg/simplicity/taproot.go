package simplicity

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// LeafVersion is the tapscript leaf version reserved for simplicity
// programs, whose leaf script is the 32-byte CMR.
const LeafVersion byte = 0xbe

// Tagged hash prefixes differ from bitcoin's on Elements chains.
var (
	tagTapLeafElements    = []byte("TapLeaf/elements")
	tagTapTweakElements   = []byte("TapTweak/elements")
	tagTapSighashElements = []byte("TapSighash/elements")
)

// unspendableKeyHex is the BIP341 NUMS point, used as internal key so that
// only the script path can spend.
const unspendableKeyHex = "50929b74c1a04954b78b4b6035e97a5e078a5a0f28ec96d547bfee9ace803ac0"

// UnspendableInternalKey returns the provably unspendable internal key
// shared by every wallet output.
func UnspendableInternalKey() *btcec.PublicKey {
	buf, _ := hex.DecodeString(unspendableKeyHex)
	key, _ := schnorr.ParsePubKey(buf)
	return key
}

// leafHash computes the elements-tagged hash of the simplicity leaf, ie.
// the leaf version followed by the CMR serialized as leaf script.
func leafHash(cmr CMR) chainhash.Hash {
	leaf := make([]byte, 0, 34)
	leaf = append(leaf, LeafVersion)
	leaf = append(leaf, 32)
	leaf = append(leaf, cmr[:]...)
	return *chainhash.TaggedHash(tagTapLeafElements, leaf)
}

// tweakedOutputKey tweaks the internal key with the taproot commitment of
// the given merkle root and returns the output key with the parity of its
// Y coordinate.
func tweakedOutputKey(
	internalKey *btcec.PublicKey, merkleRoot chainhash.Hash,
) (*btcec.PublicKey, byte, error) {
	xonly := schnorr.SerializePubKey(internalKey)
	tweak := chainhash.TaggedHash(tagTapTweakElements, xonly, merkleRoot[:])

	var tweakScalar secp256k1.ModNScalar
	if overflow := tweakScalar.SetBytes((*[32]byte)(tweak)); overflow != 0 {
		return nil, 0, fmt.Errorf("taproot tweak overflows the curve order")
	}
	if tweakScalar.IsZero() {
		return nil, 0, fmt.Errorf("taproot tweak is zero")
	}

	// The tweak is applied to the even-Y lift of the internal key.
	liftedKey, err := schnorr.ParsePubKey(xonly)
	if err != nil {
		return nil, 0, err
	}

	var internalPoint, tweakPoint, outputPoint secp256k1.JacobianPoint
	liftedKey.AsJacobian(&internalPoint)
	secp256k1.ScalarBaseMultNonConst(&tweakScalar, &tweakPoint)
	secp256k1.AddNonConst(&internalPoint, &tweakPoint, &outputPoint)
	if (outputPoint.X.IsZero() && outputPoint.Y.IsZero()) || outputPoint.Z.IsZero() {
		return nil, 0, fmt.Errorf("tweaked output key is the point at infinity")
	}
	outputPoint.ToAffine()

	parity := byte(0)
	if outputPoint.Y.IsOdd() {
		parity = 1
	}
	return secp256k1.NewPublicKey(&outputPoint.X, &outputPoint.Y), parity, nil
}

// controlBlock serializes the script-path control block for a tree made of
// the single simplicity leaf: no merkle path, just the leaf version with
// the output key parity bit and the x-only internal key.
func controlBlock(internalKey *btcec.PublicKey, outputKeyParity byte) []byte {
	out := make([]byte, 0, 33)
	out = append(out, LeafVersion|outputKeyParity)
	out = append(out, schnorr.SerializePubKey(internalKey)...)
	return out
}
