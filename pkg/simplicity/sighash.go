package simplicity

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/vulpemventures/go-elements/transaction"
)

// Taproot sighash fields fixed by the wallet: SIGHASH_ALL, script-path
// spend without annex, BIP342 key version zero and no executed
// OP_CODESEPARATOR.
const (
	sigHashTypeAll      byte = 0x00
	spendTypeScriptPath byte = 0x02
	tapKeyVersion       byte = 0x00
	codeSeparatorPos         = uint32(0xffffffff)
)

// ErrMissingPrevouts ...
var ErrMissingPrevouts = errors.New("one prevout per transaction input is required")

// SigHash computes the taproot script-path signature digest of the input
// at the given index. Elements chains commit to the genesis block hash and
// to the explicit asset/value pairs of all prevouts.
func SigHash(
	tx *transaction.Transaction, inIndex int,
	prevouts []*transaction.TxOutput,
	leaf chainhash.Hash, genesisHash chainhash.Hash,
) ([32]byte, error) {
	var digest [32]byte
	if tx == nil || inIndex < 0 || inIndex >= len(tx.Inputs) {
		return digest, fmt.Errorf("input index %d out of range", inIndex)
	}
	if len(prevouts) != len(tx.Inputs) {
		return digest, ErrMissingPrevouts
	}

	buf := &bytes.Buffer{}
	buf.Write(genesisHash[:])
	buf.Write(genesisHash[:])
	buf.WriteByte(sigHashTypeAll)
	binary.Write(buf, binary.LittleEndian, tx.Version)
	binary.Write(buf, binary.LittleEndian, tx.Locktime)
	buf.Write(hashOutpoints(tx.Inputs))
	buf.Write(hashPrevoutAssetsAmounts(prevouts))
	buf.Write(hashPrevoutScripts(prevouts))
	buf.Write(hashSequences(tx.Inputs))
	buf.Write(hashIssuances(tx.Inputs))
	buf.Write(hashOutputs(tx.Outputs))
	buf.WriteByte(spendTypeScriptPath)
	binary.Write(buf, binary.LittleEndian, uint32(inIndex))
	buf.Write(leaf[:])
	buf.WriteByte(tapKeyVersion)
	binary.Write(buf, binary.LittleEndian, codeSeparatorPos)

	return *chainhash.TaggedHash(tagTapSighashElements, buf.Bytes()), nil
}

func hashOutpoints(ins []*transaction.TxInput) []byte {
	buf := &bytes.Buffer{}
	for _, in := range ins {
		buf.Write(in.Hash)
		binary.Write(buf, binary.LittleEndian, in.Index)
	}
	hash := sha256.Sum256(buf.Bytes())
	return hash[:]
}

func hashPrevoutAssetsAmounts(prevouts []*transaction.TxOutput) []byte {
	buf := &bytes.Buffer{}
	for _, out := range prevouts {
		buf.Write(out.Asset)
		buf.Write(out.Value)
	}
	hash := sha256.Sum256(buf.Bytes())
	return hash[:]
}

func hashPrevoutScripts(prevouts []*transaction.TxOutput) []byte {
	buf := &bytes.Buffer{}
	for _, out := range prevouts {
		wire.WriteVarInt(buf, 0, uint64(len(out.Script)))
		buf.Write(out.Script)
	}
	hash := sha256.Sum256(buf.Bytes())
	return hash[:]
}

func hashSequences(ins []*transaction.TxInput) []byte {
	buf := &bytes.Buffer{}
	for _, in := range ins {
		binary.Write(buf, binary.LittleEndian, in.Sequence)
	}
	hash := sha256.Sum256(buf.Bytes())
	return hash[:]
}

func hashIssuances(ins []*transaction.TxInput) []byte {
	buf := &bytes.Buffer{}
	for _, in := range ins {
		if in.Issuance != nil {
			buf.Write(in.Issuance.AssetBlindingNonce)
			buf.Write(in.Issuance.AssetEntropy)
			buf.Write(in.Issuance.AssetAmount)
			buf.Write(in.Issuance.TokenAmount)
		} else {
			buf.WriteByte(0x00)
		}
	}
	hash := sha256.Sum256(buf.Bytes())
	return hash[:]
}

func hashOutputs(outs []*transaction.TxOutput) []byte {
	buf := &bytes.Buffer{}
	for _, out := range outs {
		buf.Write(out.Asset)
		buf.Write(out.Value)
		if len(out.Nonce) > 0 {
			buf.Write(out.Nonce)
		} else {
			buf.WriteByte(0x00)
		}
		wire.WriteVarInt(buf, 0, uint64(len(out.Script)))
		buf.Write(out.Script)
	}
	hash := sha256.Sum256(buf.Bytes())
	return hash[:]
}
