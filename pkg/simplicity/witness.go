package simplicity

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// Witness stack layout of a script-path spend: the program with its
// witness block filled in, the CMR serialized as leaf script and the
// control block.
const (
	witnessStackSize = 3

	programTemplateTagPk byte = 0x01
	programHeaderSize         = 1 + 32
	satisfiedProgramSize      = programHeaderSize + schnorr.SignatureSize
)

var (
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidWitness ...
	ErrInvalidWitness = errors.New("invalid witness stack")
)

// programBytes serializes the program commitment: the template tag
// followed by the x-only key the template was instantiated with.
func (d *Descriptor) programBytes() []byte {
	out := make([]byte, 0, programHeaderSize)
	out = append(out, programTemplateTagPk)
	out = append(out, schnorr.SerializePubKey(d.key)...)
	return out
}

// Satisfy assembles the witness stack spending an output locked by this
// descriptor, given the BIP340 signature of the input's digest.
func (d *Descriptor) Satisfy(sig []byte) ([][]byte, error) {
	if len(sig) != schnorr.SignatureSize {
		return nil, fmt.Errorf(
			"%w: length must be %d, got %d",
			ErrInvalidSignature, schnorr.SignatureSize, len(sig),
		)
	}
	program := d.programBytes()
	program = append(program, sig...)
	return [][]byte{program, d.cmr.Bytes(), d.ControlBlock()}, nil
}

// VerifySatisfaction checks that a witness stack satisfies the output
// locked by the given script for the given input digest: the control block
// must commit the revealed leaf to the output key and the program's
// witness block must carry a valid signature of the digest under the
// committed key.
func VerifySatisfaction(witness [][]byte, script []byte, digest [32]byte) error {
	if len(witness) != witnessStackSize {
		return fmt.Errorf(
			"%w: expected %d elements, got %d",
			ErrInvalidWitness, witnessStackSize, len(witness),
		)
	}
	program, leafScript, ctrlBlock := witness[0], witness[1], witness[2]

	if len(leafScript) != 32 {
		return fmt.Errorf("%w: malformed leaf script", ErrInvalidWitness)
	}
	if len(ctrlBlock) != 33 {
		return fmt.Errorf("%w: malformed control block", ErrInvalidWitness)
	}
	if ctrlBlock[0]&0xfe != LeafVersion {
		return fmt.Errorf("%w: unexpected leaf version", ErrInvalidWitness)
	}
	if len(script) != 34 || script[0] != opTrue || script[1] != opPushData32 {
		return fmt.Errorf("%w: not a segwit v1 script", ErrInvalidWitness)
	}

	// The output key must be the internal key tweaked with the revealed
	// leaf, with the parity the control block claims.
	internalKey, err := schnorr.ParsePubKey(ctrlBlock[1:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWitness, err)
	}
	var cmr CMR
	copy(cmr[:], leafScript)
	outputKey, parity, err := tweakedOutputKey(internalKey, leafHash(cmr))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWitness, err)
	}
	if parity != ctrlBlock[0]&0x01 {
		return fmt.Errorf("%w: control block parity mismatch", ErrInvalidWitness)
	}
	if !bytes.Equal(schnorr.SerializePubKey(outputKey), script[2:]) {
		return fmt.Errorf("%w: leaf not committed by output key", ErrInvalidWitness)
	}

	// Decode the program and check its commitment matches the leaf.
	if len(program) != satisfiedProgramSize {
		return fmt.Errorf("%w: malformed program", ErrInvalidWitness)
	}
	if program[0] != programTemplateTagPk {
		return fmt.Errorf("%w: %#x", ErrUnsupportedPolicy, program[0])
	}
	var xonly [32]byte
	copy(xonly[:], program[1:programHeaderSize])
	committed := pkProgramCMR(xonly)
	if committed != cmr {
		return fmt.Errorf("%w: program does not match leaf", ErrInvalidWitness)
	}

	key, err := schnorr.ParsePubKey(xonly[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWitness, err)
	}
	sig, err := schnorr.ParseSignature(program[programHeaderSize:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest[:], key) {
		return ErrInvalidSignature
	}
	return nil
}
