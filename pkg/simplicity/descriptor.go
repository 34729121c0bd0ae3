// Package simplicity builds and satisfies the taproot outputs of a wallet
// whose script path is a simplicity program leaf. The only supported policy
// template is pk(key): a program that verifies a BIP340 signature of the
// transaction digest against a fixed public key.
package simplicity

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/vulpemventures/go-elements/network"
)

const (
	// PkTemplate identifies the pk(key) policy template.
	PkTemplate = "simplicity-pk"
)

var (
	// ErrUnsupportedPolicy ...
	ErrUnsupportedPolicy = errors.New("unsupported policy template")
	// ErrMissingPublicKey ...
	ErrMissingPublicKey = errors.New("missing public key")
)

// Descriptor is a pk(key) policy instantiated with a concrete key, along
// with its taproot commitment. Instances are immutable.
type Descriptor struct {
	template    string
	key         *btcec.PublicKey
	cmr         CMR
	internalKey *btcec.PublicKey
	outputKey   *btcec.PublicKey
	parity      byte
}

// NewDescriptor instantiates the given policy template with a public key.
// Only PkTemplate is accepted.
func NewDescriptor(template string, key *btcec.PublicKey) (*Descriptor, error) {
	if template != PkTemplate {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPolicy, template)
	}
	if key == nil {
		return nil, ErrMissingPublicKey
	}

	var xonly [32]byte
	copy(xonly[:], schnorr.SerializePubKey(key))
	cmr := pkProgramCMR(xonly)

	internalKey := UnspendableInternalKey()
	leaf := leafHash(cmr)
	outputKey, parity, err := tweakedOutputKey(internalKey, leaf)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		template:    template,
		key:         key,
		cmr:         cmr,
		internalKey: internalKey,
		outputKey:   outputKey,
		parity:      parity,
	}, nil
}

// NewPkDescriptor instantiates the pk(key) template.
func NewPkDescriptor(key *btcec.PublicKey) (*Descriptor, error) {
	return NewDescriptor(PkTemplate, key)
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("sim(pk(%x))", schnorr.SerializePubKey(d.key))
}

// PublicKey returns the key the policy was instantiated with.
func (d *Descriptor) PublicKey() *btcec.PublicKey {
	return d.key
}

// CMR returns the commitment Merkle root of the instantiated program.
func (d *Descriptor) CMR() CMR {
	return d.cmr
}

// LeafHash returns the elements-tagged hash of the simplicity leaf.
func (d *Descriptor) LeafHash() chainhash.Hash {
	return leafHash(d.cmr)
}

// TaprootOutputKey returns the tweaked output key.
func (d *Descriptor) TaprootOutputKey() *btcec.PublicKey {
	return d.outputKey
}

// Script returns the segwit v1 locking script paying to the tweaked
// output key.
func (d *Descriptor) Script() []byte {
	script := make([]byte, 0, 34)
	script = append(script, opTrue, opPushData32)
	script = append(script, schnorr.SerializePubKey(d.outputKey)...)
	return script
}

// ControlBlock returns the script-path control block revealing the
// internal key and the output key parity.
func (d *Descriptor) ControlBlock() []byte {
	return controlBlock(d.internalKey, d.parity)
}

// Address returns the bech32m encoding of the locking script with the
// network's segwit prefix.
func (d *Descriptor) Address(net *network.Network) (string, error) {
	if net == nil {
		return "", errors.New("missing network")
	}
	return encodeSegwitV1Address(
		net.Bech32, schnorr.SerializePubKey(d.outputKey),
	)
}
