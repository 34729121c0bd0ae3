package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/vulpemventures/go-elements/network"

	"github.com/simplicity-wallet/simplicityw/pkg/simplicity"
)

// DeriveSigningKeyPairOpts is the struct given to DeriveSigningKeyPair method
type DeriveSigningKeyPairOpts struct {
	DerivationPath string
}

func (o DeriveSigningKeyPairOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}

	return checkDerivationPath(derivationPath)
}

// DeriveSigningKeyPair derives the key pair of the provided derivation path
func (w *Wallet) DeriveSigningKeyPair(opts DeriveSigningKeyPairOpts) (
	*btcec.PrivateKey,
	*btcec.PublicKey,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if err := w.validate(); err != nil {
		return nil, nil, err
	}

	hdNode, err := hdkeychain.NewKeyFromString(
		base58.Encode(w.signingMasterKey),
	)
	if err != nil {
		return nil, nil, err
	}

	derivationPath, _ := ParseDerivationPath(opts.DerivationPath)
	for _, step := range derivationPath {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, nil, err
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// DeriveDescriptorOpts is the struct given to DeriveDescriptor method
type DeriveDescriptorOpts struct {
	DerivationPath string
}

// DeriveDescriptor instantiates the wallet's policy template with the
// public key at the provided derivation path.
func (w *Wallet) DeriveDescriptor(
	opts DeriveDescriptorOpts,
) (*simplicity.Descriptor, error) {
	_, pubkey, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: opts.DerivationPath,
	})
	if err != nil {
		return nil, err
	}

	return simplicity.NewPkDescriptor(pubkey)
}

// DeriveTaprootAddressOpts is the struct given to DeriveTaprootAddress method
type DeriveTaprootAddressOpts struct {
	DerivationPath string
	Network        *network.Network
}

func (o DeriveTaprootAddressOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}
	if err := checkDerivationPath(derivationPath); err != nil {
		return err
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// DeriveTaprootAddress derives the signing pubkey at the provided path and
// returns the bech32m address of the descriptor instantiated with it.
func (w *Wallet) DeriveTaprootAddress(
	opts DeriveTaprootAddressOpts,
) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	desc, err := w.DeriveDescriptor(DeriveDescriptorOpts{
		DerivationPath: opts.DerivationPath,
	})
	if err != nil {
		return "", err
	}

	return desc.Address(opts.Network)
}

func checkDerivationPath(path DerivationPath) error {
	if len(path) != 3 {
		return ErrInvalidDerivationPathLength
	}
	// first elem must be hardened!
	if path[0] < hdkeychain.HardenedKeyStart {
		return ErrInvalidDerivationPathAccount
	}
	return nil
}
