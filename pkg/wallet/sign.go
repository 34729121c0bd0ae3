package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// SignSchnorrOpts is the struct given to SignSchnorr method
type SignSchnorrOpts struct {
	DerivationPath string
	Digest         [32]byte
}

func (o SignSchnorrOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}
	if err := checkDerivationPath(derivationPath); err != nil {
		return err
	}
	if o.Digest == [32]byte{} {
		return ErrNullDigest
	}
	return nil
}

// SignSchnorr produces a 64-byte BIP340 signature of the given digest with
// the key at the given derivation path. The signature is verified against
// the derived pubkey before being returned.
func (w *Wallet) SignSchnorr(opts SignSchnorrOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	prvkey, pubkey, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: opts.DerivationPath,
	})
	if err != nil {
		return nil, err
	}

	signature, err := schnorr.Sign(prvkey, opts.Digest[:])
	if err != nil {
		return nil, err
	}

	if !signature.Verify(opts.Digest[:], pubkey) {
		return nil, ErrInvalidSignature
	}

	return signature.Serialize(), nil
}
