package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/vulpemventures/go-elements/transaction"

	"github.com/simplicity-wallet/simplicityw/pkg/bufferutil"
	"github.com/simplicity-wallet/simplicityw/pkg/simplicity"
)

// TxInput is an output owned by the wallet to be spent, along with the
// derivation path of the key its descriptor was instantiated with.
type TxInput struct {
	Txid           string
	VOut           uint32
	Value          uint64
	Asset          string
	DerivationPath string
}

func (i TxInput) validate() error {
	if !isValidTxid(i.Txid) {
		return ErrInvalidInputTxid
	}
	if i.Value == 0 {
		return ErrZeroInputValue
	}
	if !isValidAsset(i.Asset) {
		return ErrInvalidInputAsset
	}
	derivationPath, err := ParseDerivationPath(i.DerivationPath)
	if err != nil {
		return err
	}
	return checkDerivationPath(derivationPath)
}

// TxOutput is a recipient of the transaction to be built.
type TxOutput struct {
	Asset  string
	Value  uint64
	Script []byte
}

func (o TxOutput) validate() error {
	if !isValidAsset(o.Asset) {
		return ErrInvalidOutputAsset
	}
	if o.Value == 0 {
		return ErrZeroOutputValue
	}
	if len(o.Script) <= 0 {
		return ErrNullOutputScript
	}
	return nil
}

// BuildAndSignTransactionOpts is the struct given to BuildAndSignTransaction method
type BuildAndSignTransactionOpts struct {
	Inputs      []TxInput
	Outputs     []TxOutput
	FeeAsset    string
	FeeAmount   uint64
	GenesisHash chainhash.Hash
}

func (o BuildAndSignTransactionOpts) validate() error {
	if len(o.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	if len(o.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	for _, in := range o.Inputs {
		if err := in.validate(); err != nil {
			return err
		}
	}
	for _, out := range o.Outputs {
		if err := out.validate(); err != nil {
			return err
		}
	}
	if !isValidAsset(o.FeeAsset) {
		return ErrInvalidOutputAsset
	}
	if o.FeeAmount == 0 {
		return ErrZeroFeeAmount
	}
	return nil
}

// BuildAndSignTransaction assembles the transaction spending the given
// wallet inputs to the given outputs plus the explicit fee output, then
// signs every input with a taproot script-path satisfaction of its
// descriptor. It returns the serialized transaction in hex along with its
// txid.
func (w *Wallet) BuildAndSignTransaction(
	opts BuildAndSignTransactionOpts,
) (string, string, error) {
	if err := opts.validate(); err != nil {
		return "", "", err
	}
	if err := w.validate(); err != nil {
		return "", "", err
	}

	descriptors := make([]*simplicity.Descriptor, 0, len(opts.Inputs))
	for _, in := range opts.Inputs {
		desc, err := w.DeriveDescriptor(DeriveDescriptorOpts{
			DerivationPath: in.DerivationPath,
		})
		if err != nil {
			return "", "", err
		}
		descriptors = append(descriptors, desc)
	}

	tx := transaction.NewTx(2)

	prevouts := make([]*transaction.TxOutput, 0, len(opts.Inputs))
	for i, in := range opts.Inputs {
		hash, err := bufferutil.TxIDToBytes(in.Txid)
		if err != nil {
			return "", "", err
		}
		tx.Inputs = append(tx.Inputs, transaction.NewTxInput(hash, in.VOut))

		prevout, err := newTxOutput(in.Asset, in.Value, descriptors[i].Script())
		if err != nil {
			return "", "", err
		}
		prevouts = append(prevouts, prevout)
	}

	for _, out := range opts.Outputs {
		txOut, err := newTxOutput(out.Asset, out.Value, out.Script)
		if err != nil {
			return "", "", err
		}
		tx.Outputs = append(tx.Outputs, txOut)
	}
	// fee is an explicit output with an empty script, always the last one
	feeOut, err := newTxOutput(opts.FeeAsset, opts.FeeAmount, []byte{})
	if err != nil {
		return "", "", err
	}
	tx.Outputs = append(tx.Outputs, feeOut)

	for i, in := range opts.Inputs {
		desc := descriptors[i]
		digest, err := simplicity.SigHash(
			tx, i, prevouts, desc.LeafHash(), opts.GenesisHash,
		)
		if err != nil {
			return "", "", err
		}

		signature, err := w.SignSchnorr(SignSchnorrOpts{
			DerivationPath: in.DerivationPath,
			Digest:         digest,
		})
		if err != nil {
			return "", "", fmt.Errorf("failed to sign input %d: %w", i, err)
		}

		witness, err := desc.Satisfy(signature)
		if err != nil {
			return "", "", err
		}
		if err := simplicity.VerifySatisfaction(
			witness, desc.Script(), digest,
		); err != nil {
			return "", "", fmt.Errorf(
				"satisfaction of input %d does not verify: %w", i, err,
			)
		}
		tx.Inputs[i].Witness = witness
	}

	txHex, err := tx.ToHex()
	if err != nil {
		return "", "", err
	}
	return txHex, tx.TxHash().String(), nil
}
