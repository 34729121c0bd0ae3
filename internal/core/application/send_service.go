package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/go-elements/address"

	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
	"github.com/simplicity-wallet/simplicityw/pkg/simplicity"
	"github.com/simplicity-wallet/simplicityw/pkg/wallet"
)

var (
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("invalid destination address")
	// ErrZeroSendAmount ...
	ErrZeroSendAmount = errors.New("amount must be positive")
)

// estimate with room for a change output, a send never produces more
const sendOutputs = 2

const maxSelectionRounds = 10

func (s *walletService) SendToAddress(
	ctx context.Context, addr string, amount uint64,
) (string, error) {
	if amount == 0 {
		return "", ErrZeroSendAmount
	}

	w, params, err := s.getWallet(ctx)
	if err != nil {
		return "", err
	}

	destScript, err := outputScript(addr)
	if err != nil {
		return "", err
	}

	explorerSvc, err := s.explorerFactory(w.RPCEndpoint)
	if err != nil {
		return "", err
	}

	blockHeight, err := s.refresh(ctx, w, params, explorerSvc)
	if err != nil {
		return "", err
	}

	spendable, err := s.utxoRepository.GetSpendableUtxos(ctx)
	if err != nil {
		return "", err
	}

	selected, change, feeAmount, err := selectWithFee(
		spendable, amount, params.PolicyAsset, w.MillisatsPerByte,
	)
	if err != nil {
		return "", err
	}

	outputs := []wallet.TxOutput{{
		Asset:  params.PolicyAsset,
		Value:  amount,
		Script: destScript,
	}}

	walletSvc, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		SigningMnemonic: w.Mnemonic,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}

	if change > s.dustThreshold {
		// change goes to a fresh index, committed before the script it pays
		// to is derived
		var changeIndex uint32
		if err := s.walletRepository.UpdateWallet(
			ctx,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				i, err := w.BumpIndex()
				if err != nil {
					return nil, err
				}
				changeIndex = i
				return w, nil
			},
		); err != nil {
			return "", err
		}

		changeDesc, err := walletSvc.DeriveDescriptor(wallet.DeriveDescriptorOpts{
			DerivationPath: w.DerivationPath(changeIndex),
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
		}
		outputs = append(outputs, wallet.TxOutput{
			Asset:  params.PolicyAsset,
			Value:  change,
			Script: changeDesc.Script(),
		})
	} else if change > 0 {
		// dusty change is donated to the fee
		feeAmount += change
	}

	inputs := make([]wallet.TxInput, 0, len(selected))
	keys := make([]domain.UtxoKey, 0, len(selected))
	for _, u := range selected {
		inputs = append(inputs, wallet.TxInput{
			Txid:           u.TxID,
			VOut:           u.VOut,
			Value:          u.Value,
			Asset:          u.AssetHash,
			DerivationPath: w.DerivationPath(u.DerivationIndex),
		})
		keys = append(keys, u.Key())
	}

	txHex, txid, err := walletSvc.BuildAndSignTransaction(
		wallet.BuildAndSignTransactionOpts{
			Inputs:      inputs,
			Outputs:     outputs,
			FeeAsset:    params.PolicyAsset,
			FeeAmount:   feeAmount,
			GenesisHash: params.GenesisHash,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}

	// the reservation is durable before the tx leaves the wallet, so the
	// race between build and broadcast is closed
	spendID := uuid.New()
	if err := s.utxoRepository.LockUtxos(
		ctx, keys, spendID, txid, blockHeight+s.lockExpiryBlocks,
	); err != nil {
		return "", err
	}

	if _, err := explorerSvc.BroadcastTransaction(txHex); err != nil {
		// inputs stay reserved, the tx may still make it to the chain; the
		// expiry machinery re-offers them otherwise
		log.Warnf("broadcast of tx %s failed: %s", txid, err)
		return "", fmt.Errorf("%w: %v", domain.ErrBroadcast, err)
	}

	log.Infof("sent %d to %s with tx %s", amount, addr, txid)
	return txid, nil
}

// selectWithFee iterates fee estimation and coin selection until the
// number of selected inputs matches the one the fee was estimated for.
func selectWithFee(
	spendable []domain.Utxo,
	amount uint64,
	assetHash string,
	millisatsPerByte uint64,
) ([]domain.Utxo, uint64, uint64, error) {
	numInputs := 1
	for i := 0; i < maxSelectionRounds; i++ {
		feeAmount, err := wallet.EstimateFeeAmount(wallet.EstimateFeeAmountOpts{
			NumInputs:        numInputs,
			NumOutputs:       sendOutputs,
			MillisatsPerByte: millisatsPerByte,
		})
		if err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %v", domain.ErrFeeEstimation, err)
		}

		selected, change, err := domain.SelectUtxos(
			spendable, amount+feeAmount, assetHash,
		)
		if err != nil {
			return nil, 0, 0, err
		}

		if len(selected) <= numInputs {
			return selected, change, feeAmount, nil
		}
		numInputs = len(selected)
	}
	return nil, 0, 0, fmt.Errorf(
		"%w: input set did not converge", domain.ErrFeeEstimation,
	)
}

func outputScript(addr string) ([]byte, error) {
	if script, err := simplicity.TaprootAddressToScript(addr); err == nil {
		return script, nil
	}
	script, err := address.ToOutputScript(addr)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	return script, nil
}
