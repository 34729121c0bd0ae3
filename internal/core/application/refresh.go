package application

import (
	"context"
	"encoding/hex"

	log "github.com/sirupsen/logrus"

	"github.com/simplicity-wallet/simplicityw/internal/chain"
	"github.com/simplicity-wallet/simplicityw/internal/core/domain"
	"github.com/simplicity-wallet/simplicityw/pkg/explorer"
)

// refresh reconciles the local ledger against the node's utxo set for the
// wallet's disclosed addresses and returns the current block height.
//
// Outputs reported by the node and unknown to the ledger are added.
// Outputs the ledger knows and the node no longer reports were consumed:
// unlocked ones are marked spent right away, locked ones only once the
// spend that reserved them confirms. A reservation whose spend never
// confirms is released after its expiry height, re-offering the outputs
// for selection. A spent output never comes back, whatever the node says.
func (s *walletService) refresh(
	ctx context.Context,
	w *domain.Wallet,
	params *chain.Params,
	explorerSvc explorer.Service,
) (uint64, error) {
	height, err := explorerSvc.GetBlockHeight()
	if err != nil {
		return 0, err
	}
	blockHeight := uint64(height)

	byScript, addresses, err := s.deriveOwnedScripts(w, params)
	if err != nil {
		return 0, err
	}
	if len(addresses) <= 0 {
		return blockHeight, nil
	}

	unspents, err := explorerSvc.GetUnspentsForAddresses(addresses)
	if err != nil {
		return 0, err
	}

	known, err := s.utxoRepository.GetAllUtxos(ctx)
	if err != nil {
		return 0, err
	}
	knownKeys := make(map[domain.UtxoKey]struct{}, len(known))
	for _, u := range known {
		knownKeys[u.Key()] = struct{}{}
	}

	nodeView := make(map[domain.UtxoKey]explorer.Utxo, len(unspents))
	newUtxos := make([]domain.Utxo, 0, len(unspents))
	for _, u := range unspents {
		key := domain.UtxoKey{TxID: u.Hash(), VOut: u.Index()}
		nodeView[key] = u
		if _, ok := knownKeys[key]; ok {
			continue
		}
		owned, ok := byScript[hex.EncodeToString(u.Script())]
		if !ok {
			continue
		}
		newUtxos = append(newUtxos, domain.Utxo{
			TxID:            u.Hash(),
			VOut:            u.Index(),
			Value:           u.Value(),
			AssetHash:       u.Asset(),
			ScriptPubKey:    u.Script(),
			Address:         owned.address,
			DerivationIndex: owned.derivationIndex,
			BlockHeight:     u.BlockHeight(),
			Confirmed:       u.IsConfirmed(),
		})
	}
	if len(newUtxos) > 0 {
		if err := s.utxoRepository.AddUtxos(ctx, newUtxos); err != nil {
			return 0, err
		}
		log.Debugf("refresh: added %d new utxos", len(newUtxos))
	}

	for _, u := range known {
		if u.IsSpent() {
			continue
		}
		nodeUtxo, present := nodeView[u.Key()]

		if u.IsLocked() {
			if err := s.reconcileLocked(ctx, u, blockHeight, present, explorerSvc); err != nil {
				return 0, err
			}
			continue
		}

		if !present {
			// consumed outside of a pending spend, never re-offered
			if err := s.utxoRepository.SpendUtxos(
				ctx, []domain.UtxoKey{u.Key()}, "",
			); err != nil {
				return 0, err
			}
			continue
		}

		if !u.IsConfirmed() && nodeUtxo.IsConfirmed() {
			if err := s.utxoRepository.ConfirmUtxos(
				ctx, []domain.UtxoKey{u.Key()}, nodeUtxo.BlockHeight(),
			); err != nil {
				return 0, err
			}
		}
	}

	return blockHeight, nil
}

func (s *walletService) reconcileLocked(
	ctx context.Context,
	u domain.Utxo,
	blockHeight uint64,
	presentInNodeView bool,
	explorerSvc explorer.Service,
) error {
	if u.SpentByTxID != "" {
		confirmed, err := explorerSvc.IsTransactionConfirmed(u.SpentByTxID)
		if err == nil && confirmed {
			return s.utxoRepository.SpendUtxos(
				ctx, []domain.UtxoKey{u.Key()}, u.SpentByTxID,
			)
		}
	}

	if u.IsLockExpired(blockHeight) {
		if !presentInNodeView {
			// gone from the utxo set without its spend confirming under our
			// txid, consumed anyway
			return s.utxoRepository.SpendUtxos(
				ctx, []domain.UtxoKey{u.Key()}, "",
			)
		}
		log.Debugf(
			"refresh: releasing expired lock on utxo %s:%d", u.TxID, u.VOut,
		)
		return s.utxoRepository.UnlockUtxos(ctx, []domain.UtxoKey{u.Key()})
	}

	return nil
}
