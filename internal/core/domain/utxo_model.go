package domain

import (
	"github.com/google/uuid"
)

// UtxoKey represents the ID of a Utxo, composed by its txid and vout.
type UtxoKey struct {
	TxID string
	VOut uint32
}

// Utxo is the data structure representing an output owned by one of the
// wallet's descriptors, with its ledger markers: confirmed/unconfirmed,
// spent, and pending-spent (locked) with the id of the spend that consumed
// it and the block height its lock expires at.
type Utxo struct {
	TxID            string
	VOut            uint32
	Value           uint64
	AssetHash       string
	ScriptPubKey    []byte
	Address         string
	DerivationIndex uint32
	BlockHeight     uint64
	Spent           bool
	SpentByTxID     string
	Locked          bool
	LockedBy        *uuid.UUID
	LockExpiry      uint64
	Confirmed       bool
}
