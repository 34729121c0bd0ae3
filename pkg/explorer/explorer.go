package explorer

import (
	"github.com/vulpemventures/go-elements/transaction"
)

// Utxo represents a transaction output in the elements chain.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Asset() string
	Script() []byte
	BlockHeight() uint64
	IsConfirmed() bool
	Parse() (*transaction.TxInput, *transaction.TxOutput, error)
}

// Service is representation of the chain view offered by a full node: it
// allows to scan the utxo set for the wallet's scripts, to check tx
// confirmations and to broadcast transactions.
type Service interface {
	// GetUnspentsForAddresses scans the utxo set for the outputs locked by
	// the scripts of the given list of addresses.
	GetUnspentsForAddresses(addresses []string) (unspents []Utxo, err error)
	// GetTransactionHex fetches the transaction in hex format given its hash.
	GetTransactionHex(txid string) (txhex string, err error)
	// IsTransactionConfirmed returns whether the tx identified by its hash has
	// been included in the blockchain.
	IsTransactionConfirmed(txid string) (confirmed bool, err error)
	// BroadcastTransaction attempts to add the given tx in hex format to the
	// mempool and returns its tx hash.
	BroadcastTransaction(txhex string) (txid string, err error)
	// GetBlockHeight returns the number of blocks of the blockchain.
	GetBlockHeight() (int, error)
}
