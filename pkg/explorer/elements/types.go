package elements

import (
	"encoding/hex"
	"errors"
	"math"

	"github.com/vulpemventures/go-elements/transaction"

	"github.com/simplicity-wallet/simplicityw/pkg/bufferutil"
)

var (
	// ErrMissingRPCEndpoint ...
	ErrMissingRPCEndpoint = errors.New("missing rpc endpoint")
	// ErrMissingRPCHost ...
	ErrMissingRPCHost = errors.New("endpoint must contain the host")
	// ErrMissingRPCPort ...
	ErrMissingRPCPort = errors.New("endpoint must contain the port")
	// ErrMissingRPCUser ...
	ErrMissingRPCUser = errors.New("endpoint must contain the user")
	// ErrMissingRPCPassword ...
	ErrMissingRPCPassword = errors.New("endpoint must contain the password")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not valid")
	// ErrScanInProgress ...
	ErrScanInProgress = errors.New("another utxo set scan is in progress")
)

// scanTxOutSetResult is the response of the scantxoutset RPC. Its height
// is the tip the scan was performed at, the unspents' ones are the blocks
// that included them.
type scanTxOutSetResult struct {
	Success  bool              `json:"success"`
	Height   uint64            `json:"height"`
	Unspents []elementsUnspent `json:"unspents"`
}

type elementsUnspent struct {
	UTxID         string  `json:"txid"`
	UVout         uint32  `json:"vout"`
	UScriptPubKey string  `json:"scriptPubKey"`
	UAmount       float64 `json:"amount"`
	UAsset        string  `json:"asset"`
	UHeight       uint64  `json:"height"`
}

func (eu elementsUnspent) Hash() string {
	return eu.UTxID
}

func (eu elementsUnspent) Index() uint32 {
	return eu.UVout
}

// Value converts the node's decimal amount to satoshis. Rounding keeps
// amounts whose float representation falls a hair short of the true
// satoshi value from being truncated one unit low.
func (eu elementsUnspent) Value() uint64 {
	return uint64(math.Round(eu.UAmount * math.Pow10(8)))
}

func (eu elementsUnspent) Asset() string {
	return eu.UAsset
}

func (eu elementsUnspent) Script() []byte {
	script, _ := hex.DecodeString(eu.UScriptPubKey)
	return script
}

func (eu elementsUnspent) BlockHeight() uint64 {
	return eu.UHeight
}

// scantxoutset only returns outputs of the confirmed utxo set.
func (eu elementsUnspent) IsConfirmed() bool {
	return eu.UHeight > 0
}

func (eu elementsUnspent) Parse() (*transaction.TxInput, *transaction.TxOutput, error) {
	inHash, err := bufferutil.TxIDToBytes(eu.UTxID)
	if err != nil {
		return nil, nil, err
	}
	input := transaction.NewTxInput(inHash, eu.UVout)

	asset, err := bufferutil.AssetHashToBytes(eu.UAsset)
	if err != nil {
		return nil, nil, err
	}
	value, err := bufferutil.ValueToBytes(eu.Value())
	if err != nil {
		return nil, nil, err
	}
	witnessUtxo := transaction.NewTxOutput(asset, value, eu.Script())

	return input, witnessUtxo, nil
}
