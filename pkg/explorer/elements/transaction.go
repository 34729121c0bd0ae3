package elements

import (
	"encoding/json"
	"fmt"
)

// GetTransactionHex returns the hex of the transaction identified by its
// hash by calling the getrawtransaction RPC
func (e *elements) GetTransactionHex(txid string) (string, error) {
	r, err := e.call("getrawtransaction", []interface{}{txid})
	if err = handleError(err, &r); err != nil {
		return "", fmt.Errorf("rawtx: %w", err)
	}

	var txhex string
	if err := json.Unmarshal(r.Result, &txhex); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	return txhex, nil
}

// IsTransactionConfirmed returns whether a tx is already confirmed by
// calling the getrawtransaction RPC in verbose mode. The node's wallet is
// never involved.
func (e *elements) IsTransactionConfirmed(txid string) (bool, error) {
	r, err := e.call("getrawtransaction", []interface{}{txid, 1})
	if err = handleError(err, &r); err != nil {
		return false, fmt.Errorf("rawtx: %w", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(r.Result, &data); err != nil {
		return false, fmt.Errorf("unmarshal: %w", err)
	}
	confirmations, ok := data["confirmations"].(float64)
	if !ok {
		return false, nil
	}
	return confirmations > 0, nil
}

// BroadcastTransaction submits the given tx in hex format to the mempool
// by calling the sendrawtransaction RPC and returns its tx hash.
func (e *elements) BroadcastTransaction(txhex string) (string, error) {
	r, err := e.call("sendrawtransaction", []interface{}{txhex})
	if err = handleError(err, &r); err != nil {
		return "", fmt.Errorf("broadcast: %w", err)
	}

	var txid string
	if err := json.Unmarshal(r.Result, &txid); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	return txid, nil
}
