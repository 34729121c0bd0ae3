package elements

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vulpemventures/go-elements/address"

	"github.com/simplicity-wallet/simplicityw/pkg/explorer"
	"github.com/simplicity-wallet/simplicityw/pkg/simplicity"
)

// GetUnspentsForAddresses scans the confirmed utxo set for the outputs
// locked by the scripts of the given addresses. The scan is stateless, no
// address ever needs to be imported into the node's wallet.
func (e *elements) GetUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	descriptors := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		script, err := outputScript(addr)
		if err != nil {
			return nil, fmt.Errorf("address %s: %w", addr, err)
		}
		descriptors = append(
			descriptors, fmt.Sprintf("raw(%s)", hex.EncodeToString(script)),
		)
	}

	r, err := e.call("scantxoutset", []interface{}{"start", descriptors})
	if err = handleError(err, &r); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	var result scanTxOutSetResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if !result.Success {
		return nil, ErrScanInProgress
	}

	utxos := make([]explorer.Utxo, 0, len(result.Unspents))
	for _, unspent := range result.Unspents {
		utxos = append(utxos, unspent)
	}
	return utxos, nil
}

// outputScript converts an address to its locking script, trying the
// taproot (bech32m) encoding of the wallet's own addresses first and
// falling back to the legacy and segwit v0 encodings for any other
// destination.
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
