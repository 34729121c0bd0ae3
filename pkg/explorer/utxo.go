package explorer

import (
	"github.com/vulpemventures/go-elements/transaction"

	"github.com/simplicity-wallet/simplicityw/pkg/bufferutil"
)

type witnessUtxo struct {
	UHash        string
	UIndex       uint32
	UValue       uint64
	UAsset       string
	UScript      []byte
	UBlockHeight uint64
	UConfirmed   bool
}

// NewWitnessUtxo returns an unconfidential Utxo with the given fields, used
// by tests and by stores that need to rebuild utxos from their own records.
func NewWitnessUtxo(
	hash string,
	index uint32,
	value uint64,
	asset string,
	script []byte,
	blockHeight uint64,
	confirmed bool,
) Utxo {
	return witnessUtxo{
		UHash:        hash,
		UIndex:       index,
		UValue:       value,
		UAsset:       asset,
		UScript:      script,
		UBlockHeight: blockHeight,
		UConfirmed:   confirmed,
	}
}

func (wu witnessUtxo) Hash() string {
	return wu.UHash
}

func (wu witnessUtxo) Index() uint32 {
	return wu.UIndex
}

func (wu witnessUtxo) Value() uint64 {
	return wu.UValue
}

func (wu witnessUtxo) Asset() string {
	return wu.UAsset
}

func (wu witnessUtxo) Script() []byte {
	return wu.UScript
}

func (wu witnessUtxo) BlockHeight() uint64 {
	return wu.UBlockHeight
}

func (wu witnessUtxo) IsConfirmed() bool {
	return wu.UConfirmed
}

func (wu witnessUtxo) Parse() (*transaction.TxInput, *transaction.TxOutput, error) {
	inHash, err := bufferutil.TxIDToBytes(wu.UHash)
	if err != nil {
		return nil, nil, err
	}
	input := transaction.NewTxInput(inHash, wu.UIndex)

	asset, err := bufferutil.AssetHashToBytes(wu.UAsset)
	if err != nil {
		return nil, nil, err
	}
	value, err := bufferutil.ValueToBytes(wu.UValue)
	if err != nil {
		return nil, nil, err
	}
	witnessUtxo := transaction.NewTxOutput(asset, value, wu.UScript)

	return input, witnessUtxo, nil
}
