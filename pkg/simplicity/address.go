package simplicity

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	opTrue       = 0x51
	opPushData32 = 0x20
)

// ErrInvalidTaprootAddress ...
var ErrInvalidTaprootAddress = errors.New("invalid taproot address")

// encodeSegwitV1Address bech32m-encodes a 32-byte witness program with the
// given human readable prefix.
func encodeSegwitV1Address(hrp string, program []byte) (string, error) {
	if len(program) != 32 {
		return "", fmt.Errorf("invalid witness program length %d", len(program))
	}
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, len(converted)+1)
	data = append(data, 0x01)
	data = append(data, converted...)
	return bech32.EncodeM(hrp, data)
}

// TaprootAddressToScript decodes a bech32m segwit v1 address into its
// locking script. The prefix is not checked here, callers compare it with
// the one of their network.
func TaprootAddressToScript(addr string) ([]byte, error) {
	_, data, version, err := bech32.DecodeGeneric(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaprootAddress, err)
	}
	if version != bech32.VersionM {
		return nil, fmt.Errorf("%w: not bech32m encoded", ErrInvalidTaprootAddress)
	}
	if len(data) < 1 || data[0] != 0x01 {
		return nil, fmt.Errorf("%w: not a segwit v1 address", ErrInvalidTaprootAddress)
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaprootAddress, err)
	}
	if len(program) != 32 {
		return nil, fmt.Errorf(
			"%w: invalid witness program length %d",
			ErrInvalidTaprootAddress, len(program),
		)
	}
	script := make([]byte, 0, 34)
	script = append(script, opTrue, opPushData32)
	script = append(script, program...)
	return script, nil
}
