// Package chain holds the parameters of the supported Elements-style
// networks: address prefixes, the policy (fee) asset and the genesis block
// hash committed to by taproot signature hashes.
package chain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/vulpemventures/go-elements/network"
)

const (
	RegtestNetwork = "regtest"
	TestnetNetwork = "testnet"
)

// ErrUnknownNetwork ...
var ErrUnknownNetwork = errors.New("unknown network")

// Params extends the elements network params with the genesis block hash,
// which is part of the taproot sighash preimage on Elements chains.
type Params struct {
	Name        string
	Net         *network.Network
	PolicyAsset string
	GenesisHash chainhash.Hash
}

var (
	regtestParams Params
	testnetParams Params
)

func init() {
	regtestNet := network.Regtest
	regtestNet.AssetID = "b2e15d0d7a0c94e4e2ce0fe6e8691b9e451377f6e46e8045a86f7c4b5d4f0f23"
	regtestParams = Params{
		Name:        RegtestNetwork,
		Net:         &regtestNet,
		PolicyAsset: regtestNet.AssetID,
		GenesisHash: mustHashFromStr(
			"209577bda6bf4b5804bd46f8621580dd6d4e8bfa2d190e1c50e932492baca07d",
		),
	}

	testnetNet := network.Network{
		Name:         TestnetNetwork,
		Bech32:       "tex",
		Blech32:      "tlq",
		HDPublicKey:  [4]byte{0x04, 0x35, 0x87, 0xcf},
		HDPrivateKey: [4]byte{0x04, 0x35, 0x83, 0x94},
		PubKeyHash:   235,
		ScriptHash:   75,
		Wif:          0xef,
		Confidential: 4,
		AssetID:      "d0289501e11bcc3a1b8fac4e90c6172f46635a3591fcd72e72bdd759837c0be8",
	}
	testnetParams = Params{
		Name:        TestnetNetwork,
		Net:         &testnetNet,
		PolicyAsset: testnetNet.AssetID,
		GenesisHash: mustHashFromStr(
			"fbdb4a014b0e43f8c7ad23b8dede5b7e5cf70446685b16aa889c8cac484c8d40",
		),
	}
}

// GetNetwork returns the params of the network with the given name.
func GetNetwork(name string) (*Params, error) {
	switch name {
	case RegtestNetwork:
		p := regtestParams
		return &p, nil
	case TestnetNetwork:
		p := testnetParams
		return &p, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
}

func mustHashFromStr(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}
