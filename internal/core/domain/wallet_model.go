package domain

// DefaultDescriptorTemplate is the policy template every wallet is
// initialized with. One instance of it is derived per address index.
const DefaultDescriptorTemplate = "simplicity-pk"

// Wallet is the single aggregate holding the root secret and the
// provisioning state of the descriptors derived from it. NextIndex is the
// lowest derivation index never disclosed to anyone: it only grows, and a
// bump must be persisted before the address derived from the old value is
// handed out.
type Wallet struct {
	Mnemonic           []string
	DescriptorTemplate string
	NextIndex          uint32
	MillisatsPerByte   uint64
	Network            string
	RPCEndpoint        string
}

// NewWallet returns a Wallet with the given root mnemonic, starting
// provisioning from index zero.
func NewWallet(
	mnemonic []string, millisatsPerByte uint64, network, rpcEndpoint string,
) (*Wallet, error) {
	if len(mnemonic) <= 0 {
		return nil, ErrNullMnemonic
	}
	return &Wallet{
		Mnemonic:           mnemonic,
		DescriptorTemplate: DefaultDescriptorTemplate,
		NextIndex:          0,
		MillisatsPerByte:   millisatsPerByte,
		Network:            network,
		RPCEndpoint:        rpcEndpoint,
	}, nil
}
