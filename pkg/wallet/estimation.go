package wallet

const (
	// hash + index + sequence + empty scriptsig len
	inBaseSize = 40 + 1
	// explicit asset + explicit value + empty nonce + script len + script
	outTaprootBaseSize = 33 + 9 + 1 + 1 + 34
	// explicit asset + explicit value + empty nonce + empty script
	outFeeBaseSize = 33 + 9 + 1 + 1
	// version + flag + locktime
	txOverheadSize = 9

	// program with its witness block: template header + key + signature
	witnessProgramSize = 1 + 32 + 64
	// stack count + program + leaf script (CMR) + control block, each with
	// its length prefix, plus empty issuance/token proofs and pegin witness
	inWitnessSize = 1 +
		(1 + witnessProgramSize) + (1 + 32) + (1 + 33) +
		1 + 1 + 1
	// null range and surjection proofs of an unblinded output
	outWitnessSize = 1 + 1
)

// EstimateTxSizeOpts is the struct given to EstimateTxSize method
type EstimateTxSizeOpts struct {
	NumInputs  int
	NumOutputs int
}

func (o EstimateTxSizeOpts) validate() error {
	if o.NumInputs <= 0 {
		return ErrEmptyInputs
	}
	if o.NumOutputs <= 0 {
		return ErrEmptyOutputs
	}
	return nil
}

// EstimateTxSize estimates the virtual size of a transaction spending the
// given number of wallet outputs to the given number of unblinded taproot
// outputs, fee output excluded (it is accounted for internally).
func EstimateTxSize(opts EstimateTxSizeOpts) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	baseSize := calcTxSize(false, opts.NumInputs, opts.NumOutputs)
	totalSize := calcTxSize(true, opts.NumInputs, opts.NumOutputs)

	weight := baseSize*3 + totalSize
	vsize := (weight + 3) / 4

	return vsize, nil
}

// EstimateFeeAmountOpts is the struct given to EstimateFeeAmount method
type EstimateFeeAmountOpts struct {
	NumInputs        int
	NumOutputs       int
	MillisatsPerByte uint64
}

func (o EstimateFeeAmountOpts) validate() error {
	if o.MillisatsPerByte == 0 {
		return ErrZeroFeeRate
	}
	return EstimateTxSizeOpts{
		NumInputs:  o.NumInputs,
		NumOutputs: o.NumOutputs,
	}.validate()
}

// EstimateFeeAmount returns the fee amount in satoshis for a transaction
// of the estimated virtual size at the given rate, rounded up so that the
// effective rate never falls below the requested one.
func EstimateFeeAmount(opts EstimateFeeAmountOpts) (uint64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	txSize, err := EstimateTxSize(EstimateTxSizeOpts{
		NumInputs:  opts.NumInputs,
		NumOutputs: opts.NumOutputs,
	})
	if err != nil {
		return 0, err
	}

	return (uint64(txSize)*opts.MillisatsPerByte + 999) / 1000, nil
}

func calcTxSize(withWitness bool, numInputs, numOutputs int) int {
	// the fee output is counted on top of the regular ones
	size := txOverheadSize +
		varIntSerializeSize(uint64(numInputs)) +
		varIntSerializeSize(uint64(numOutputs+1)) +
		numInputs*inBaseSize +
		numOutputs*outTaprootBaseSize +
		outFeeBaseSize

	if withWitness {
		size += numInputs*inWitnessSize + (numOutputs+1)*outWitnessSize
	}
	return size
}
