package simplicity

import (
	"crypto/sha256"
	"encoding/hex"
)

// CMR is the commitment Merkle root of a program. It commits to the
// program's structure but not to its witness data, so the same root is
// computed at address time and at spend time.
type CMR [32]byte

func (c CMR) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, c[:])
	return out
}

func (c CMR) String() string {
	return hex.EncodeToString(c[:])
}

const (
	commitmentTagPrefix = "Simplicity\x1fCommitment\x1f"
	jetTagPrefix        = "Simplicity\x1fJet"
)

// taggedHash is the BIP340-style tagged hash used for every node of the
// commitment tree: SHA256(SHA256(tag) || SHA256(tag) || msgs...).
func taggedHash(tag string, msgs ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, msg := range msgs {
		h.Write(msg)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func compCMR(left, right CMR) CMR {
	return CMR(taggedHash(commitmentTagPrefix+"comp", left[:], right[:]))
}

func pairCMR(left, right CMR) CMR {
	return CMR(taggedHash(commitmentTagPrefix+"pair", left[:], right[:]))
}

// witnessCMR commits to the presence of a witness node only. The witness
// data itself is excluded from the commitment.
func witnessCMR() CMR {
	return CMR(taggedHash(commitmentTagPrefix + "witness"))
}

func wordCMR(value [32]byte) CMR {
	return CMR(taggedHash(commitmentTagPrefix+"word", value[:]))
}

func jetCMR(name string) CMR {
	return CMR(taggedHash(jetTagPrefix, []byte(name)))
}

// pkProgramCMR computes the commitment root of the key-spend program
// template: feed the transaction digest and the fixed public key together
// with the (uncommitted) signature witness into the bip340 verification jet.
func pkProgramCMR(xonlyKey [32]byte) CMR {
	digest := jetCMR("sig_all_hash")
	keyAndSig := pairCMR(wordCMR(xonlyKey), witnessCMR())
	input := pairCMR(digest, keyAndSig)
	return compCMR(input, jetCMR("bip_0340_verify"))
}
