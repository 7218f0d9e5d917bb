package curve

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// contextString is the FROST ciphersuite label for this build, matching
// spec.md §4.1's requirement that every hash-to-scalar call absorb a fixed
// domain tag. It is the BIP-340 specialization of the FROST(secp256k1,
// SHA-256) ciphersuite name.
const contextString = "FROST-secp256k1-BIP340-v1"

// HashToScalar implements H_s(domain, bytes...) from spec.md §4.1: a
// BIP-340-style tagged hash reduced modulo the group order. domain MUST be
// one of the fixed ASCII labels used at each call site ("pop" for proofs of
// knowledge, "rho" for binding factors, "challenge" for the signing
// challenge) and MUST differ across use sites.
//
// This is the single hashing primitive backing every H1-H5 use in the
// teacher's ciphersuite (previously reimplemented three times across
// frost/hash.go, roast/hash.go, and the top-level hash.go); consolidating it
// here removes that duplication.
func HashToScalar(domain string, parts ...[]byte) *Scalar {
	digest := taggedHash(domain, parts...)
	s := new(Scalar)
	overflow := s.inner.SetByteSlice(digest[:])
	if overflow {
		// Reducing a 256-bit tagged hash modulo the secp256k1 order biases
		// the result by at most 2^-128, as noted in BIP-340; SetByteSlice
		// already reduces mod q in that case, so no further action is
		// needed here beyond documenting it.
		_ = overflow
	}
	return s
}

// HashToBytes implements the byte-string-valued hashes of spec.md §4.1
// (H4/H5 in the teacher's ciphersuite): a tagged hash with no scalar
// reduction, for byte-string digests such as a message hash.
func HashToBytes(domain string, parts ...[]byte) []byte {
	digest := taggedHash(domain, parts...)
	out := make([]byte, len(digest))
	copy(out, digest[:])
	return out
}

// taggedHash implements the BIP-340 tagged hash construction:
// SHA256(SHA256(tag) || SHA256(tag) || msg).
func taggedHash(domain string, parts ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(contextString + "/" + domain))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Order returns the secp256k1 group order q.
func Order() []byte {
	n := secp256k1.S256().N
	b := make([]byte, ScalarSize)
	n.FillBytes(b)
	return b
}
