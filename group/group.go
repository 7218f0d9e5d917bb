// Package group implements spec.md §4.10: stateless verification of a
// final aggregated FROST signature. Grounded on the teacher's top-level
// verify (bip340.go) and frost/bip340.go's VerifySignature, generalized
// from the teacher's BIP-340 x-only verification to the FROST group
// signature equation z·G == R + H_s("challenge", R, Y, m)·Y.
package group

import (
	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/wire"
)

// VerifySignature implements spec.md §4.10: given (R, z, Y, m), checks
// z·G == R + H_s("challenge", R, Y, m)·Y. It requires no context from DKG
// beyond the group public key Y, matching the spec's "stateless" mandate.
func VerifySignature(r *curve.Point, z *curve.Scalar, y *curve.Point, message []byte) bool {
	if r.IsIdentity() || y.IsIdentity() {
		return false
	}

	c := curve.HashToScalar("challenge", r.SerializeCompressed(), y.SerializeCompressed(), message)

	lhs := curve.ScalarBaseMul(z)
	rhs := curve.Add(r, curve.ScalarMul(y, c))
	return lhs.Equal(rhs)
}

// ToSignatureArtifact builds the EVM-style public verifier artifact named
// in spec.md §6: {nonce, public_key: {x, y_parity}, signature: z,
// message_hash}, in its canonical wire.SignatureArtifact form so it can be
// handed straight to a transport via MarshalBinary. The nonce field holds
// the point R itself (compressed on the wire); no address form of R is
// derived. messageHash is stored as given.
func ToSignatureArtifact(r *curve.Point, z *curve.Scalar, y *curve.Point, messageHash []byte) wire.SignatureArtifact {
	yCompressed := y.SerializeCompressed()
	return wire.SignatureArtifact{
		Nonce:       r,
		PublicKeyX:  append([]byte(nil), yCompressed[1:]...),
		YParity:     parityByte(y),
		Signature:   z,
		MessageHash: append([]byte(nil), messageHash...),
	}
}

func parityByte(p *curve.Point) uint8 {
	if p.HasEvenY() {
		return 0
	}
	return 1
}
