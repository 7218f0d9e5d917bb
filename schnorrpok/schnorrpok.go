// Package schnorrpok implements the Schnorr proof of knowledge of a
// discrete log used throughout DKG (spec.md §4.3): proving knowledge of the
// constant-term coefficient, the ephemeral ECDH secret, and the final key
// share, each bound to a distinct context label so a proof cannot be
// replayed across participants, sessions, or proof sites.
package schnorrpok

import (
	"fmt"

	"github.com/frost-threshold/frostcore/curve"
)

// Proof is a non-interactive Schnorr proof of knowledge (R, s).
type Proof struct {
	R *curve.Point
	S *curve.Scalar
}

// Prove implements prove(sk, pk, ctx) from spec.md §4.3. ctx binds the
// dkg_id and participant id to prevent cross-session replay; it must be the
// same value the verifier supplies to [Verify].
func Prove(sk *curve.Scalar, pk *curve.Point, ctx []byte) (*Proof, error) {
	k, err := curve.RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("schnorrpok: sampling nonce: %w", err)
	}
	defer k.Zeroize()

	r := curve.ScalarBaseMul(k)
	c := challenge(ctx, pk, r)

	s := k.Add(c.Mul(sk))

	return &Proof{R: r, S: s}, nil
}

// Verify recomputes the challenge and checks s*G == R + c*pk.
func Verify(proof *Proof, pk *curve.Point, ctx []byte) bool {
	if proof == nil || proof.R == nil || proof.S == nil {
		return false
	}

	c := challenge(ctx, pk, proof.R)

	lhs := curve.ScalarBaseMul(proof.S)
	rhs := curve.Add(proof.R, curve.ScalarMul(pk, c))

	return lhs.Equal(rhs)
}

func challenge(ctx []byte, pk, r *curve.Point) *curve.Scalar {
	return curve.HashToScalar(
		"pop",
		ctx,
		pk.SerializeCompressed(),
		r.SerializeCompressed(),
	)
}
