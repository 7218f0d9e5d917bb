// Package curve implements the field and group primitives the FROST core is
// built on: scalar arithmetic modulo the secp256k1 order, point arithmetic,
// and the BIP-340-flavoured tagged hash used to derive domain-separated
// scalars.
//
// Scalar arithmetic goes through
// [github.com/decred/dcrd/dcrec/secp256k1/v4]'s ModNScalar type, whose
// arithmetic is constant-time by construction (no data-dependent branches).
// Point multiplication ([ScalarBaseMul], [ScalarMul]) and [Scalar.Inverse]
// use that library's variable-time routines, including when the scalar is
// secret; they are not constant-time.
package curve

import (
	"crypto/rand"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarSize is the canonical big-endian encoding length of a scalar.
const ScalarSize = 32

// Scalar is an element of Z_q, q the secp256k1 group order. The zero value
// is the scalar 0, not a usable secret — callers that need a fresh secret
// must go through [RandomScalar] or [ScalarFromBytes].
type Scalar struct {
	inner secp256k1.ModNScalar
}

// RandomScalar samples uniformly from [1, q) by rejection sampling, as
// required anywhere spec.md calls for a fresh secret (polynomial
// coefficients, nonces, ephemeral keys).
func RandomScalar() (*Scalar, error) {
	for {
		var buf [ScalarSize]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		s := new(Scalar)
		overflow := s.inner.SetBytes(&buf)
		if overflow == 0 && !s.inner.IsZero() {
			return s, nil
		}
	}
}

// ScalarFromUint64 embeds a small non-secret integer (a participant id) as a
// scalar, used for Lagrange-coefficient style arithmetic that mixes public
// ids with curve scalars.
func ScalarFromUint64(v uint64) *Scalar {
	s := new(Scalar)
	var buf [ScalarSize]byte
	for i := 0; i < 8; i++ {
		buf[ScalarSize-1-i] = byte(v >> (8 * i))
	}
	s.inner.SetBytes(&buf)
	return s
}

// ScalarFromBytes decodes a big-endian, fixed-width scalar. It fails the
// canonical-encoding check (non-canonical or out-of-range encodings are
// InputInvalid at the caller) by reporting the overflow.
func ScalarFromBytes(b []byte) (*Scalar, bool) {
	if len(b) != ScalarSize {
		return nil, false
	}
	var buf [ScalarSize]byte
	copy(buf[:], b)
	s := new(Scalar)
	overflow := s.inner.SetBytes(&buf)
	return s, overflow == 0
}

// Bytes returns the canonical big-endian encoding.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	out := make([]byte, ScalarSize)
	copy(out, b[:])
	return out
}

// Add returns s + other mod q.
func (s *Scalar) Add(other *Scalar) *Scalar {
	out := new(Scalar)
	out.inner.Add2(&s.inner, &other.inner)
	return out
}

// Sub returns s - other mod q.
func (s *Scalar) Sub(other *Scalar) *Scalar {
	neg := new(secp256k1.ModNScalar).Set(&other.inner).Negate()
	out := new(Scalar)
	out.inner.Add2(&s.inner, neg)
	return out
}

// Mul returns s * other mod q.
func (s *Scalar) Mul(other *Scalar) *Scalar {
	out := new(Scalar)
	out.inner.Mul2(&s.inner, &other.inner)
	return out
}

// Inverse returns s^-1 mod q, using the library's variable-time inversion.
// Lagrange coefficients are computed in package poly and do not call it.
func (s *Scalar) Inverse() *Scalar {
	out := new(Scalar)
	out.inner.Set(&s.inner)
	out.inner.InverseValNonConst()
	return out
}

// IsZero reports whether s is the additive identity.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Equal reports whether two scalars are the same element of Z_q.
func (s *Scalar) Equal(other *Scalar) bool {
	return s.inner.Equals(&other.inner)
}

// Zeroize overwrites the scalar's internal state. Callers holding secret
// scalars (polynomial coefficients, key shares, nonces, ephemeral keys)
// MUST call this once the value is no longer needed.
func (s *Scalar) Zeroize() {
	s.inner.Zero()
}

// Clone returns an independent copy.
func (s *Scalar) Clone() *Scalar {
	out := new(Scalar)
	out.inner.Set(&s.inner)
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler, encoding the scalar in
// its canonical big-endian form for wire serialization.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scalar) UnmarshalBinary(b []byte) error {
	decoded, ok := ScalarFromBytes(b)
	if !ok {
		return fmt.Errorf("curve: non-canonical scalar encoding")
	}
	*s = *decoded
	return nil
}
