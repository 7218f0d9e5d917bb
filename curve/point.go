package curve

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PointSize is the length of a compressed point encoding.
const PointSize = 33

// Point is an element of the secp256k1 group, stored affine. The identity
// element is represented with a nil coordinate pair and must be checked for
// with [Point.IsIdentity] before serialization.
type Point struct {
	affine *secp256k1.JacobianPoint // nil means the point at infinity
}

// Identity returns the group identity (point at infinity).
func Identity() *Point {
	return &Point{affine: nil}
}

// BasePoint returns the secp256k1 generator G.
func BasePoint() *Point {
	return ScalarBaseMul(ScalarFromUint64(1))
}

// ScalarBaseMul returns s*G.
func ScalarBaseMul(s *Scalar) *Point {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.inner, &result)
	return jacobianToPoint(&result)
}

// ScalarMul returns s*P.
func ScalarMul(p *Point, s *Scalar) *Point {
	if p.affine == nil {
		return Identity()
	}
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.inner, p.affine, &result)
	return jacobianToPoint(&result)
}

// Add returns p + q.
func Add(p, q *Point) *Point {
	if p.affine == nil {
		return q.Clone()
	}
	if q.affine == nil {
		return p.Clone()
	}
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(p.affine, q.affine, &result)
	return jacobianToPoint(&result)
}

// Sub returns p - q.
func Sub(p, q *Point) *Point {
	return Add(p, Negate(q))
}

// Negate returns -p.
func Negate(p *Point) *Point {
	if p.affine == nil {
		return Identity()
	}
	neg := *p.affine
	neg.Y.Negate(1)
	neg.Y.Normalize()
	return jacobianToPoint(&neg)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.affine == nil
}

// Clone returns an independent copy of p.
func (p *Point) Clone() *Point {
	if p.affine == nil {
		return Identity()
	}
	cp := *p.affine
	return &Point{affine: &cp}
}

// Equal reports whether two points are the same group element.
func (p *Point) Equal(other *Point) bool {
	if p.affine == nil || other.affine == nil {
		return p.affine == nil && other.affine == nil
	}
	a, b := *p.affine, *other.affine
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// SerializeCompressed returns the 33-byte SEC1 compressed encoding. Callers
// MUST check [Point.IsIdentity] first: the identity element has no valid
// compressed encoding and this panics if passed one, matching spec.md
// §4.3's requirement that SerializeElement errors on the identity.
func (p *Point) SerializeCompressed() []byte {
	if p.affine == nil {
		panic("curve: cannot serialize the identity element")
	}
	pub := secp256k1.NewPublicKey(&p.affine.X, &p.affine.Y)
	return pub.SerializeCompressed()
}

// HasEvenY reports whether the affine y-coordinate is even, as used by the
// BIP-340 x-only public key encoding in the EVM-style signature artifact.
func (p *Point) HasEvenY() bool {
	if p.affine == nil {
		return true
	}
	return p.affine.Y.IsOdd() == false
}

// DecodePoint parses a compressed point and validates it lies on the curve
// and is not the identity, as required by spec.md §4.1.
func DecodePoint(b []byte) (*Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("curve: invalid point encoding: %w", err)
	}
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	return jacobianToPoint(&j), nil
}

// MarshalBinary implements encoding.BinaryMarshaler for wire serialization.
// The identity element has no canonical encoding (spec.md §4.3) and is
// represented as a single zero byte, distinguishable from any valid
// 33-byte compressed point.
func (p *Point) MarshalBinary() ([]byte, error) {
	if p.affine == nil {
		return []byte{0x00}, nil
	}
	return p.SerializeCompressed(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Point) UnmarshalBinary(b []byte) error {
	if len(b) == 1 && b[0] == 0x00 {
		p.affine = nil
		return nil
	}
	decoded, err := DecodePoint(b)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

func jacobianToPoint(j *secp256k1.JacobianPoint) *Point {
	cp := *j
	cp.ToAffine()
	if cp.X.IsZero() && cp.Y.IsZero() {
		return &Point{affine: nil}
	}
	return &Point{affine: &cp}
}
