// Package poly implements the polynomial module from spec.md §4.2: secret
// sharing polynomials over the curve's scalar field, their public
// coefficient commitments, and Lagrange interpolation at zero.
package poly

import (
	"fmt"

	"github.com/frost-threshold/frostcore/curve"
)

// Polynomial is a degree t-1 polynomial f(x) = a_0 + a_1 x + ... + a_{t-1}
// x^{t-1} with secret scalar coefficients. Evaluation goes through
// [curve.Scalar] arithmetic so it stays constant-time in the coefficients,
// matching spec.md §5's mandate for secret-dependent operations.
type Polynomial struct {
	coeffs []*curve.Scalar
}

// Generate samples a degree t-1 polynomial. If a0 is non-nil it is used as
// the constant term (to derive deterministic key material, spec.md §3);
// otherwise a0 is sampled uniformly from [1, q).
func Generate(t int, a0 *curve.Scalar) (*Polynomial, error) {
	if t < 1 {
		return nil, fmt.Errorf("poly: threshold must be at least 1, got %d", t)
	}

	coeffs := make([]*curve.Scalar, t)

	if a0 != nil {
		coeffs[0] = a0.Clone()
	} else {
		s, err := curve.RandomScalar()
		if err != nil {
			return nil, fmt.Errorf("poly: sampling constant term: %w", err)
		}
		coeffs[0] = s
	}

	for i := 1; i < t; i++ {
		s, err := curve.RandomScalar()
		if err != nil {
			return nil, fmt.Errorf("poly: sampling coefficient %d: %w", i, err)
		}
		coeffs[i] = s
	}

	return &Polynomial{coeffs: coeffs}, nil
}

// Degree returns t-1.
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// ConstantTerm returns a_0 = f(0), the secret this polynomial shares.
func (p *Polynomial) ConstantTerm() *curve.Scalar {
	return p.coeffs[0].Clone()
}

// Eval computes f(x) mod q by Horner's method, as defined in spec.md §4.2.
func (p *Polynomial) Eval(x *curve.Scalar) *curve.Scalar {
	acc := p.coeffs[len(p.coeffs)-1].Clone()
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.coeffs[i])
	}
	return acc
}

// EvalAt is a convenience wrapper for evaluating at a small integer
// participant id.
func (p *Polynomial) EvalAt(id uint64) *curve.Scalar {
	return p.Eval(curve.ScalarFromUint64(id))
}

// Commit returns [a_k * G] for each coefficient, the public commitment set
// C_{i,*} broadcast in DKG round 1.
func (p *Polynomial) Commit() []*curve.Point {
	commitments := make([]*curve.Point, len(p.coeffs))
	for i, c := range p.coeffs {
		commitments[i] = curve.ScalarBaseMul(c)
	}
	return commitments
}

// Zeroize overwrites every coefficient. Callers MUST call this once the
// polynomial's shares have all been distributed and round 3 has completed
// (spec.md §3 lifecycle, §5 zeroization mandate).
func (p *Polynomial) Zeroize() {
	for _, c := range p.coeffs {
		c.Zeroize()
	}
}

// EvalCommitted evaluates the public commitment polynomial
// Σ_{k=0..t-1} id^k · C_k at a given id, used to verify a received share
// against the sender's broadcast commitments (spec.md §4.5 round 3, step
// 2) without ever reconstructing the sender's secret coefficients.
func EvalCommitted(commitments []*curve.Point, id uint64) *curve.Point {
	result := curve.Identity()
	power := curve.ScalarFromUint64(1)
	x := curve.ScalarFromUint64(id)
	for _, c := range commitments {
		result = curve.Add(result, curve.ScalarMul(c, power))
		power = power.Mul(x)
	}
	return result
}
