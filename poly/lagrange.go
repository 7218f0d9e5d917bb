package poly

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/frost-threshold/frostcore/curve"
)

// orderModulus is the secp256k1 group order as a saferith.Modulus. Lagrange
// interpolation only ever combines public participant ids, never a secret,
// so it is deliberately kept in a bignum type distinct from curve.Scalar
// (which backs every secret-scalar operation) rather than reusing it.
var orderModulus = saferith.ModulusFromBytes(curve.Order())

// Lagrange computes λ_j(S), the Lagrange coefficient of participant id xj
// over the set S evaluated at 0, per spec.md §4.2:
//
//	λ_j(S) = Π_{k∈S, k≠j} id_k · (id_k − id_j)^{-1} mod q
//
// It fails if xj is not a member of ids, or if any other member of ids
// equals xj (duplicate ids in S collapse a factor of the denominator to
// zero and make the coefficient undefined).
func Lagrange(xj uint64, ids []uint64) (*curve.Scalar, error) {
	found := false
	num := new(saferith.Nat).SetUint64(1)
	den := new(saferith.Nat).SetUint64(1)

	for _, xk := range ids {
		if xk == xj {
			if found {
				return nil, fmt.Errorf("poly: duplicate id %d in signer set", xj)
			}
			found = true
			continue
		}

		xkNat := new(saferith.Nat).SetUint64(xk)

		num = new(saferith.Nat).ModMul(num, xkNat, orderModulus)

		diff := modSubUint64(xk, xj)
		den = new(saferith.Nat).ModMul(den, diff, orderModulus)
	}

	if !found {
		return nil, fmt.Errorf("poly: id %d is not a member of the signer set", xj)
	}

	denInv := new(saferith.Nat).ModInverse(den, orderModulus)
	value := new(saferith.Nat).ModMul(num, denInv, orderModulus)

	b := value.Bytes()
	s, ok := curve.ScalarFromBytes(padTo32(b))
	if !ok {
		return nil, fmt.Errorf("poly: interpolated value did not reduce canonically")
	}
	return s, nil
}

// modSubUint64 computes (a - b) mod q for small public participant ids,
// where a may be smaller than b, by working in the field defined by
// orderModulus rather than signed arithmetic.
func modSubUint64(a, b uint64) *saferith.Nat {
	aNat := new(saferith.Nat).SetUint64(a)
	bNat := new(saferith.Nat).SetUint64(b)
	return new(saferith.Nat).ModSub(aNat, bNat, orderModulus)
}

func padTo32(b []byte) []byte {
	if len(b) >= curve.ScalarSize {
		return b[len(b)-curve.ScalarSize:]
	}
	out := make([]byte, curve.ScalarSize)
	copy(out[curve.ScalarSize-len(b):], b)
	return out
}
