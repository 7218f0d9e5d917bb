// Package signer implements spec.md §4.7 (single-signer partial signature
// generation) and §4.9 (partial verification), grounded in the teacher's
// frost.Signer.Round2 / computeBindingFactors / computeGroupCommitment /
// deriveInterpolatingValue, generalized from the teacher's big.Int scalar
// arithmetic to the module's constant-time curve.Scalar type and from a
// single hiding/binding nonce pair to the nonce package's batch-issued
// pairs.
package signer

import (
	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/frosterr"
	"github.com/frost-threshold/frostcore/nonce"
	"github.com/frost-threshold/frostcore/poly"
	"github.com/frost-threshold/frostcore/wire"
)

// Partial is the (id_j, z_j, Y_j, R) tuple from spec.md §3, self-contained
// enough for [VerifyPartial] to check without any other signer's state.
type Partial struct {
	SignerID   uint64
	Z          *curve.Scalar
	SelfKey    *curve.Point // Y_j, this signer's per-participant verification key
	Commitment *curve.Point // R, the aggregate nonce commitment for this signing event
}

// bindingFactor implements H_s("rho", id_k, m, canonical_encode(B)) from
// spec.md §4.7 step 3, computed once per commitment-set entry.
func bindingFactor(signerID uint64, message []byte, encodedSet []byte) *curve.Scalar {
	idBytes := curve.ScalarFromUint64(signerID).Bytes()
	return curve.HashToScalar("rho", idBytes, message, encodedSet)
}

// groupCommitment implements R = Σ_k (D_k + ρ_k·E_k) from spec.md §4.7
// step 4.
func groupCommitment(commitments []wire.CommitmentEntry, message []byte, encodedSet []byte) *curve.Point {
	r := curve.Identity()
	for _, c := range commitments {
		rho := bindingFactor(c.SignerID, message, encodedSet)
		r = curve.Add(r, curve.Add(c.D, curve.ScalarMul(c.E, rho)))
	}
	return r
}

// challenge implements c = H_s("challenge", R, Y, m) from spec.md §4.7
// step 5 / §4.10.
func challenge(r, y *curve.Point, message []byte) *curve.Scalar {
	return curve.HashToScalar("challenge", r.SerializeCompressed(), y.SerializeCompressed(), message)
}

// Sign implements spec.md §4.7: given the signer's own commitment set B
// (already including this signer's published (id, D, E)), the message, its
// long-lived key share and group public key Y, and its nonce store,
// produces a partial signature. It returns only the partial, not the
// handle of the consumed nonce pair: store.Take has already removed that
// pair from the store before the partial is computed.
//
// Steps 1-2 of §4.7 (locate own entry in B, retrieve (d,e)) surface
// InputInvalid / NonceMissing respectively; a duplicate signer id in B and
// step 4's identity check both surface BadCommitments.
func Sign(
	signerID uint64,
	commitmentSet []wire.CommitmentEntry,
	message []byte,
	share *curve.Scalar,
	groupKey *curve.Point,
	store nonce.Store,
) (*Partial, error) {
	sorted := wire.SortCommitmentSet(commitmentSet)

	var ownD *curve.Point
	for _, c := range sorted {
		if c.SignerID == signerID {
			ownD = c.D
			break
		}
	}
	if ownD == nil {
		return nil, frosterr.NewInputInvalid("signer's own commitment is not present in the commitment set")
	}

	pair, err := store.Take(signerID, ownD)
	if err != nil {
		return nil, err
	}
	defer pair.Zeroize()

	for i := 1; i < len(sorted); i++ {
		if sorted[i].SignerID == sorted[i-1].SignerID {
			return nil, &frosterr.BadCommitmentsError{Reason: "duplicate signer id in the commitment set"}
		}
	}

	encodedSet := wire.EncodeCommitmentSet(sorted)
	ids := wire.SignerIDs(sorted)

	r := groupCommitment(sorted, message, encodedSet)
	if r.IsIdentity() {
		return nil, &frosterr.BadCommitmentsError{Reason: "aggregate nonce commitment R is the identity element"}
	}

	c := challenge(r, groupKey, message)

	lambda, err := poly.Lagrange(signerID, ids)
	if err != nil {
		return nil, err
	}

	rho := bindingFactor(signerID, message, encodedSet)

	// z = d + e*rho + lambda*share*c mod q
	z := pair.Hiding().Add(pair.Binding().Mul(rho)).Add(lambda.Mul(share).Mul(c))

	return &Partial{
		SignerID:   signerID,
		Z:          z,
		SelfKey:    curve.ScalarBaseMul(share),
		Commitment: r,
	}, nil
}

// VerifyPartial implements spec.md §4.9: recompute ρ_j, c, λ_j, and check
// z_j·G == (D_j + ρ_j·E_j) + λ_j·c·Y_j. Exported so the aggregator and any
// external auditor can call it directly — this resolves the spec.md §9 open
// question on verify_single_signature's argument order, matching the
// teacher's verifySignatureShare(i, pk_i, commit_i, sigShare_i, cs, pk, msg)
// call shape: (partial, commitmentSet, message, groupKey).
func VerifyPartial(partial *Partial, commitmentSet []wire.CommitmentEntry, message []byte, groupKey *curve.Point) bool {
	sorted := wire.SortCommitmentSet(commitmentSet)

	var ownEntry *wire.CommitmentEntry
	for i := range sorted {
		if sorted[i].SignerID == partial.SignerID {
			ownEntry = &sorted[i]
			break
		}
	}
	if ownEntry == nil {
		return false
	}

	encodedSet := wire.EncodeCommitmentSet(sorted)
	ids := wire.SignerIDs(sorted)

	r := groupCommitment(sorted, message, encodedSet)
	if !r.Equal(partial.Commitment) {
		return false
	}

	c := challenge(r, groupKey, message)

	lambda, err := poly.Lagrange(partial.SignerID, ids)
	if err != nil {
		return false
	}

	rho := bindingFactor(partial.SignerID, message, encodedSet)

	lhs := curve.ScalarBaseMul(partial.Z)
	rhs := curve.Add(
		curve.Add(ownEntry.D, curve.ScalarMul(ownEntry.E, rho)),
		curve.ScalarMul(partial.SelfKey, lambda.Mul(c)),
	)
	return lhs.Equal(rhs)
}
