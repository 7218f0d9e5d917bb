package aggregator

import (
	"errors"
	"testing"

	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/frosterr"
	"github.com/frost-threshold/frostcore/nonce"
	"github.com/frost-threshold/frostcore/poly"
	"github.com/frost-threshold/frostcore/signer"
	"github.com/frost-threshold/frostcore/wire"
)

// setupGroup builds a t-of-n secret sharing directly, mirroring
// signer_test.go's helper, so aggregator tests don't depend on the dkg
// package.
func setupGroup(t *testing.T, threshold int, ids []uint64) (*curve.Point, map[uint64]*curve.Scalar) {
	t.Helper()
	p, err := poly.Generate(threshold, nil)
	if err != nil {
		t.Fatalf("poly.Generate: %v", err)
	}
	groupKey := curve.ScalarBaseMul(p.ConstantTerm())
	shares := make(map[uint64]*curve.Scalar, len(ids))
	for _, id := range ids {
		shares[id] = p.EvalAt(id)
	}
	return groupKey, shares
}

// collectPartials runs nonce.Generate + signer.Sign for each id in
// signerIDs and returns the commitment set (one entry per id, in signerIDs
// order) together with each signer's partial signature.
func collectPartials(t *testing.T, threshold int, groupKey *curve.Point, shares map[uint64]*curve.Scalar, signerIDs []uint64, message []byte) ([]wire.CommitmentEntry, []*signer.Partial) {
	t.Helper()

	stores := make(map[uint64]nonce.Store, len(signerIDs))
	commitmentSet := make([]wire.CommitmentEntry, 0, len(signerIDs))
	for _, id := range signerIDs {
		store := nonce.NewMemoryStore()
		pairs, err := nonce.Generate(id, 1)
		if err != nil {
			t.Fatalf("Generate(%d): %v", id, err)
		}
		if err := store.Put(id, pairs); err != nil {
			t.Fatalf("Put(%d): %v", id, err)
		}
		stores[id] = store
		commitmentSet = append(commitmentSet, wire.CommitmentEntry{SignerID: id, D: pairs[0].D, E: pairs[0].E})
	}

	partials := make([]*signer.Partial, 0, len(signerIDs))
	for _, id := range signerIDs {
		partial, err := signer.Sign(id, commitmentSet, message, shares[id], groupKey, stores[id])
		if err != nil {
			t.Fatalf("Sign(%d): %v", id, err)
		}
		partials = append(partials, partial)
	}
	return commitmentSet, partials
}

func TestAggregateHonest(t *testing.T) {
	ids := []uint64{1, 2, 3}
	groupKey, shares := setupGroup(t, 2, ids)
	message := []byte("aggregate me")

	subset := []uint64{1, 3}
	commitmentSet, partials := collectPartials(t, 2, groupKey, shares, subset, message)

	sig, err := Aggregate(message, partials, commitmentSet, groupKey)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	lhs := curve.ScalarBaseMul(sig.Z)
	c := curve.HashToScalar("challenge", sig.R.SerializeCompressed(), sig.Y.SerializeCompressed(), message)
	rhs := curve.Add(sig.R, curve.ScalarMul(sig.Y, c))
	if !lhs.Equal(rhs) {
		t.Fatalf("aggregated signature does not satisfy the group verification equation")
	}
}

func TestAggregateRejectsTamperedPartial(t *testing.T) {
	ids := []uint64{1, 2, 3}
	groupKey, shares := setupGroup(t, 2, ids)
	message := []byte("aggregate me")

	subset := []uint64{1, 2}
	commitmentSet, partials := collectPartials(t, 2, groupKey, shares, subset, message)

	tampered := *partials[0]
	flipped := tampered.Z.Bytes()
	flipped[len(flipped)-1] ^= 0x01
	newZ, ok := curve.ScalarFromBytes(flipped)
	if !ok {
		t.Fatalf("unexpected non-canonical flipped scalar")
	}
	tampered.Z = newZ
	partials[0] = &tampered

	_, err := Aggregate(message, partials, commitmentSet, groupKey)
	var invalid *frosterr.PartialInvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected PartialInvalidError, got %v", err)
	}
	if invalid.SignerID != subset[0] {
		t.Fatalf("blamed signer %d, want %d", invalid.SignerID, subset[0])
	}
}

func TestAggregateRejectsInconsistentCommitment(t *testing.T) {
	ids := []uint64{1, 2, 3}
	groupKey, shares := setupGroup(t, 2, ids)
	message := []byte("aggregate me")

	_, partialsA := collectPartials(t, 2, groupKey, shares, []uint64{1, 2}, message)
	commitmentSetB, partialsB := collectPartials(t, 2, groupKey, shares, []uint64{1, 3}, message)

	mixed := []*signer.Partial{partialsA[0], partialsB[1]}
	_, err := Aggregate(message, mixed, commitmentSetB, groupKey)
	var inconsistent *frosterr.InconsistentAggregateError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected InconsistentAggregateError, got %v", err)
	}
}

// TestSessionExcludesAndRetries drives the ROAST-style Session through one
// failed attempt (a tampered partial from one signer) followed by a
// successful retry over a subset that excludes the blamed signer.
func TestSessionExcludesAndRetries(t *testing.T) {
	ids := []uint64{1, 2, 3, 4}
	groupKey, shares := setupGroup(t, 3, ids)
	message := []byte("roast retry")

	candidates := []uint64{1, 2, 3, 4}
	session, err := NewSession(3, candidates)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	subset, err := session.NextSubset()
	if err != nil {
		t.Fatalf("NextSubset: %v", err)
	}

	commitmentSet, partials := collectPartials(t, 3, groupKey, shares, subset, message)

	// Tamper with the first signer's partial to force the attempt to fail.
	tampered := *partials[0]
	flipped := tampered.Z.Bytes()
	flipped[len(flipped)-1] ^= 0x01
	newZ, ok := curve.ScalarFromBytes(flipped)
	if !ok {
		t.Fatalf("unexpected non-canonical flipped scalar")
	}
	tampered.Z = newZ
	badSignerID := subset[0]
	partials[0] = &tampered

	if _, err := session.Attempt(message, partials, commitmentSet, groupKey); err == nil {
		t.Fatalf("expected first attempt to fail")
	}

	excluded := session.Excluded()
	if len(excluded) != 1 || excluded[0] != badSignerID {
		t.Fatalf("Excluded() = %v, want [%d]", excluded, badSignerID)
	}

	retrySubset, err := session.NextSubset()
	if err != nil {
		t.Fatalf("NextSubset after exclusion: %v", err)
	}
	for _, id := range retrySubset {
		if id == badSignerID {
			t.Fatalf("retry subset %v still includes excluded signer %d", retrySubset, badSignerID)
		}
	}

	retryCommitmentSet, retryPartials := collectPartials(t, 3, groupKey, shares, retrySubset, message)
	sig, err := session.Attempt(message, retryPartials, retryCommitmentSet, groupKey)
	if err != nil {
		t.Fatalf("retry attempt failed: %v", err)
	}
	if sig == nil {
		t.Fatalf("retry attempt returned nil signature")
	}

	if session.Attempts() != 2 {
		t.Fatalf("Attempts() = %d, want 2", session.Attempts())
	}
}
