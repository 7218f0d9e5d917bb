// Package dkg implements the three-round distributed key generation state
// machine from spec.md §4.5: verifiable secret sharing over encrypted
// pairwise channels, with identifiable-abort complaint evidence when a
// participant misbehaves.
package dkg

import (
	"fmt"

	"github.com/frost-threshold/frostcore/aead"
	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/poly"
	"github.com/frost-threshold/frostcore/schnorrpok"
	"github.com/frost-threshold/frostcore/wire"
)

// Round1Broadcast and Round2Envelope are the dkg package's working types;
// they are exactly the wire schemas named in spec.md §6 since those are the
// values exchanged by participants over the broadcast/point-to-point
// channels the core treats as external collaborators.
type (
	Round1Broadcast = wire.Round1Broadcast
	Round2Envelope  = wire.Round2Envelope
)

// State is a DKG participant's position in the Init -> AwaitRound2 ->
// AwaitRound3 -> Done|Complaint state machine from spec.md §4.5.
type State int

const (
	StateInit State = iota
	StateAwaitRound2
	StateAwaitRound3
	StateDone
	StateComplaint
)

// Outcome is round 3's result: either a completed key share, or a set of
// complaints halting the session.
type Outcome struct {
	Status     wire.Round3Status
	Share      *curve.Scalar // share_i, only set on success
	GroupKey   *curve.Point  // Y, only set on success
	SelfKey    *curve.Point  // Y_i, only set on success
	ShareProof *schnorrpok.Proof
	Complaints []Complaint
}

// Session runs one participant's side of one DKG instance. Session state
// (polynomial, ephemeral keys, pending shares) is destroyed after round 3
// succeeds or a terminal complaint is raised (spec.md §3 lifecycle); a
// session must not be reused afterward.
type Session struct {
	DKGID     string
	Self      uint64
	Threshold int
	Parties   []uint64 // P, including Self

	state State
	log   *evidenceLog

	polynomial *poly.Polynomial
	ephemeral  *aead.KeyPair

	peers []uint64 // Parties minus Self, computed once

	// receivedShares accumulates the decrypted s_{j->self} values as round
	// 3 processes each sender's ciphertext, keyed by sender id.
	receivedShares map[uint64]*curve.Scalar

	// bankedComplaints carries complaints raised before round 3 (currently
	// just a missing round-1 broadcast, spec.md §4.5's edge case), folded
	// into Round3's final Outcome alongside any complaint round 3 itself
	// raises.
	bankedComplaints []Complaint
}

// NewSession validates the session invariants from spec.md §3 (1 <= t <=
// n, |P| = n, all ids distinct and nonzero) and returns a fresh participant
// state machine in StateInit.
func NewSession(dkgID string, self uint64, threshold int, parties []uint64) (*Session, error) {
	n := len(parties)
	if threshold < 1 || threshold > n {
		return nil, fmt.Errorf("dkg: invalid threshold %d for %d parties", threshold, n)
	}

	seen := make(map[uint64]bool, n)
	selfPresent := false
	for _, id := range parties {
		if id == 0 {
			return nil, fmt.Errorf("dkg: participant id 0 is reserved for the shared secret")
		}
		if seen[id] {
			return nil, fmt.Errorf("dkg: duplicate participant id %d", id)
		}
		seen[id] = true
		if id == self {
			selfPresent = true
		}
	}
	if !selfPresent {
		return nil, fmt.Errorf("dkg: self id %d is not a member of the party set", self)
	}

	peers := make([]uint64, 0, n-1)
	for _, id := range parties {
		if id != self {
			peers = append(peers, id)
		}
	}

	return &Session{
		DKGID:          dkgID,
		Self:           self,
		Threshold:      threshold,
		Parties:        parties,
		state:          StateInit,
		log:            newEvidenceLog(),
		peers:          peers,
		receivedShares: make(map[uint64]*curve.Scalar),
	}, nil
}

func (s *Session) proofContext(label string) []byte {
	return []byte(fmt.Sprintf("%s|%s|%d", label, s.DKGID, s.Self))
}
