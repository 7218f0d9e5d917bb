package dkg

import (
	"fmt"
	"sync"
)

// evidenceLog stores the round-1 broadcasts a participant has seen, indexed
// by sender, so that a complaint raised in round 3 can be resolved by any
// third party: they read the accused sender's round-1 broadcast from the
// log and, given the accuser's revealed ephemeral secret, independently
// re-derive the pairwise key, decrypt the round-2 ciphertext, and confirm
// the inconsistency (spec.md §4.5's identifiable-abort mechanism).
//
// Grounded on the teacher's gjkr.evidenceLog / messageStorage: a mutex-
// guarded map rejecting a second write for the same sender.
type evidenceLog struct {
	mu         sync.Mutex
	broadcasts map[uint64]*Round1Broadcast
}

func newEvidenceLog() *evidenceLog {
	return &evidenceLog{broadcasts: make(map[uint64]*Round1Broadcast)}
}

func (l *evidenceLog) put(broadcast *Round1Broadcast) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.broadcasts[broadcast.SenderID]; exists {
		return fmt.Errorf("dkg: round-1 broadcast already recorded for sender %d", broadcast.SenderID)
	}
	l.broadcasts[broadcast.SenderID] = broadcast
	return nil
}

func (l *evidenceLog) get(sender uint64) *Round1Broadcast {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.broadcasts[sender]
}

// Complaint is the published evidence for a single accusation, re-
// verifiable by any observer per spec.md §4.5 step 2: given (esk, epkPeer,
// ciphertext) anyone can recompute k_ij = KDF(ECDH(esk, epkPeer),
// "frost-pair"), attempt decryption, and confirm the accuser's claim.
//
// Only the accuser's per-session ephemeral secret is ever revealed — never
// a long-term key or a DKG share, as spec.md §4.5 requires.
type Complaint struct {
	AccusedID           uint64
	Kind                ComplaintKind
	AccuserEphemeralKey []byte // esk of the accuser, this session only
	AccusedEphemeralKey []byte // epk_j, already public from round 1
	Ciphertext          []byte // the disputed round-2 envelope payload
	Detail              string

	// Cause is the typed frosterr error matching Kind (ShareInvalidError
	// for ComplaintShare, DecryptFailedError for ComplaintDecrypt), so a
	// caller can errors.As against the same §7 error kinds a direct
	// protocol failure would have returned.
	Cause error
}

// ComplaintKind distinguishes the two complaint causes from spec.md §4.5.
type ComplaintKind string

const (
	ComplaintDecrypt ComplaintKind = "complaint-decrypt"
	ComplaintShare   ComplaintKind = "complaint-share"
)
