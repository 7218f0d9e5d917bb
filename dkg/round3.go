package dkg

import (
	"fmt"

	"github.com/frost-threshold/frostcore/aead"
	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/frosterr"
	"github.com/frost-threshold/frostcore/poly"
	"github.com/frost-threshold/frostcore/schnorrpok"
	"github.com/frost-threshold/frostcore/wire"
)

// Round3 implements spec.md §4.5 Round 3: decrypt every peer's envelope
// addressed to self, verify it against the sender's round-1 commitments, and
// either finish with a key share or halt with identifiable-abort evidence.
//
// A missing envelope from a peer is treated as a complaint-decrypt, per the
// edge case named in spec.md §4.5 ("missing round-2 ciphertext from a peer
// before a session-level timeout is treated equivalently to
// complaint-decrypt").
func (s *Session) Round3(envelopes []*Round2Envelope) (*Outcome, error) {
	if s.state != StateAwaitRound3 {
		return nil, fmt.Errorf("dkg: Round3 called out of order in state %d", s.state)
	}

	addressedToSelf := make([]*Round2Envelope, 0, len(envelopes))
	for _, e := range envelopes {
		if e.ReceiverID == s.Self {
			addressedToSelf = append(addressedToSelf, e)
		}
	}

	kept, duplicates := deduplicateBySender(addressedToSelf, func(e *Round2Envelope) uint64 { return e.SenderID })
	if len(duplicates) > 0 {
		return nil, frosterr.NewInputInvalid(fmt.Sprintf("duplicate round-2 envelope from sender(s) %v", duplicates))
	}

	complaints := append([]Complaint(nil), s.bankedComplaints...)

	missing := findMissing(s.peers, kept, func(e *Round2Envelope) uint64 { return e.SenderID })
	for _, senderID := range missing {
		complaints = append(complaints, Complaint{
			AccusedID: senderID,
			Kind:      ComplaintDecrypt,
			Detail:    "no round-2 envelope received before session timeout",
			Cause:     &frosterr.DecryptFailedError{SenderID: senderID},
		})
	}

	accumulated := curve.ScalarFromUint64(0)
	groupKey := curve.Identity()

	for _, peerID := range s.peers {
		broadcast := s.log.get(peerID)
		if broadcast == nil {
			// Round2 already banked a complaint for this sender if its
			// broadcast was missing there too; only append a fresh one if
			// this is news (e.g. a caller skipped Round2 entirely).
			if !hasComplaintAgainst(complaints, peerID) {
				complaints = append(complaints, Complaint{
					AccusedID: peerID,
					Kind:      ComplaintDecrypt,
					Detail:    "no round-1 broadcast on record for this sender",
					Cause:     &frosterr.DecryptFailedError{SenderID: peerID},
				})
			}
			continue
		}
		groupKey = curve.Add(groupKey, broadcast.PublicFx[0])

		envelope := findEnvelopeEntry(kept, peerID)
		if envelope == nil {
			continue // already recorded as missing above
		}

		key, err := aead.DerivePairwiseKey(s.ephemeral.Private, broadcast.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("dkg: deriving pairwise key for %d: %w", peerID, err)
		}

		cipher, err := aead.NewPairwiseCipher(key)
		if err != nil {
			return nil, fmt.Errorf("dkg: building cipher for %d: %w", peerID, err)
		}

		ad := associatedData(s.DKGID, peerID, s.Self)
		plaintext, err := cipher.Open(ad, envelope.Data)
		if err != nil {
			complaints = append(complaints, Complaint{
				AccusedID:           peerID,
				Kind:                ComplaintDecrypt,
				AccuserEphemeralKey: s.ephemeral.Private.Bytes(),
				AccusedEphemeralKey: broadcast.PublicKey.SerializeCompressed(),
				Ciphertext:          envelope.Data,
				Detail:              "aead open failed",
				Cause:               &frosterr.DecryptFailedError{SenderID: peerID},
			})
			continue
		}

		share, ok := curve.ScalarFromBytes(plaintext)
		if !ok {
			complaints = append(complaints, Complaint{
				AccusedID:           peerID,
				Kind:                ComplaintDecrypt,
				AccuserEphemeralKey: s.ephemeral.Private.Bytes(),
				AccusedEphemeralKey: broadcast.PublicKey.SerializeCompressed(),
				Ciphertext:          envelope.Data,
				Detail:              "decrypted payload is not a canonical scalar",
				Cause:               &frosterr.DecryptFailedError{SenderID: peerID},
			})
			continue
		}

		expected := poly.EvalCommitted(broadcast.PublicFx, s.Self)
		if !curve.ScalarBaseMul(share).Equal(expected) {
			complaints = append(complaints, Complaint{
				AccusedID:           peerID,
				Kind:                ComplaintShare,
				AccuserEphemeralKey: s.ephemeral.Private.Bytes(),
				AccusedEphemeralKey: broadcast.PublicKey.SerializeCompressed(),
				Ciphertext:          envelope.Data,
				Detail:              "share fails the sender's commitment check",
				Cause:               &frosterr.ShareInvalidError{SenderID: peerID},
			})
			continue
		}

		accumulated = accumulated.Add(share)
		s.receivedShares[peerID] = share
	}

	if len(complaints) > 0 {
		s.polynomial.Zeroize()
		s.ephemeral.Zeroize()
		for _, received := range s.receivedShares {
			received.Zeroize()
		}
		s.state = StateComplaint
		return &Outcome{Status: wire.StatusComplaint, Complaints: complaints}, nil
	}

	// Fold in our own contribution: f_self(self).
	selfBroadcast := s.log.get(s.Self)
	if selfBroadcast == nil {
		return nil, fmt.Errorf("dkg: own round-1 broadcast was never recorded")
	}
	groupKey = curve.Add(groupKey, selfBroadcast.PublicFx[0])
	accumulated = accumulated.Add(s.polynomial.EvalAt(s.Self))

	selfPublic := curve.ScalarBaseMul(accumulated)

	shareProof, err := schnorrpok.Prove(accumulated, selfPublic, s.proofContext("share"))
	if err != nil {
		return nil, fmt.Errorf("dkg: proving knowledge of final share: %w", err)
	}

	s.polynomial.Zeroize()
	s.ephemeral.Zeroize()
	for _, received := range s.receivedShares {
		received.Zeroize()
	}
	s.state = StateDone

	return &Outcome{
		Status:     wire.StatusSuccessful,
		Share:      accumulated,
		GroupKey:   groupKey,
		SelfKey:    selfPublic,
		ShareProof: shareProof,
	}, nil
}

func findEnvelopeEntry(envelopes []*Round2Envelope, sender uint64) *Round2Envelope {
	for _, e := range envelopes {
		if e.SenderID == sender {
			return e
		}
	}
	return nil
}

func hasComplaintAgainst(complaints []Complaint, accused uint64) bool {
	for _, c := range complaints {
		if c.AccusedID == accused {
			return true
		}
	}
	return false
}
