package dkg

import (
	"fmt"

	"github.com/frost-threshold/frostcore/aead"
	"github.com/frost-threshold/frostcore/frosterr"
	"github.com/frost-threshold/frostcore/schnorrpok"
)

// Round2 implements spec.md §4.5 Round 2: record every peer's round-1
// broadcast (verifying both Schnorr proofs, since a round-1 broadcast is
// public and a failure here is globally attributable), then encrypt this
// participant's share s_{self->peer} = f_self(peer) for each peer under the
// ECDH-derived pairwise key.
//
// broadcasts should include one entry per party in s.Parties, including
// self; the caller is responsible for having gathered them (e.g. via a
// DataManager-backed broadcast channel). A missing broadcast is not a hard
// failure: spec.md §4.5 treats it "equivalently to complaint-decrypt", so it
// is banked here and folded into Round3's final Outcome instead.
func (s *Session) Round2(broadcasts []*Round1Broadcast) ([]*Round2Envelope, error) {
	if s.state != StateAwaitRound2 {
		return nil, fmt.Errorf("dkg: Round2 called out of order in state %d", s.state)
	}

	kept, duplicates := deduplicateBySender(broadcasts, func(b *Round1Broadcast) uint64 { return b.SenderID })
	if len(duplicates) > 0 {
		return nil, frosterr.NewInputInvalid(fmt.Sprintf("duplicate round-1 broadcast from sender(s) %v", duplicates))
	}

	missing := findMissing(s.Parties, kept, func(b *Round1Broadcast) uint64 { return b.SenderID })
	for _, senderID := range missing {
		s.bankedComplaints = append(s.bankedComplaints, Complaint{
			AccusedID: senderID,
			Kind:      ComplaintDecrypt,
			Detail:    "no round-1 broadcast received before session timeout",
			Cause:     &frosterr.DecryptFailedError{SenderID: senderID},
		})
	}

	for _, b := range kept {
		if b.SenderID == s.Self {
			continue
		}
		if len(b.PublicFx) != s.Threshold {
			return nil, &frosterr.ProofInvalidError{SenderID: b.SenderID, Which: "public_fx length"}
		}

		// The sender proved under its own id, so verify under the sender's
		// context, not this participant's.
		coef0Ctx := []byte(fmt.Sprintf("%s|%s|%d", "coef0", s.DKGID, b.SenderID))
		epkCtx := []byte(fmt.Sprintf("%s|%s|%d", "epk", s.DKGID, b.SenderID))
		if !schnorrpok.Verify(proofFromWire(b.Coefficient0Signature), b.PublicFx[0], coef0Ctx) {
			return nil, &frosterr.ProofInvalidError{SenderID: b.SenderID, Which: "coef0"}
		}
		if !schnorrpok.Verify(proofFromWire(b.SecretSignature), b.PublicKey, epkCtx) {
			return nil, &frosterr.ProofInvalidError{SenderID: b.SenderID, Which: "epk"}
		}

		if err := s.log.put(b); err != nil {
			return nil, err
		}
	}
	// Record our own broadcast too so round 3's evidence log is complete for
	// any complaint another party resolves against us.
	if self := findEntry(kept, s.Self); self != nil {
		_ = s.log.put(self)
	}

	envelopes := make([]*Round2Envelope, 0, len(s.peers))
	for _, peerID := range s.peers {
		peer := findEntry(kept, peerID)
		if peer == nil {
			// Banked as a complaint above; nothing to encrypt toward a
			// peer whose public key was never broadcast.
			continue
		}

		share := s.polynomial.EvalAt(peerID)
		defer share.Zeroize()

		key, err := aead.DerivePairwiseKey(s.ephemeral.Private, peer.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("dkg: deriving pairwise key for %d: %w", peerID, err)
		}

		cipher, err := aead.NewPairwiseCipher(key)
		if err != nil {
			return nil, fmt.Errorf("dkg: building cipher for %d: %w", peerID, err)
		}

		ad := associatedData(s.DKGID, s.Self, peerID)
		ciphertext := cipher.Seal(ad, share.Bytes())

		envelopes = append(envelopes, &Round2Envelope{
			SenderID:   s.Self,
			ReceiverID: peerID,
			Data:       ciphertext,
		})
	}

	s.state = StateAwaitRound3
	return envelopes, nil
}

func findEntry(broadcasts []*Round1Broadcast, sender uint64) *Round1Broadcast {
	for _, b := range broadcasts {
		if b.SenderID == sender {
			return b
		}
	}
	return nil
}

// associatedData binds a round-2 ciphertext to (dkg_id, sender_id,
// receiver_id) per spec.md §4.4, preventing ciphertext replay across
// sessions or misdelivery between participants.
func associatedData(dkgID string, sender, receiver uint64) []byte {
	return []byte(fmt.Sprintf("%s|%d|%d", dkgID, sender, receiver))
}
