package wire

import (
	"cmp"
	"encoding/binary"

	"github.com/frost-threshold/frostcore/curve"
	"golang.org/x/exp/slices"
)

// ProofWire is the wire form of a Schnorr proof of knowledge: a commitment
// ("nonce" in spec.md §6's field naming) and the response scalar.
type ProofWire struct {
	Nonce     *curve.Point  `cbor:"nonce"`
	Signature *curve.Scalar `cbor:"signature"`
}

// Round1Broadcast is the field-stable schema from spec.md §6: "Round 1
// broadcast — {sender_id, public_fx[], coefficient0_signature{nonce,
// signature}, public_key, secret_signature{nonce,signature}}".
type Round1Broadcast struct {
	SenderID              uint64         `cbor:"sender_id"`
	PublicFx              []*curve.Point `cbor:"public_fx"`
	Coefficient0Signature ProofWire      `cbor:"coefficient0_signature"`
	PublicKey             *curve.Point   `cbor:"public_key"`
	SecretSignature       ProofWire      `cbor:"secret_signature"`
}

// MarshalBinary implements encoding.BinaryMarshaler, the canonical CBOR
// wire form a transport hands to other participants.
func (b *Round1Broadcast) MarshalBinary() ([]byte, error) {
	return Encode(b)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, rejecting any
// field not in this schema (spec.md §9's "reject unknown fields").
func (b *Round1Broadcast) UnmarshalBinary(data []byte) error {
	return Decode(data, b)
}

// Round2Envelope is the "Round 2 per-recipient — {sender_id, receiver_id,
// data}" schema from spec.md §6; data is the AEAD ciphertext.
type Round2Envelope struct {
	SenderID   uint64 `cbor:"sender_id"`
	ReceiverID uint64 `cbor:"receiver_id"`
	Data       []byte `cbor:"data"`
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Round2Envelope) MarshalBinary() ([]byte, error) {
	return Encode(e)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, rejecting any
// field not in this schema.
func (e *Round2Envelope) UnmarshalBinary(data []byte) error {
	return Decode(data, e)
}

// Round3Status enumerates the two terminal outcomes of DKG round 3.
type Round3Status string

const (
	StatusSuccessful Round3Status = "SUCCESSFUL"
	StatusComplaint  Round3Status = "COMPLAINT"
)

// SignatureArtifact is the "public signature artifact" from spec.md §6,
// for an EVM-style verifier: {nonce, public_key: {x, y_parity}, signature:
// z, message_hash}. Nonce carries the point R in compressed form, not an
// address form of R.
type SignatureArtifact struct {
	Nonce       *curve.Point  `cbor:"nonce"`
	PublicKeyX  []byte        `cbor:"public_key_x"`
	YParity     uint8         `cbor:"y_parity"`
	Signature   *curve.Scalar `cbor:"signature"`
	MessageHash []byte        `cbor:"message_hash"`
}

// MarshalBinary implements encoding.BinaryMarshaler, the form a verifier
// service receives the artifact in.
func (a *SignatureArtifact) MarshalBinary() ([]byte, error) {
	return Encode(a)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *SignatureArtifact) UnmarshalBinary(data []byte) error {
	return Decode(data, a)
}

// CommitmentEntry is one element of the commitment set B from spec.md §3:
// (id_j, D_j, E_j).
type CommitmentEntry struct {
	SignerID uint64       `cbor:"signer_id"`
	D        *curve.Point `cbor:"d"`
	E        *curve.Point `cbor:"e"`
}

// SortCommitmentSet returns B sorted by signer id ascending, the canonical
// ordering required by spec.md §3 ("This ordering is canonical and must be
// reproduced identically by all signers").
func SortCommitmentSet(entries []CommitmentEntry) []CommitmentEntry {
	sorted := make([]CommitmentEntry, len(entries))
	copy(sorted, entries)
	slices.SortFunc(sorted, func(a, b CommitmentEntry) int {
		return cmp.Compare(a.SignerID, b.SignerID)
	})
	return sorted
}

// EncodeCommitmentSet implements the canonical_encode(B) function from
// spec.md §4.7: each tuple as id‖compress(D)‖compress(E) with a
// fixed-width id, over a set already sorted ascending by id. All
// participants must agree on this encoding bit-exactly.
func EncodeCommitmentSet(sortedEntries []CommitmentEntry) []byte {
	out := make([]byte, 0, len(sortedEntries)*(8+2*curve.PointSize))
	for _, e := range sortedEntries {
		var idBuf [8]byte
		binary.BigEndian.PutUint64(idBuf[:], e.SignerID)
		out = append(out, idBuf[:]...)
		out = append(out, e.D.SerializeCompressed()...)
		out = append(out, e.E.SerializeCompressed()...)
	}
	return out
}

// SignerIDs extracts the ordered list of signer ids from a commitment set,
// used as the set S in Lagrange interpolation.
func SignerIDs(entries []CommitmentEntry) []uint64 {
	ids := make([]uint64, len(entries))
	for i, e := range entries {
		ids[i] = e.SignerID
	}
	return ids
}
