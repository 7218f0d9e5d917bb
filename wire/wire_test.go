package wire

import (
	"testing"

	"github.com/frost-threshold/frostcore/curve"
	"github.com/fxamacker/cbor/v2"
)

func randomPoint(t *testing.T) *curve.Point {
	t.Helper()
	s, err := curve.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	return curve.ScalarBaseMul(s)
}

// TestRound1BroadcastRoundtrip implements spec.md §8 property 6: a round
// message survives Encode then Decode bit-for-bit, recovering every field.
func TestRound1BroadcastRoundtrip(t *testing.T) {
	s1, err := curve.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	s2, err := curve.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	original := &Round1Broadcast{
		SenderID: 7,
		PublicFx: []*curve.Point{randomPoint(t), randomPoint(t), randomPoint(t)},
		Coefficient0Signature: ProofWire{
			Nonce:     randomPoint(t),
			Signature: s1,
		},
		PublicKey: randomPoint(t),
		SecretSignature: ProofWire{
			Nonce:     randomPoint(t),
			Signature: s2,
		},
	}

	encoded, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var decoded Round1Broadcast
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}

	if decoded.SenderID != original.SenderID {
		t.Fatalf("SenderID = %d, want %d", decoded.SenderID, original.SenderID)
	}
	if len(decoded.PublicFx) != len(original.PublicFx) {
		t.Fatalf("PublicFx length = %d, want %d", len(decoded.PublicFx), len(original.PublicFx))
	}
	for i := range original.PublicFx {
		if !decoded.PublicFx[i].Equal(original.PublicFx[i]) {
			t.Fatalf("PublicFx[%d] did not round-trip", i)
		}
	}
	if !decoded.Coefficient0Signature.Nonce.Equal(original.Coefficient0Signature.Nonce) ||
		!decoded.Coefficient0Signature.Signature.Equal(original.Coefficient0Signature.Signature) {
		t.Fatalf("Coefficient0Signature did not round-trip")
	}
	if !decoded.PublicKey.Equal(original.PublicKey) {
		t.Fatalf("PublicKey did not round-trip")
	}
	if !decoded.SecretSignature.Nonce.Equal(original.SecretSignature.Nonce) ||
		!decoded.SecretSignature.Signature.Equal(original.SecretSignature.Signature) {
		t.Fatalf("SecretSignature did not round-trip")
	}
}

// TestRound2EnvelopeRoundtrip covers the per-recipient schema the same way.
func TestRound2EnvelopeRoundtrip(t *testing.T) {
	original := &Round2Envelope{
		SenderID:   3,
		ReceiverID: 9,
		Data:       []byte{0x01, 0x02, 0x03, 0x04},
	}

	encoded, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var decoded Round2Envelope
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if decoded.SenderID != original.SenderID || decoded.ReceiverID != original.ReceiverID {
		t.Fatalf("sender/receiver did not round-trip: got %+v, want %+v", decoded, original)
	}
	if string(decoded.Data) != string(original.Data) {
		t.Fatalf("Data did not round-trip: got %x, want %x", decoded.Data, original.Data)
	}
}

// oversizedEnvelope carries every field of Round2Envelope plus one spec.md
// §6 does not define, simulating a sender on a newer, incompatible schema
// version.
type oversizedEnvelope struct {
	SenderID   uint64 `cbor:"sender_id"`
	ReceiverID uint64 `cbor:"receiver_id"`
	Data       []byte `cbor:"data"`
	Extra      string `cbor:"extra_field_not_in_schema"`
}

// TestDecodeRejectsUnknownField is the mechanical check for spec.md §9's
// "reject unknown fields" redesign flag: strictDecMode must refuse a
// payload carrying a field Round2Envelope does not declare.
func TestDecodeRejectsUnknownField(t *testing.T) {
	encoded, err := cbor.Marshal(oversizedEnvelope{
		SenderID:   1,
		ReceiverID: 2,
		Data:       []byte("payload"),
		Extra:      "a field from a future protocol version",
	})
	if err != nil {
		t.Fatalf("cbor.Marshal: %v", err)
	}

	var envelope Round2Envelope
	if err := Decode(encoded, &envelope); err == nil {
		t.Fatalf("expected Decode to reject an unknown field, got nil error")
	}
}
