// Package aead implements the authenticated encryption used for pairwise
// share delivery in DKG round 2 (spec.md §4.4): ECDH key agreement between
// per-session ephemeral keypairs, HKDF-SHA256 key derivation fixing the open
// question left in spec.md §9 ("an implementer should fix a single
// HKDF-based construction with the label frost-pair"), and a
// ChaCha20-Poly1305 AEAD over the derived key.
package aead

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/frost-threshold/frostcore/curve"
	"golang.org/x/crypto/hkdf"
)

// kdfInfo is the fixed HKDF info label from spec.md §4.4/§9.
const kdfInfo = "frost-pair"

// KeyPair is a per-DKG-session ephemeral ECDH keypair (esk_i, epk_i).
type KeyPair struct {
	Private *curve.Scalar
	Public  *curve.Point
}

// GenerateKeyPair samples a fresh ephemeral keypair.
func GenerateKeyPair() (*KeyPair, error) {
	sk, err := curve.RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("aead: generating ephemeral key: %w", err)
	}
	return &KeyPair{Private: sk, Public: curve.ScalarBaseMul(sk)}, nil
}

// Zeroize overwrites the ephemeral private key.
func (kp *KeyPair) Zeroize() {
	kp.Private.Zeroize()
}

// DerivePairwiseKey implements k_ij = KDF(ECDH(esk_i, epk_j), "frost-pair")
// from spec.md §4.4. The ECDH secret is the x-coordinate of esk*epk; HKDF
// with a fixed info label turns it into a 32-byte symmetric key.
func DerivePairwiseKey(esk *curve.Scalar, epkPeer *curve.Point) ([]byte, error) {
	shared := curve.ScalarMul(epkPeer, esk)
	if shared.IsIdentity() {
		return nil, fmt.Errorf("aead: ECDH produced the identity element")
	}

	sharedXBytes := shared.SerializeCompressed()[1:] // drop the parity prefix byte

	kdf := hkdf.New(sha256.New, sharedXBytes, nil, []byte(kdfInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("aead: deriving pairwise key: %w", err)
	}
	return key, nil
}
