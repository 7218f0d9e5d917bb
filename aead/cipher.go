package aead

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// PairwiseCipher encrypts and decrypts the messages exchanged between a
// single (sender, receiver) pair within one DKG session. Its key is used
// exactly once per session (spec.md §4.4: "a per-session counter is
// acceptable since the key is single-instance"), so nonces are derived from
// a monotonically increasing counter rather than sampled at random.
type PairwiseCipher struct {
	aead    cipher.AEAD
	counter uint64
}

// NewPairwiseCipher builds a cipher over a 32-byte key derived by
// [DerivePairwiseKey].
func NewPairwiseCipher(key []byte) (*PairwiseCipher, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("aead: initializing cipher: %w", err)
	}
	return &PairwiseCipher{aead: aead}, nil
}

// Seal encrypts plaintext with the given associated data (dkg_id,
// sender_id, receiver_id per spec.md §4.4) and advances the internal nonce
// counter. The nonce is not secret and is prepended to the ciphertext.
func (c *PairwiseCipher) Seal(associatedData, plaintext []byte) []byte {
	nonce := make([]byte, c.aead.NonceSize())
	binary.BigEndian.PutUint64(nonce[c.aead.NonceSize()-8:], c.counter)
	c.counter++

	sealed := c.aead.Seal(nil, nonce, plaintext, associatedData)
	return append(nonce, sealed...)
}

// Open decrypts a ciphertext produced by Seal. A failure here is a protocol
// fault attributable to the sender (spec.md §4.4: "Decryption failure is a
// protocol fault attributable to the sender"), surfaced by the caller as
// DecryptFailed(sender_id).
func (c *PairwiseCipher) Open(associatedData, ciphertext []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("aead: ciphertext shorter than nonce")
	}
	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, sealed, associatedData)
	if err != nil {
		return nil, fmt.Errorf("aead: decryption failed: %w", err)
	}
	return plaintext, nil
}
