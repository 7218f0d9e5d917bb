// Package frosterr defines the typed error kinds from spec.md §7. Every
// error is synchronous and carries the offending identifier so a caller can
// attribute blame without inspecting error strings; the core never retries
// internally.
package frosterr

import "fmt"

// InputInvalidError reports a structurally bad argument: duplicate id,
// wrong length, non-canonical point. This is a caller bug and is not
// retryable.
type InputInvalidError struct {
	Reason string
}

func (e *InputInvalidError) Error() string {
	return fmt.Sprintf("frost: invalid input: %s", e.Reason)
}

// NewInputInvalid builds an [InputInvalidError].
func NewInputInvalid(reason string) error {
	return &InputInvalidError{Reason: reason}
}

// ProofInvalidError reports a failed DKG round-1 Schnorr proof. Because
// round-1 broadcasts are public, this is globally attributable and aborts
// the whole session.
type ProofInvalidError struct {
	SenderID uint64
	Which    string // "coef0", "epk", or "public_fx length"
}

func (e *ProofInvalidError) Error() string {
	return fmt.Sprintf("frost: %s proof from participant %d failed to verify", e.Which, e.SenderID)
}

// ShareInvalidError reports a round-3 polynomial consistency check failure:
// a decrypted share that does not match the sender's broadcast commitments.
// Produces complaint evidence.
type ShareInvalidError struct {
	SenderID uint64
}

func (e *ShareInvalidError) Error() string {
	return fmt.Sprintf("frost: share from participant %d failed the commitment check", e.SenderID)
}

// DecryptFailedError reports an AEAD failure decrypting a round-2
// ciphertext. Produces complaint evidence.
type DecryptFailedError struct {
	SenderID uint64
}

func (e *DecryptFailedError) Error() string {
	return fmt.Sprintf("frost: decrypting the round 2 ciphertext from participant %d failed", e.SenderID)
}

// NonceMissingError reports that a signer cannot find the private pair for
// its own published commitment D — either it was never stored, or it was
// already consumed by a prior signing attempt (nonces are strictly
// single-use, spec.md §3).
type NonceMissingError struct {
	D []byte
}

func (e *NonceMissingError) Error() string {
	return fmt.Sprintf("frost: no private nonce pair stored for commitment %x", e.D)
}

// BadCommitmentsError reports an aggregated R equal to the identity, or a
// duplicate id within the commitment set B.
type BadCommitmentsError struct {
	Reason string
}

func (e *BadCommitmentsError) Error() string {
	return fmt.Sprintf("frost: bad commitment set: %s", e.Reason)
}

// InconsistentAggregateError reports that the partial signatures being
// aggregated disagree on the group nonce commitment R.
type InconsistentAggregateError struct{}

func (e *InconsistentAggregateError) Error() string {
	return "frost: partial signatures disagree on the group nonce commitment R"
}

// PartialInvalidError reports that a specific signer's partial signature
// failed verification. Aggregation fails with this error; recovery (e.g.
// excluding the signer and retrying) is delegated to the caller.
type PartialInvalidError struct {
	SignerID uint64
}

func (e *PartialInvalidError) Error() string {
	return fmt.Sprintf("frost: partial signature from signer %d is invalid", e.SignerID)
}
