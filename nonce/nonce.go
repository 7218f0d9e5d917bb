// Package nonce implements spec.md §4.6: batch generation of per-signing
// nonce pairs (d, e) and the public commitments (D, E) published ahead of a
// signing event. It is grounded in the teacher's frost.Signer.Round1 /
// generateNonce, generalized from a single hiding/binding pair per call to
// a batch API and a pluggable DataManager-backed store.
package nonce

import (
	"fmt"
	"sync"

	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/frosterr"
	"github.com/zeebo/blake3"
)

// Pair is a single (d, e) private nonce pair together with its public
// commitment (D, E), as produced by [Generate].
type Pair struct {
	SignerID uint64
	D        *curve.Point
	E        *curve.Point

	d *curve.Scalar
	e *curve.Scalar
}

// PublicCommitment is the half of a [Pair] a signer discloses, the
// {id, D, E} entry eventually placed in a signing event's commitment set B.
type PublicCommitment struct {
	SignerID uint64
	D        *curve.Point
	E        *curve.Point
}

// Public returns this pair's disclosed commitment.
func (p *Pair) Public() PublicCommitment {
	return PublicCommitment{SignerID: p.SignerID, D: p.D, E: p.E}
}

// Hiding returns the private scalar d behind the public commitment D.
func (p *Pair) Hiding() *curve.Scalar {
	return p.d
}

// Binding returns the private scalar e behind the public commitment E.
func (p *Pair) Binding() *curve.Scalar {
	return p.e
}

// Zeroize overwrites the private halves. Callers MUST call this once a
// pair has been consumed by a signing attempt (spec.md §5 zeroization
// mandate).
func (p *Pair) Zeroize() {
	p.d.Zeroize()
	p.e.Zeroize()
}

// Generate implements create_nonces(id, k) from spec.md §4.6: it samples k
// fresh nonce pairs uniformly from [1, q) by rejection sampling (delegated
// to [curve.RandomScalar]) and returns them alongside their public
// commitments, in matching order.
func Generate(signerID uint64, k int) ([]*Pair, error) {
	if k < 1 {
		return nil, fmt.Errorf("nonce: k must be at least 1, got %d", k)
	}

	pairs := make([]*Pair, k)
	for i := 0; i < k; i++ {
		d, err := curve.RandomScalar()
		if err != nil {
			return nil, fmt.Errorf("nonce: sampling hiding nonce %d: %w", i, err)
		}
		e, err := curve.RandomScalar()
		if err != nil {
			return nil, fmt.Errorf("nonce: sampling binding nonce %d: %w", i, err)
		}

		pairs[i] = &Pair{
			SignerID: signerID,
			D:        curve.ScalarBaseMul(d),
			E:        curve.ScalarBaseMul(e),
			d:        d,
			e:        e,
		}
	}
	return pairs, nil
}

// Handle derives the DataManager store key for a nonce pair's public
// commitment D. It is a plain non-domain-separated digest (not the BIP-340
// tagged hash used for Schnorr challenges, which is reserved for
// consensus-critical values) since a handle is only ever compared for
// equality within a single DataManager instance.
func Handle(d *curve.Point) []byte {
	digest := blake3.Sum256(d.SerializeCompressed())
	return digest[:]
}

// Store is the minimal DataManager-backed contract spec.md §5 requires of
// the nonce pool: atomic put/take keyed by handle, enforcing single-use.
// The core treats an implementation as an opaque key-value store; this
// interface lets a caller plug in whatever persistence they already run
// (spec.md §6's DataManager contract).
type Store interface {
	Put(signerID uint64, pairs []*Pair) error
	Take(signerID uint64, d *curve.Point) (*Pair, error)
}

// MemoryStore is a minimal in-process [Store], useful for tests and for
// single-process deployments that do not need external persistence. It is
// not a substitute for a durable DataManager implementation.
type MemoryStore struct {
	mu       sync.Mutex
	bySigner map[uint64]map[string]*Pair
}

// NewMemoryStore returns an empty in-memory nonce store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bySigner: make(map[uint64]map[string]*Pair)}
}

// Put implements [Store.Put].
func (s *MemoryStore) Put(signerID uint64, pairs []*Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.bySigner[signerID]
	if !ok {
		bucket = make(map[string]*Pair)
		s.bySigner[signerID] = bucket
	}
	for _, p := range pairs {
		bucket[string(Handle(p.D))] = p
	}
	return nil
}

// Take implements [Store.Take]: atomically retrieves and removes the
// private pair for commitment d, or reports NonceMissing if absent or
// already consumed (spec.md §8 testable property 4: nonce single-use).
func (s *MemoryStore) Take(signerID uint64, d *curve.Point) (*Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.bySigner[signerID]
	if !ok {
		return nil, &frosterr.NonceMissingError{D: d.SerializeCompressed()}
	}
	key := string(Handle(d))
	pair, ok := bucket[key]
	if !ok {
		return nil, &frosterr.NonceMissingError{D: d.SerializeCompressed()}
	}
	delete(bucket, key)
	return pair, nil
}
