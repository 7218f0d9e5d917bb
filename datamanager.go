package frostcore

import (
	"fmt"
	"sync"

	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/nonce"
)

// DataManager owns atomic put/take on the nonce and key stores, per spec.md
// §5 and §6. It is the single collaborator allowed to hold long-lived
// secret material outside an in-flight dkg.Session or signer.Sign call.
type DataManager interface {
	StoreNonces(id uint64, pairs []PrivateNoncePair) error
	TakeNonce(id uint64, d curve.Point) (PrivateNoncePair, error)
	StoreKey(dkgID string, share KeyShare) error
	LoadKey(dkgID string) (KeyShare, error)
}

// MemoryDataManager is the reference DataManager: an in-process, mutex-
// guarded store suitable for tests and single-node deployments. It adapts
// the value-typed DataManager contract onto the nonce package's pointer-
// typed nonce.Store, which is what signer.Sign actually calls.
type MemoryDataManager struct {
	mu     sync.Mutex
	nonces nonce.Store
	keys   map[string]KeyShare
}

// NewMemoryDataManager builds a MemoryDataManager backed by a fresh
// in-memory nonce store.
func NewMemoryDataManager() *MemoryDataManager {
	return &MemoryDataManager{
		nonces: nonce.NewMemoryStore(),
		keys:   make(map[string]KeyShare),
	}
}

func (m *MemoryDataManager) StoreNonces(id uint64, pairs []PrivateNoncePair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ptrs := make([]*nonce.Pair, len(pairs))
	for i := range pairs {
		ptrs[i] = &pairs[i]
	}
	return m.nonces.Put(id, ptrs)
}

func (m *MemoryDataManager) TakeNonce(id uint64, d curve.Point) (PrivateNoncePair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, err := m.nonces.Take(id, &d)
	if err != nil {
		return PrivateNoncePair{}, err
	}
	return *pair, nil
}

func (m *MemoryDataManager) StoreKey(dkgID string, share KeyShare) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.keys[dkgID]; exists {
		return fmt.Errorf("frostcore: a key share for dkg %q is already stored", dkgID)
	}
	m.keys[dkgID] = share
	return nil
}

func (m *MemoryDataManager) LoadKey(dkgID string) (KeyShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	share, ok := m.keys[dkgID]
	if !ok {
		return KeyShare{}, fmt.Errorf("frostcore: no key share stored for dkg %q", dkgID)
	}
	return share, nil
}
