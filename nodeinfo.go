package frostcore

import "fmt"

// NodeInfo resolves participant ids to addressable peers and a DKG session
// to its participant set, per spec.md §6. It is read-only from this
// package's point of view — membership and discovery live with the caller.
type NodeInfo interface {
	Lookup(id uint64) (PeerInfo, error)
	PeersOf(dkgID string) ([]uint64, error)
}

// StaticNodeInfo is the reference NodeInfo: a fixed peer directory and a
// fixed id-to-dkg membership table, suitable for tests and any deployment
// where the participant set is configured up front rather than discovered.
// Grounded on the teacher's coordinator.go, which built an equivalent
// in-memory id->member map once at Initialise(n, t) and never mutated it
// for the lifetime of a run.
type StaticNodeInfo struct {
	peers      map[uint64]PeerInfo
	membership map[string][]uint64
}

// NewStaticNodeInfo builds a StaticNodeInfo from a peer directory. Use
// AddSession to register a DKG session's participant set.
func NewStaticNodeInfo(peers []PeerInfo) *StaticNodeInfo {
	n := &StaticNodeInfo{
		peers:      make(map[uint64]PeerInfo, len(peers)),
		membership: make(map[string][]uint64),
	}
	for _, p := range peers {
		n.peers[p.ID] = p
	}
	return n
}

// AddSession registers which participant ids belong to a DKG session, so a
// later PeersOf(dkgID) call can resolve it.
func (n *StaticNodeInfo) AddSession(dkgID string, ids []uint64) {
	n.membership[dkgID] = append([]uint64(nil), ids...)
}

func (n *StaticNodeInfo) Lookup(id uint64) (PeerInfo, error) {
	peer, ok := n.peers[id]
	if !ok {
		return PeerInfo{}, fmt.Errorf("frostcore: no peer registered for id %d", id)
	}
	return peer, nil
}

func (n *StaticNodeInfo) PeersOf(dkgID string) ([]uint64, error) {
	ids, ok := n.membership[dkgID]
	if !ok {
		return nil, fmt.Errorf("frostcore: no participant set registered for dkg %q", dkgID)
	}
	return ids, nil
}
