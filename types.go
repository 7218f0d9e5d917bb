// Package frostcore is the external-interface facade for the FROST
// threshold Schnorr core: the DataManager, NodeInfo, and Validator
// collaborators named in spec.md §6, plus reference in-memory
// implementations suitable for tests and single-process deployments. The
// cryptographic core itself (curve, poly, schnorrpok, aead, dkg, nonce,
// signer, aggregator, group) has no dependency on this package; frostcore
// depends on them, not the reverse.
package frostcore

import (
	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/nonce"
)

// PrivateNoncePair is the private half of one signer's published nonce
// commitment, the (d, D, e, E) tuple from spec.md §3. It is the nonce
// package's own type; restated here under the §6 name so DataManager's
// signature matches spec.md verbatim.
type PrivateNoncePair = nonce.Pair

// KeyShare is the long-lived output of a completed DKG session (spec.md §3
// "key share"): a participant's final secret share, the group public key,
// and the participant's own verification key. Share carries secret
// material and must be zeroized once consumed.
//
// DKGID ties the share back to the session that produced it.
type KeyShare struct {
	DKGID    string
	Share    *curve.Scalar
	GroupKey *curve.Point
	SelfKey  *curve.Point
}

// Zeroize wipes the secret share. The group key and self key are public
// and are left untouched.
func (k KeyShare) Zeroize() {
	if k.Share != nil {
		k.Share.Zeroize()
	}
}

// PeerInfo is what NodeInfo.Lookup resolves an id to: enough to address and
// authenticate a peer without this package caring how the transport layer
// uses it.
type PeerInfo struct {
	ID        uint64
	Address   string
	PublicKey *curve.Point
}
