package aggregator

import (
	"errors"
	"fmt"

	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/frosterr"
	"github.com/frost-threshold/frostcore/signer"
	"github.com/frost-threshold/frostcore/wire"
	"golang.org/x/exp/maps"
)

// Session is the ROAST-style robust aggregator named in SPEC_FULL.md's
// expansion of this component: it tracks signers excluded across failed
// attempts and retries with a fresh subset drawn from a larger candidate
// pool, so long as at least threshold honest signers remain reachable.
// Grounded on the teacher's root-level roast.go/protocol.go prototype.
//
// Session wraps the plain, stateless [Aggregate] from §4.8, which it calls
// unchanged on every attempt; Session adds nothing to the cryptography,
// only bookkeeping over which candidate signers to ask for a partial next.
type Session struct {
	threshold  int
	candidates []uint64
	excluded   map[uint64]bool
	attempts   int
}

// NewSession starts a robust aggregation session over a candidate pool of
// at least threshold signers. Only a pool larger than threshold leaves
// enough candidates to retry after a signer is excluded.
func NewSession(threshold int, candidates []uint64) (*Session, error) {
	if len(candidates) < threshold {
		return nil, fmt.Errorf("aggregator: candidate pool of %d is smaller than threshold %d", len(candidates), threshold)
	}
	return &Session{
		threshold:  threshold,
		candidates: candidates,
		excluded:   make(map[uint64]bool),
	}, nil
}

// NextSubset returns the next threshold-sized subset of non-excluded
// candidates to request partials from.
func (s *Session) NextSubset() ([]uint64, error) {
	subset := make([]uint64, 0, s.threshold)
	for _, id := range s.candidates {
		if s.excluded[id] {
			continue
		}
		subset = append(subset, id)
		if len(subset) == s.threshold {
			return subset, nil
		}
	}
	return nil, fmt.Errorf("aggregator: not enough non-excluded candidates remain (need %d)", s.threshold)
}

// Attempt runs one aggregation attempt with the partials collected for the
// current subset. On a [frosterr.PartialInvalidError] it excludes the
// offending signer so the next call to [Session.NextSubset] draws a
// replacement, matching ROAST's "exclude and retry" robustness guarantee:
// a valid signature is still produced asynchronously as long as ≥
// threshold honest signers are reachable in the candidate pool.
func (s *Session) Attempt(
	message []byte,
	partials []*signer.Partial,
	commitmentSet []wire.CommitmentEntry,
	groupKey *curve.Point,
) (*Signature, error) {
	s.attempts++

	sig, err := Aggregate(message, partials, commitmentSet, groupKey)
	if err != nil {
		var invalid *frosterr.PartialInvalidError
		if errors.As(err, &invalid) {
			s.excluded[invalid.SignerID] = true
		}
		return nil, err
	}
	return sig, nil
}

// Attempts returns how many aggregation attempts this session has made.
func (s *Session) Attempts() int {
	return s.attempts
}

// Excluded returns the signer ids excluded so far across retries.
func (s *Session) Excluded() []uint64 {
	return maps.Keys(s.excluded)
}
