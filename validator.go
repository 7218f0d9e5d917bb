package frostcore

import "github.com/frost-threshold/frostcore/curve"

// Validator authorizes which public keys may initiate a DKG or act as the
// aggregator for a signing session, per spec.md §6. Neither role is
// enforced by dkg or aggregator themselves — both are pure protocol state
// machines — so a caller is expected to consult Validator before handing a
// session its inputs.
type Validator interface {
	IsAuthorizedAggregator(pk curve.Point) bool
	IsAuthorizedDKGInitiator(pk curve.Point) bool
}

// AllowlistValidator authorizes exactly the public keys it was built with,
// distinguishing the aggregator role from the DKG-initiator role.
type AllowlistValidator struct {
	aggregators map[string]bool
	initiators  map[string]bool
}

// NewAllowlistValidator builds a Validator from two explicit allowlists.
func NewAllowlistValidator(aggregators, initiators []*curve.Point) *AllowlistValidator {
	v := &AllowlistValidator{
		aggregators: make(map[string]bool, len(aggregators)),
		initiators:  make(map[string]bool, len(initiators)),
	}
	for _, pk := range aggregators {
		v.aggregators[keyOf(pk)] = true
	}
	for _, pk := range initiators {
		v.initiators[keyOf(pk)] = true
	}
	return v
}

func (v *AllowlistValidator) IsAuthorizedAggregator(pk curve.Point) bool {
	return v.aggregators[keyOf(&pk)]
}

func (v *AllowlistValidator) IsAuthorizedDKGInitiator(pk curve.Point) bool {
	return v.initiators[keyOf(&pk)]
}

func keyOf(pk *curve.Point) string {
	if pk.IsIdentity() {
		return ""
	}
	return string(pk.SerializeCompressed())
}
