// Package wire defines the canonical, tagged-field encodings named in
// spec.md §6: the round 1 and round 2 message schemas, the round 3 status
// values, the commitment-set encoding used by signing, and the public
// signature artifact. Round messages are
// modelled as explicit structs rather than dynamic dictionaries (the
// redesign flag in spec.md §9) and decoded with unknown fields rejected.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var strictDecMode = func() cbor.DecMode {
	mode, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: building strict decode mode: %v", err))
	}
	return mode
}()

// Encode serializes v into its canonical CBOR wire representation.
func Encode(v any) ([]byte, error) {
	b, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: encoding: %w", err)
	}
	return b, nil
}

// Decode parses b into v, rejecting any field not present in v's schema.
// This is the mechanical enforcement of spec.md §9's "reject unknown
// fields" redesign flag.
func Decode(b []byte, v any) error {
	if err := strictDecMode.Unmarshal(b, v); err != nil {
		return fmt.Errorf("wire: decoding: %w", err)
	}
	return nil
}
