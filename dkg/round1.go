package dkg

import (
	"fmt"

	"github.com/frost-threshold/frostcore/aead"
	"github.com/frost-threshold/frostcore/curve"
	"github.com/frost-threshold/frostcore/poly"
	"github.com/frost-threshold/frostcore/schnorrpok"
	"github.com/frost-threshold/frostcore/wire"
)

// Round1 implements spec.md §4.5 Round 1: sample f_i (respecting a0 if
// supplied), generate the ephemeral ECDH keypair, and produce the
// broadcast payload {id_i, C_{i,*}, epk_i, π_{i,0}, π_{i,epk}}.
//
// a0 may be nil, in which case the constant term is sampled uniformly from
// [1, q) as spec.md §3 requires; otherwise it is used verbatim, letting a
// caller derive deterministic key material.
func (s *Session) Round1(a0 *curve.Scalar) (*Round1Broadcast, error) {
	if s.state != StateInit {
		return nil, fmt.Errorf("dkg: Round1 called out of order in state %d", s.state)
	}

	p, err := poly.Generate(s.Threshold, a0)
	if err != nil {
		return nil, fmt.Errorf("dkg: generating sharing polynomial: %w", err)
	}
	s.polynomial = p

	ephemeral, err := aead.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("dkg: generating ephemeral keypair: %w", err)
	}
	s.ephemeral = ephemeral

	commitments := p.Commit()

	coef0Proof, err := schnorrpok.Prove(p.ConstantTerm(), commitments[0], s.proofContext("coef0"))
	if err != nil {
		return nil, fmt.Errorf("dkg: proving knowledge of a0: %w", err)
	}

	epkProof, err := schnorrpok.Prove(ephemeral.Private, ephemeral.Public, s.proofContext("epk"))
	if err != nil {
		return nil, fmt.Errorf("dkg: proving knowledge of esk: %w", err)
	}

	s.state = StateAwaitRound2

	return &Round1Broadcast{
		SenderID:              s.Self,
		PublicFx:              commitments,
		Coefficient0Signature: proofToWire(coef0Proof),
		PublicKey:             ephemeral.Public,
		SecretSignature:       proofToWire(epkProof),
	}, nil
}

func proofToWire(p *schnorrpok.Proof) wire.ProofWire {
	return wire.ProofWire{Nonce: p.R, Signature: p.S}
}

func proofFromWire(p wire.ProofWire) *schnorrpok.Proof {
	return &schnorrpok.Proof{R: p.Nonce, S: p.Signature}
}
