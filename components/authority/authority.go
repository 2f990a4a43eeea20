// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package authority derives keyless account addresses scoped to a program.
//
// A derived address has no corresponding private key. The only way to
// authorize a transfer out of an account it owns is to recompute the same
// derivation, which requires knowing the seed tag, the discriminating key,
// and the identity of the owning program. The Proof returned by Derive
// carries exactly that preimage so the program can re-assert the derivation
// at execution time.
package authority

import (
	"errors"

	"github.com/luxfi/ids"

	"github.com/soldas11/solana-speedsters/utils/hashing"
)

// Seed tags used by the custody programs. Each tag scopes a family of
// vault addresses to one purpose.
const (
	VestingVaultTag = "vesting-vault"
	StakingVaultTag = "staking-vault"
	EscrowTag       = "escrow"
)

var (
	ErrEmptySeedTag   = errors.New("empty seed tag")
	ErrEmptyProgramID = errors.New("empty program ID")
)

// Proof is the preimage of a derived address. Presenting a valid Proof to
// the token ledger authorizes transfers out of the derived account.
type Proof struct {
	SeedTag       string `serialize:"true" json:"seedTag"`
	Discriminator ids.ID `serialize:"true" json:"discriminator"`
	ProgramID     ids.ID `serialize:"true" json:"programID"`
}

// Derive computes the address owned by [programID] for [seedTag] scoped by
// [discriminator], along with the proof that reproduces it. The computation
// is deterministic and one-way: the address reveals nothing about its
// preimage.
func Derive(seedTag string, discriminator ids.ID, programID ids.ID) (ids.ShortID, *Proof) {
	p := &Proof{
		SeedTag:       seedTag,
		Discriminator: discriminator,
		ProgramID:     programID,
	}
	return p.Address(), p
}

// Address recomputes the derived address from the proof's preimage.
func (p *Proof) Address() ids.ShortID {
	preimage := make([]byte, 0, 1+len(p.SeedTag)+2*ids.IDLen)
	preimage = append(preimage, byte(len(p.SeedTag)))
	preimage = append(preimage, p.SeedTag...)
	preimage = append(preimage, p.Discriminator[:]...)
	preimage = append(preimage, p.ProgramID[:]...)
	return ids.ShortID(hashing.ComputeHash160Array(preimage))
}

// Verify returns nil if the proof is well-formed.
func (p *Proof) Verify() error {
	switch {
	case p == nil:
		return errors.New("nil proof")
	case p.SeedTag == "":
		return ErrEmptySeedTag
	case len(p.SeedTag) > 0xff:
		return errors.New("seed tag too long")
	case p.ProgramID == ids.Empty:
		return ErrEmptyProgramID
	default:
		return nil
	}
}
