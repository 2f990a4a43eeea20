// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package authority

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	require := require.New(t)

	programID := ids.GenerateTestID()
	discriminator := ids.GenerateTestID()

	addr1, proof1 := Derive(VestingVaultTag, discriminator, programID)
	addr2, proof2 := Derive(VestingVaultTag, discriminator, programID)

	require.Equal(addr1, addr2)
	require.Equal(proof1, proof2)
	require.Equal(addr1, proof1.Address())
	require.NoError(proof1.Verify())
}

func TestDeriveScoping(t *testing.T) {
	require := require.New(t)

	programID := ids.GenerateTestID()
	otherProgramID := ids.GenerateTestID()
	discriminator := ids.GenerateTestID()
	otherDiscriminator := ids.GenerateTestID()

	base, _ := Derive(EscrowTag, discriminator, programID)

	differentTag, _ := Derive(StakingVaultTag, discriminator, programID)
	require.NotEqual(base, differentTag)

	differentDiscriminator, _ := Derive(EscrowTag, otherDiscriminator, programID)
	require.NotEqual(base, differentDiscriminator)

	differentProgram, _ := Derive(EscrowTag, discriminator, otherProgramID)
	require.NotEqual(base, differentProgram)
}

func TestProofVerify(t *testing.T) {
	programID := ids.GenerateTestID()

	tests := []struct {
		name        string
		proof       *Proof
		expectedErr error
	}{
		{
			name: "valid",
			proof: &Proof{
				SeedTag:   EscrowTag,
				ProgramID: programID,
			},
			expectedErr: nil,
		},
		{
			name: "empty seed tag",
			proof: &Proof{
				ProgramID: programID,
			},
			expectedErr: ErrEmptySeedTag,
		},
		{
			name: "empty program",
			proof: &Proof{
				SeedTag: EscrowTag,
			},
			expectedErr: ErrEmptyProgramID,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.proof.Verify()
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
