// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/soldas11/solana-speedsters/components/authority"
)

func TestMintAndBalance(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	addr := ids.GenerateTestShortID()

	balance, err := tokens.Balance(asset, addr)
	require.NoError(err)
	require.Zero(balance)

	require.NoError(tokens.Mint(asset, addr, 1_000))
	require.NoError(tokens.Mint(asset, addr, 500))

	balance, err = tokens.Balance(asset, addr)
	require.NoError(err)
	require.Equal(uint64(1_500), balance)
}

func TestTransferSigner(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	from := ids.GenerateTestShortID()
	to := ids.GenerateTestShortID()

	require.NoError(tokens.Mint(asset, from, 100))

	require.NoError(tokens.Transfer(asset, from, to, Signer{Addr: from}, 60))

	fromBalance, err := tokens.Balance(asset, from)
	require.NoError(err)
	require.Equal(uint64(40), fromBalance)

	toBalance, err := tokens.Balance(asset, to)
	require.NoError(err)
	require.Equal(uint64(60), toBalance)
}

func TestTransferToSelf(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	addr := ids.GenerateTestShortID()

	require.NoError(tokens.Mint(asset, addr, 100))

	require.NoError(tokens.Transfer(asset, addr, addr, Signer{Addr: addr}, 60))

	balance, err := tokens.Balance(asset, addr)
	require.NoError(err)
	require.Equal(uint64(100), balance)

	err = tokens.Transfer(asset, addr, addr, Signer{Addr: addr}, 101)
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestTransferInsufficientFunds(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	from := ids.GenerateTestShortID()
	to := ids.GenerateTestShortID()

	require.NoError(tokens.Mint(asset, from, 10))

	err := tokens.Transfer(asset, from, to, Signer{Addr: from}, 11)
	require.ErrorIs(err, ErrInsufficientFunds)

	// Nothing moved.
	fromBalance, err := tokens.Balance(asset, from)
	require.NoError(err)
	require.Equal(uint64(10), fromBalance)

	toBalance, err := tokens.Balance(asset, to)
	require.NoError(err)
	require.Zero(toBalance)
}

func TestTransferWrongSigner(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	from := ids.GenerateTestShortID()
	to := ids.GenerateTestShortID()

	require.NoError(tokens.Mint(asset, from, 100))

	err := tokens.Transfer(asset, from, to, Signer{Addr: to}, 1)
	require.ErrorIs(err, ErrInvalidAuthorization)
}

func TestTransferDerivedAuthority(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	programID := ids.GenerateTestID()
	to := ids.GenerateTestShortID()

	vault, proof := authority.Derive(authority.EscrowTag, asset, programID)
	require.NoError(tokens.Mint(asset, vault, 1))

	require.NoError(tokens.Transfer(asset, vault, to, Derived{Proof: proof}, 1))

	toBalance, err := tokens.Balance(asset, to)
	require.NoError(err)
	require.Equal(uint64(1), toBalance)
}

func TestTransferDerivedAuthorityWrongVault(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())
	asset := ids.GenerateTestID()
	programID := ids.GenerateTestID()
	to := ids.GenerateTestShortID()

	// A proof scoped to one discriminator cannot debit an account derived
	// from another.
	otherVault, _ := authority.Derive(authority.EscrowTag, ids.GenerateTestID(), programID)
	_, proof := authority.Derive(authority.EscrowTag, asset, programID)
	require.NoError(tokens.Mint(asset, otherVault, 1))

	err := tokens.Transfer(asset, otherVault, to, Derived{Proof: proof}, 1)
	require.ErrorIs(err, ErrInvalidAuthorization)
}

func TestTransferNilAuthorization(t *testing.T) {
	require := require.New(t)

	tokens := New(memdb.New())

	err := tokens.Transfer(ids.GenerateTestID(), ids.GenerateTestShortID(), ids.GenerateTestShortID(), nil, 1)
	require.ErrorIs(err, errNilAuthorization)
}
