// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the fungible-token transfer primitive backing
// the custody programs. Balances are keyed by (asset, account) and every
// outbound transfer must present an authorization: either the signature of
// the debited account itself or a derived-authority proof that reproduces
// the debited address.
package ledger

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	safemath "github.com/luxfi/math"

	"github.com/soldas11/solana-speedsters/components/authority"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAuthorization = errors.New("invalid authorization")

	errNilAuthorization = errors.New("nil authorization")

	_ Ledger = (*store)(nil)

	_ Authorization = Signer{}
	_ Authorization = Derived{}
)

// Authorization approves an outbound transfer from an account.
type Authorization interface {
	// Authorize returns nil if this authorization permits debiting [from].
	Authorize(from ids.ShortID) error
}

// Signer authorizes transfers out of the signer's own account.
type Signer struct {
	Addr ids.ShortID
}

func (s Signer) Authorize(from ids.ShortID) error {
	if s.Addr != from {
		return fmt.Errorf("%w: signer %s cannot debit %s", ErrInvalidAuthorization, s.Addr, from)
	}
	return nil
}

// Derived authorizes transfers out of a program-derived account. The debited
// address is recomputed from the proof's preimage, so a proof only ever
// unlocks the single address its owning program derived.
type Derived struct {
	Proof *authority.Proof
}

func (d Derived) Authorize(from ids.ShortID) error {
	if err := d.Proof.Verify(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAuthorization, err)
	}
	if addr := d.Proof.Address(); addr != from {
		return fmt.Errorf("%w: proof derives %s, not %s", ErrInvalidAuthorization, addr, from)
	}
	return nil
}

// Ledger is the transfer primitive contract required by the custody
// programs. Transfer fails indivisibly: either both balance updates are
// staged or neither is.
type Ledger interface {
	// Transfer moves [amount] units of [asset] from [from] to [to] if
	// [auth] permits debiting [from].
	Transfer(asset ids.ID, from, to ids.ShortID, auth Authorization, amount uint64) error

	// Balance returns the balance of [addr] for [asset]. Accounts that were
	// never credited have a zero balance.
	Balance(asset ids.ID, addr ids.ShortID) (uint64, error)

	// Mint credits [amount] fresh units of [asset] to [to]. Issuance is the
	// concern of the hosting environment; it requires no authorization here.
	Mint(asset ids.ID, to ids.ShortID, amount uint64) error
}

type store struct {
	db database.Database
}

// New returns a Ledger persisting balances in [db]. Layer [db] over the
// operation's versioned database so that transfers commit or abort with the
// rest of the operation.
func New(db database.Database) Ledger {
	return &store{db: db}
}

func (s *store) Transfer(asset ids.ID, from, to ids.ShortID, auth Authorization, amount uint64) error {
	if auth == nil {
		return errNilAuthorization
	}
	if err := auth.Authorize(from); err != nil {
		return err
	}

	fromBalance, err := s.Balance(asset, from)
	if err != nil {
		return err
	}
	newFromBalance, err := safemath.Sub(fromBalance, amount)
	if err != nil {
		return fmt.Errorf("%w: account %s holds %d, needs %d", ErrInsufficientFunds, from, fromBalance, amount)
	}

	// A self-transfer of a sufficient balance is a no-op. Writing both legs
	// would credit the stale balance back over the debit.
	if from == to {
		return nil
	}

	toBalance, err := s.Balance(asset, to)
	if err != nil {
		return err
	}
	newToBalance, err := safemath.Add64(toBalance, amount)
	if err != nil {
		return err
	}

	if err := database.PutUInt64(s.db, balanceKey(asset, from), newFromBalance); err != nil {
		return err
	}
	return database.PutUInt64(s.db, balanceKey(asset, to), newToBalance)
}

func (s *store) Balance(asset ids.ID, addr ids.ShortID) (uint64, error) {
	balance, err := database.GetUInt64(s.db, balanceKey(asset, addr))
	if err == database.ErrNotFound {
		return 0, nil
	}
	return balance, err
}

func (s *store) Mint(asset ids.ID, to ids.ShortID, amount uint64) error {
	balance, err := s.Balance(asset, to)
	if err != nil {
		return err
	}
	newBalance, err := safemath.Add64(balance, amount)
	if err != nil {
		return err
	}
	return database.PutUInt64(s.db, balanceKey(asset, to), newBalance)
}

func balanceKey(asset ids.ID, addr ids.ShortID) []byte {
	key := make([]byte, 0, ids.IDLen+ids.ShortIDLen)
	key = append(key, asset[:]...)
	key = append(key, addr[:]...)
	return key
}
