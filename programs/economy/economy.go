// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package economy implements the vesting engine and the staking ledger.
// Both move tokens into custody vaults owned by derived authorities; only
// this program, by re-deriving the vault authority at execution time, can
// move tokens back out.
package economy

import (
	"errors"

	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/soldas11/solana-speedsters/components/ledger"
	"github.com/soldas11/solana-speedsters/programs/economy/config"
	"github.com/soldas11/solana-speedsters/programs/economy/state"
	"github.com/soldas11/solana-speedsters/utils/timer/mockable"
)

var (
	// ErrNoTokensToRelease is a no-op guard, not a fault: callers may poll
	// release until time unlocks more of the grant.
	ErrNoTokensToRelease = errors.New("no tokens to release")

	// ErrInsufficientStake is returned when an unstake exceeds the caller's
	// outstanding stake.
	ErrInsufficientStake = errors.New("insufficient stake")

	// ErrUnauthorized is returned when the caller does not own the stake
	// account it is trying to draw from.
	ErrUnauthorized = errors.New("caller does not own the stake account")

	// ErrInvalidVestingWindow is returned when a schedule's timestamps are
	// not ordered start <= cliff <= end with a positive duration. A zero
	// duration would divide by zero in the vesting curve, so it is rejected
	// at creation.
	ErrInvalidVestingWindow = errors.New("invalid vesting window")

	errStakeAssetNotConfigured = errors.New("stake asset not configured")

	statePrefix = []byte("economyState")
)

// Economy executes the vesting and staking operations. Each public
// operation is one atomic unit: on any failure every staged mutation is
// abandoned and the database is left untouched.
//
// Economy is not safe for concurrent use; the hosting environment orders
// operations (see speedsters.Suite).
type Economy struct {
	cfg       *config.Config
	programID ids.ID

	log     log.Logger
	clock   *mockable.Clock
	metrics *economyMetrics

	baseDB *versiondb.Database
	state  state.State
	tokens ledger.Ledger
}

// New returns an economy program persisting its records under [baseDB].
// [tokens] must be layered over the same versioned database so that balance
// movements and record updates commit together.
func New(
	cfg *config.Config,
	programID ids.ID,
	baseDB *versiondb.Database,
	tokens ledger.Ledger,
	clock *mockable.Clock,
	lg log.Logger,
	registerer metric.Registerer,
) (*Economy, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Economy{
		cfg:       cfg,
		programID: programID,
		log:       lg,
		clock:     clock,
		metrics:   metrics,
		baseDB:    baseDB,
		state:     state.New(prefixdb.New(statePrefix, baseDB)),
		tokens:    tokens,
	}, nil
}

// commit finalizes the current operation: all staged mutations are written
// through on success and discarded on failure.
func (e *Economy) commit(err error) error {
	if err != nil {
		e.baseDB.Abort()
		return err
	}
	return e.baseDB.Commit()
}
