// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package economy

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	safemath "github.com/luxfi/math"

	"github.com/soldas11/solana-speedsters/components/authority"
	"github.com/soldas11/solana-speedsters/components/ledger"
	"github.com/soldas11/solana-speedsters/programs/economy/state"
	"github.com/soldas11/solana-speedsters/utils/hashing"
)

// CreateVestingSchedule funds a fresh custody vault with [totalAmount] of
// [asset] drawn from [caller] and records the grant. The returned schedule
// ID names the grant for later releases.
func (e *Economy) CreateVestingSchedule(
	caller ids.ShortID,
	beneficiary ids.ShortID,
	asset ids.ID,
	totalAmount uint64,
	startTime int64,
	cliffTime int64,
	endTime int64,
) (ids.ID, error) {
	scheduleID, err := e.createVestingSchedule(caller, beneficiary, asset, totalAmount, startTime, cliffTime, endTime)
	if err := e.commit(err); err != nil {
		return ids.Empty, err
	}

	e.metrics.numSchedulesCreated.Inc()
	e.log.Info("created vesting schedule",
		"schedule", scheduleID,
		"beneficiary", beneficiary,
		"amount", totalAmount,
	)
	return scheduleID, nil
}

func (e *Economy) createVestingSchedule(
	caller ids.ShortID,
	beneficiary ids.ShortID,
	asset ids.ID,
	totalAmount uint64,
	startTime int64,
	cliffTime int64,
	endTime int64,
) (ids.ID, error) {
	if startTime > cliffTime || cliffTime > endTime || startTime >= endTime {
		return ids.Empty, ErrInvalidVestingWindow
	}

	seq, err := e.state.NextScheduleSequence()
	if err != nil {
		return ids.Empty, err
	}
	scheduleID := scheduleID(seq, caller, beneficiary, asset)

	vault, _ := authority.Derive(authority.VestingVaultTag, scheduleID, e.programID)
	if err := e.tokens.Transfer(asset, caller, vault, ledger.Signer{Addr: caller}, totalAmount); err != nil {
		return ids.Empty, err
	}

	return scheduleID, e.state.PutVestingSchedule(scheduleID, &state.VestingSchedule{
		Authority:      caller,
		Beneficiary:    beneficiary,
		Asset:          asset,
		TotalAmount:    totalAmount,
		StartTime:      startTime,
		CliffTime:      cliffTime,
		EndTime:        endTime,
		ReleasedAmount: 0,
	})
}

// ReleaseVestedTokens moves every currently-vested-but-unreleased unit from
// the schedule's vault to the beneficiary and returns the amount moved.
// Returns ErrNoTokensToRelease when the curve has not unlocked anything new.
func (e *Economy) ReleaseVestedTokens(scheduleID ids.ID) (uint64, error) {
	released, err := e.releaseVestedTokens(scheduleID)
	if err := e.commit(err); err != nil {
		return 0, err
	}

	e.metrics.numReleases.Inc()
	e.metrics.amountReleased.Add(float64(released))
	e.log.Info("released vested tokens",
		"schedule", scheduleID,
		"amount", released,
	)
	return released, nil
}

func (e *Economy) releaseVestedTokens(scheduleID ids.ID) (uint64, error) {
	schedule, err := e.state.GetVestingSchedule(scheduleID)
	if err != nil {
		return 0, err
	}

	now := e.clock.UnixTime()
	vested := vestedAmount(now, schedule.StartTime, schedule.CliffTime, schedule.EndTime, schedule.TotalAmount)
	if vested <= schedule.ReleasedAmount {
		return 0, ErrNoTokensToRelease
	}

	releasable, err := safemath.Sub(vested, schedule.ReleasedAmount)
	if err != nil {
		return 0, err
	}

	vault, proof := authority.Derive(authority.VestingVaultTag, scheduleID, e.programID)
	if err := e.tokens.Transfer(schedule.Asset, vault, schedule.Beneficiary, ledger.Derived{Proof: proof}, releasable); err != nil {
		return 0, err
	}

	schedule.ReleasedAmount, err = safemath.Add64(schedule.ReleasedAmount, releasable)
	if err != nil {
		return 0, err
	}
	return releasable, e.state.PutVestingSchedule(scheduleID, schedule)
}

// vestedAmount evaluates the vesting curve at [now]: zero before the cliff,
// the full grant at or after the end, and linear in elapsed time between.
// The multiply runs at 256-bit width so large grants over long windows
// cannot overflow; division floors, and the end-time branch guarantees the
// final unit is eventually released.
func vestedAmount(now, startTime, cliffTime, endTime int64, totalAmount uint64) uint64 {
	switch {
	case now < cliffTime:
		return 0
	case now >= endTime:
		return totalAmount
	}

	elapsed := uint256.NewInt(uint64(now - startTime))
	duration := uint256.NewInt(uint64(endTime - startTime))

	vested := new(uint256.Int).Mul(uint256.NewInt(totalAmount), elapsed)
	vested.Div(vested, duration)
	return vested.Uint64()
}

func scheduleID(seq uint64, caller, beneficiary ids.ShortID, asset ids.ID) ids.ID {
	preimage := make([]byte, 0, 8+2*ids.ShortIDLen+ids.IDLen)
	preimage = binary.BigEndian.AppendUint64(preimage, seq)
	preimage = append(preimage, caller[:]...)
	preimage = append(preimage, beneficiary[:]...)
	preimage = append(preimage, asset[:]...)
	return ids.ID(hashing.ComputeHash256Array(preimage))
}
