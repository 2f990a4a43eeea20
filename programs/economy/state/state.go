// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the economy program's records: vesting schedules,
// stake accounts, and the schedule sequence number.
package state

import (
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
)

var (
	_ State = (*state)(nil)

	SchedulePrefix  = []byte("vestingSchedule")
	StakePrefix     = []byte("stakeAccount")
	SingletonPrefix = []byte("singleton")

	ScheduleSequenceKey = []byte("schedule sequence")
)

// VestingSchedule is one vesting grant. TotalAmount and the window are
// immutable after creation; ReleasedAmount only ever grows and never
// exceeds TotalAmount.
type VestingSchedule struct {
	Authority      ids.ShortID `serialize:"true" json:"authority"`
	Beneficiary    ids.ShortID `serialize:"true" json:"beneficiary"`
	Asset          ids.ID      `serialize:"true" json:"asset"`
	TotalAmount    uint64      `serialize:"true" json:"totalAmount"`
	StartTime      int64       `serialize:"true" json:"startTime"`
	CliffTime      int64       `serialize:"true" json:"cliffTime"`
	EndTime        int64       `serialize:"true" json:"endTime"`
	ReleasedAmount uint64      `serialize:"true" json:"releasedAmount"`
}

// StakeAccount tracks one depositor's outstanding stake in the pooled vault.
type StakeAccount struct {
	Owner        ids.ShortID `serialize:"true" json:"owner"`
	Balance      uint64      `serialize:"true" json:"balance"`
	LastStakedAt int64       `serialize:"true" json:"lastStakedAt"`
}

// State collects the persisted records of the economy program.
type State interface {
	// GetVestingSchedule returns database.ErrNotFound if no schedule has
	// [scheduleID].
	GetVestingSchedule(scheduleID ids.ID) (*VestingSchedule, error)
	PutVestingSchedule(scheduleID ids.ID, schedule *VestingSchedule) error

	// GetStakeAccount returns database.ErrNotFound if [owner] never staked.
	GetStakeAccount(owner ids.ShortID) (*StakeAccount, error)
	PutStakeAccount(account *StakeAccount) error

	// NextScheduleSequence returns the next schedule sequence number and
	// advances it.
	NextScheduleSequence() (uint64, error)
}

type state struct {
	scheduleDB  database.Database
	stakeDB     database.Database
	singletonDB database.Database
}

func New(db database.Database) State {
	return &state{
		scheduleDB:  prefixdb.New(SchedulePrefix, db),
		stakeDB:     prefixdb.New(StakePrefix, db),
		singletonDB: prefixdb.New(SingletonPrefix, db),
	}
}

func (s *state) GetVestingSchedule(scheduleID ids.ID) (*VestingSchedule, error) {
	bytes, err := s.scheduleDB.Get(scheduleID[:])
	if err != nil {
		return nil, err
	}
	schedule := &VestingSchedule{}
	if _, err := Codec.Unmarshal(bytes, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *state) PutVestingSchedule(scheduleID ids.ID, schedule *VestingSchedule) error {
	bytes, err := Codec.Marshal(CodecVersion, schedule)
	if err != nil {
		return err
	}
	return s.scheduleDB.Put(scheduleID[:], bytes)
}

func (s *state) GetStakeAccount(owner ids.ShortID) (*StakeAccount, error) {
	bytes, err := s.stakeDB.Get(owner[:])
	if err != nil {
		return nil, err
	}
	account := &StakeAccount{}
	if _, err := Codec.Unmarshal(bytes, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *state) PutStakeAccount(account *StakeAccount) error {
	bytes, err := Codec.Marshal(CodecVersion, account)
	if err != nil {
		return err
	}
	return s.stakeDB.Put(account.Owner[:], bytes)
}

func (s *state) NextScheduleSequence() (uint64, error) {
	seq, err := database.GetUInt64(s.singletonDB, ScheduleSequenceKey)
	if err == database.ErrNotFound {
		seq = 0
	} else if err != nil {
		return 0, err
	}
	return seq, database.PutUInt64(s.singletonDB, ScheduleSequenceKey, seq+1)
}
