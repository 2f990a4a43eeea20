// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package speedsters wires the custody programs, the vesting/staking
// economy and the marketplace escrow, over one shared token ledger and one
// shared versioned database, and serializes their operations the way the
// hosting ledger's scheduler would.
package speedsters

import (
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/soldas11/solana-speedsters/components/ledger"
	"github.com/soldas11/solana-speedsters/programs/economy"
	economyconfig "github.com/soldas11/solana-speedsters/programs/economy/config"
	"github.com/soldas11/solana-speedsters/programs/marketplace"
	marketplaceconfig "github.com/soldas11/solana-speedsters/programs/marketplace/config"
	"github.com/soldas11/solana-speedsters/utils/timer/mockable"
)

var ledgerPrefix = []byte("tokenLedger")

// Config identifies the two programs and carries their execution
// parameters.
type Config struct {
	EconomyProgramID     ids.ID
	MarketplaceProgramID ids.ID

	Economy     *economyconfig.Config
	Marketplace *marketplaceconfig.Config
}

// Suite hosts both custody programs. All public operations are serialized:
// two calls touching the same account never interleave, and the loser of a
// race re-validates its preconditions against committed state.
type Suite struct {
	mu sync.Mutex

	baseDB *versiondb.Database
	tokens ledger.Ledger

	economy     *economy.Economy
	marketplace *marketplace.Marketplace
}

// New builds a Suite over [db]. Both programs and the token ledger share
// one versioned database, so each operation's record updates and balance
// movements commit or abort as a unit.
func New(
	cfg Config,
	db database.Database,
	clock *mockable.Clock,
	lg log.Logger,
	registerer metric.Registerer,
) (*Suite, error) {
	baseDB := versiondb.New(db)
	tokens := ledger.New(prefixdb.New(ledgerPrefix, baseDB))

	econ, err := economy.New(cfg.Economy, cfg.EconomyProgramID, baseDB, tokens, clock, lg, registerer)
	if err != nil {
		return nil, err
	}
	market, err := marketplace.New(cfg.Marketplace, cfg.MarketplaceProgramID, baseDB, tokens, lg, registerer)
	if err != nil {
		return nil, err
	}

	return &Suite{
		baseDB:      baseDB,
		tokens:      tokens,
		economy:     econ,
		marketplace: market,
	}, nil
}

func (s *Suite) CreateVestingSchedule(
	caller ids.ShortID,
	beneficiary ids.ShortID,
	asset ids.ID,
	totalAmount uint64,
	startTime int64,
	cliffTime int64,
	endTime int64,
) (ids.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy.CreateVestingSchedule(caller, beneficiary, asset, totalAmount, startTime, cliffTime, endTime)
}

func (s *Suite) ReleaseVestedTokens(scheduleID ids.ID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy.ReleaseVestedTokens(scheduleID)
}

func (s *Suite) Stake(caller ids.ShortID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy.Stake(caller, amount)
}

func (s *Suite) Unstake(caller ids.ShortID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.economy.Unstake(caller, amount)
}

func (s *Suite) InitializeMarketplace(caller ids.ShortID, feeBps uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marketplace.Initialize(caller, feeBps)
}

func (s *Suite) List(caller ids.ShortID, asset ids.ID, price uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marketplace.List(caller, asset, price)
}

func (s *Suite) Delist(caller ids.ShortID, asset ids.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marketplace.Delist(caller, asset)
}

func (s *Suite) Buy(caller ids.ShortID, asset ids.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marketplace.Buy(caller, asset)
}

// Mint issues fresh units directly on the shared ledger. It is intended for
// genesis funding and tests.
func (s *Suite) Mint(asset ids.ID, to ids.ShortID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Mint(asset, to, amount); err != nil {
		s.baseDB.Abort()
		return err
	}
	return s.baseDB.Commit()
}

// Balance reads a committed balance on the shared ledger.
func (s *Suite) Balance(asset ids.ID, addr ids.ShortID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.Balance(asset, addr)
}
