// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package marketplace implements the escrow life-cycle for unique assets:
// a listed asset sits in a derived-authority escrow vault until it is
// either delisted back to the seller or sold to a buyer in one atomic swap.
package marketplace

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/soldas11/solana-speedsters/components/authority"
	"github.com/soldas11/solana-speedsters/components/ledger"
	"github.com/soldas11/solana-speedsters/programs/marketplace/config"
	"github.com/soldas11/solana-speedsters/programs/marketplace/state"
)

// MaxFeeBps is the largest representable platform fee: 10000 basis points,
// i.e. 100% of the sale price.
const MaxFeeBps = 10_000

var (
	// ErrUnauthorized is returned when a caller other than the seller tries
	// to delist.
	ErrUnauthorized = errors.New("caller is not the seller")

	// ErrNotListed is returned when the listing is not live. The loser of a
	// purchase race observes this rather than double-spending the escrow.
	ErrNotListed = errors.New("asset is not listed")

	// ErrAlreadyListed is returned when listing an asset whose listing is
	// still live.
	ErrAlreadyListed = errors.New("asset is already listed")

	// ErrInvalidPrice is returned when buying a listing with a zero price.
	ErrInvalidPrice = errors.New("invalid listing price")

	// ErrInvalidFee is returned when initializing with a fee above 100%.
	ErrInvalidFee = errors.New("fee exceeds 10000 basis points")

	// ErrNotInitialized is returned when buying before the marketplace
	// parameters were set.
	ErrNotInitialized = errors.New("marketplace not initialized")

	// ErrAlreadyInitialized is returned on a second initialization.
	ErrAlreadyInitialized = errors.New("marketplace already initialized")

	// ErrUnitNotHeld is returned when the lister does not hold exactly one
	// unit of the asset.
	ErrUnitNotHeld = errors.New("seller must hold exactly one unit of the asset")

	statePrefix = []byte("marketplaceState")
)

// Marketplace executes the escrow operations. Each public operation is one
// atomic unit: on any failure every staged mutation is abandoned, so a
// partial charge with no asset delivered is impossible.
//
// Marketplace is not safe for concurrent use; the hosting environment
// orders operations (see speedsters.Suite).
type Marketplace struct {
	cfg       *config.Config
	programID ids.ID

	log     log.Logger
	metrics *marketplaceMetrics

	baseDB *versiondb.Database
	state  state.State
	tokens ledger.Ledger
}

// New returns a marketplace program persisting its records under [baseDB].
// [tokens] must be layered over the same versioned database so that the
// payment, fee, and escrow transfers commit together.
func New(
	cfg *config.Config,
	programID ids.ID,
	baseDB *versiondb.Database,
	tokens ledger.Ledger,
	lg log.Logger,
	registerer metric.Registerer,
) (*Marketplace, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Marketplace{
		cfg:       cfg,
		programID: programID,
		log:       lg,
		metrics:   metrics,
		baseDB:    baseDB,
		state:     state.New(prefixdb.New(statePrefix, baseDB)),
		tokens:    tokens,
	}, nil
}

func (m *Marketplace) commit(err error) error {
	if err != nil {
		m.baseDB.Abort()
		return err
	}
	return m.baseDB.Commit()
}

// Initialize sets the marketplace parameters once: [caller] becomes the fee
// recipient and [feeBps] the platform fee in basis points.
func (m *Marketplace) Initialize(caller ids.ShortID, feeBps uint16) error {
	if err := m.commit(m.initialize(caller, feeBps)); err != nil {
		return err
	}

	m.metrics.markOperation("initialize")
	m.log.Info("initialized marketplace",
		"authority", caller,
		"feeBps", feeBps,
	)
	return nil
}

func (m *Marketplace) initialize(caller ids.ShortID, feeBps uint16) error {
	if feeBps > MaxFeeBps {
		return ErrInvalidFee
	}

	_, err := m.state.GetMarketplace()
	switch {
	case err == nil:
		return ErrAlreadyInitialized
	case err != database.ErrNotFound:
		return err
	}

	return m.state.PutMarketplace(&state.Marketplace{
		Authority: caller,
		FeeBps:    feeBps,
	})
}

// List escrows the single unit of [asset] held by [caller] and records a
// live listing at [price].
func (m *Marketplace) List(caller ids.ShortID, asset ids.ID, price uint64) error {
	if err := m.commit(m.list(caller, asset, price)); err != nil {
		return err
	}

	m.metrics.markOperation("list")
	m.log.Info("listed asset",
		"asset", asset,
		"seller", caller,
		"price", price,
	)
	return nil
}

func (m *Marketplace) list(caller ids.ShortID, asset ids.ID, price uint64) error {
	listing, err := m.state.GetListing(asset)
	switch {
	case err == nil && listing.IsListed:
		return ErrAlreadyListed
	case err != nil && err != database.ErrNotFound:
		return err
	}

	held, err := m.tokens.Balance(asset, caller)
	if err != nil {
		return err
	}
	if held != 1 {
		return ErrUnitNotHeld
	}

	escrow, _ := authority.Derive(authority.EscrowTag, asset, m.programID)
	if err := m.tokens.Transfer(asset, caller, escrow, ledger.Signer{Addr: caller}, 1); err != nil {
		return err
	}

	return m.state.PutListing(asset, &state.Listing{
		Seller:   caller,
		Asset:    asset,
		Price:    price,
		IsListed: true,
	})
}

// Delist returns the escrowed unit of [asset] to its seller and closes the
// listing. Only the seller may delist.
func (m *Marketplace) Delist(caller ids.ShortID, asset ids.ID) error {
	if err := m.commit(m.delist(caller, asset)); err != nil {
		return err
	}

	m.metrics.markOperation("delist")
	m.log.Info("delisted asset",
		"asset", asset,
		"seller", caller,
	)
	return nil
}

func (m *Marketplace) delist(caller ids.ShortID, asset ids.ID) error {
	listing, err := m.state.GetListing(asset)
	switch {
	case err == database.ErrNotFound:
		return ErrNotListed
	case err != nil:
		return err
	case !listing.IsListed:
		return ErrNotListed
	case listing.Seller != caller:
		return ErrUnauthorized
	}

	escrow, proof := authority.Derive(authority.EscrowTag, asset, m.programID)
	if err := m.tokens.Transfer(asset, escrow, caller, ledger.Derived{Proof: proof}, 1); err != nil {
		return err
	}

	listing.IsListed = false
	return m.state.PutListing(asset, listing)
}

// Buy pays the seller the listed price, pays the platform fee on top of it,
// and delivers the escrowed unit of [asset] to [caller] in one atomic unit.
// The buyer's total outlay is price + fee.
func (m *Marketplace) Buy(caller ids.ShortID, asset ids.ID) error {
	price, fee, err := m.buy(caller, asset)
	if err := m.commit(err); err != nil {
		return err
	}

	m.metrics.markOperation("buy")
	m.metrics.volumeTraded.Add(float64(price))
	m.metrics.feesCollected.Add(float64(fee))
	m.log.Info("sold asset",
		"asset", asset,
		"buyer", caller,
		"price", price,
		"fee", fee,
	)
	return nil
}

func (m *Marketplace) buy(caller ids.ShortID, asset ids.ID) (uint64, uint64, error) {
	marketplace, err := m.state.GetMarketplace()
	switch {
	case err == database.ErrNotFound:
		return 0, 0, ErrNotInitialized
	case err != nil:
		return 0, 0, err
	}

	listing, err := m.state.GetListing(asset)
	switch {
	case err == database.ErrNotFound:
		return 0, 0, ErrNotListed
	case err != nil:
		return 0, 0, err
	case !listing.IsListed:
		return 0, 0, ErrNotListed
	case listing.Price == 0:
		return 0, 0, ErrInvalidPrice
	}

	price := listing.Price
	fee := feeAmount(price, marketplace.FeeBps)

	if err := m.tokens.Transfer(m.cfg.PaymentAssetID, caller, listing.Seller, ledger.Signer{Addr: caller}, price); err != nil {
		return 0, 0, err
	}
	if fee > 0 {
		if err := m.tokens.Transfer(m.cfg.PaymentAssetID, caller, marketplace.Authority, ledger.Signer{Addr: caller}, fee); err != nil {
			return 0, 0, err
		}
	}

	escrow, proof := authority.Derive(authority.EscrowTag, asset, m.programID)
	if err := m.tokens.Transfer(asset, escrow, caller, ledger.Derived{Proof: proof}, 1); err != nil {
		return 0, 0, err
	}

	listing.IsListed = false
	return price, fee, m.state.PutListing(asset, listing)
}

// feeAmount computes floor(price * feeBps / 10000) at 256-bit width so the
// multiply cannot overflow.
func feeAmount(price uint64, feeBps uint16) uint64 {
	fee := new(uint256.Int).Mul(uint256.NewInt(price), uint256.NewInt(uint64(feeBps)))
	fee.Div(fee, uint256.NewInt(MaxFeeBps))
	return fee.Uint64()
}
