// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the marketplace program's records: the singleton
// marketplace parameters and one listing per asset instance.
package state

import (
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
)

var (
	_ State = (*state)(nil)

	ListingPrefix   = []byte("listing")
	SingletonPrefix = []byte("singleton")

	MarketplaceKey = []byte("marketplace")
)

// Marketplace holds the singleton parameters set at initialization.
type Marketplace struct {
	// Authority receives the platform fee on every sale.
	Authority ids.ShortID `serialize:"true" json:"authority"`
	// FeeBps is the platform fee in basis points (10000 = 100%).
	FeeBps uint16 `serialize:"true" json:"feeBps"`
}

// Listing is one listed asset instance. IsListed is true iff exactly one
// unit of the asset sits in the asset's escrow vault.
type Listing struct {
	Seller   ids.ShortID `serialize:"true" json:"seller"`
	Asset    ids.ID      `serialize:"true" json:"asset"`
	Price    uint64      `serialize:"true" json:"price"`
	IsListed bool        `serialize:"true" json:"isListed"`
}

// State collects the persisted records of the marketplace program.
type State interface {
	// GetMarketplace returns database.ErrNotFound before initialization.
	GetMarketplace() (*Marketplace, error)
	PutMarketplace(marketplace *Marketplace) error

	// GetListing returns database.ErrNotFound if [asset] was never listed.
	GetListing(asset ids.ID) (*Listing, error)
	PutListing(asset ids.ID, listing *Listing) error
}

type state struct {
	listingDB   database.Database
	singletonDB database.Database
}

func New(db database.Database) State {
	return &state{
		listingDB:   prefixdb.New(ListingPrefix, db),
		singletonDB: prefixdb.New(SingletonPrefix, db),
	}
}

func (s *state) GetMarketplace() (*Marketplace, error) {
	bytes, err := s.singletonDB.Get(MarketplaceKey)
	if err != nil {
		return nil, err
	}
	marketplace := &Marketplace{}
	if _, err := Codec.Unmarshal(bytes, marketplace); err != nil {
		return nil, err
	}
	return marketplace, nil
}

func (s *state) PutMarketplace(marketplace *Marketplace) error {
	bytes, err := Codec.Marshal(CodecVersion, marketplace)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(MarketplaceKey, bytes)
}

func (s *state) GetListing(asset ids.ID) (*Listing, error) {
	bytes, err := s.listingDB.Get(asset[:])
	if err != nil {
		return nil, err
	}
	listing := &Listing{}
	if _, err := Codec.Unmarshal(bytes, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *state) PutListing(asset ids.ID, listing *Listing) error {
	bytes, err := Codec.Marshal(CodecVersion, listing)
	if err != nil {
		return err
	}
	return s.listingDB.Put(asset[:], bytes)
}
