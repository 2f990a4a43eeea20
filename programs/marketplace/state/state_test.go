// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceSingleton(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())

	_, err := s.GetMarketplace()
	require.ErrorIs(err, database.ErrNotFound)

	marketplace := &Marketplace{
		Authority: ids.GenerateTestShortID(),
		FeeBps:    250,
	}
	require.NoError(s.PutMarketplace(marketplace))

	got, err := s.GetMarketplace()
	require.NoError(err)
	require.Equal(marketplace, got)
}

func TestListingRoundTrip(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	asset := ids.GenerateTestID()

	_, err := s.GetListing(asset)
	require.ErrorIs(err, database.ErrNotFound)

	listing := &Listing{
		Seller:   ids.GenerateTestShortID(),
		Asset:    asset,
		Price:    1_000,
		IsListed: true,
	}
	require.NoError(s.PutListing(asset, listing))

	got, err := s.GetListing(asset)
	require.NoError(err)
	require.Equal(listing, got)

	// Closing the listing persists.
	listing.IsListed = false
	require.NoError(s.PutListing(asset, listing))

	got, err = s.GetListing(asset)
	require.NoError(err)
	require.False(got.IsListed)
}
