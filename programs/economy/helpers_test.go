// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package economy

import (
	"testing"
	"time"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/soldas11/solana-speedsters/components/ledger"
	"github.com/soldas11/solana-speedsters/programs/economy/config"
	"github.com/soldas11/solana-speedsters/utils/timer/mockable"
)

type testEnv struct {
	economy *Economy
	tokens  ledger.Ledger
	clock   *mockable.Clock
	asset   ids.ID
	caller  ids.ShortID
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)

	baseDB := versiondb.New(memdb.New())
	tokens := ledger.New(prefixdb.New([]byte("ledger"), baseDB))

	asset := ids.GenerateTestID()
	caller := ids.GenerateTestShortID()

	clock := &mockable.Clock{}
	clock.Set(time.Unix(0, 0))

	econ, err := New(
		&config.Config{StakeAssetID: asset},
		ids.GenerateTestID(),
		baseDB,
		tokens,
		clock,
		log.NoLog{},
		metric.NewRegistry(),
	)
	require.NoError(err)

	// Fund the caller and commit the genesis balance.
	require.NoError(tokens.Mint(asset, caller, 10_000_000))
	require.NoError(baseDB.Commit())

	return &testEnv{
		economy: econ,
		tokens:  tokens,
		clock:   clock,
		asset:   asset,
		caller:  caller,
	}
}
