// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis

import (
	"testing"

	"github.com/blocklattice/ledgerd/ledger"
	"github.com/stretchr/testify/require"
)

func TestNetworksHaveDistinctGenesisAccounts(t *testing.T) {
	require.NotEqual(t, LiveParams.Open.Account, BetaParams.Open.Account)
	require.NotEqual(t, LiveParams.Open.Account, TestParams.Open.Account)
	require.NotEqual(t, BetaParams.Open.Account, TestParams.Open.Account)
}

func TestSeedIsIdempotentPerNetwork(t *testing.T) {
	l := ledger.NewLedger(ledger.NewMemStore())
	require.NoError(t, Seed(l, TestParams))
	require.NoError(t, Seed(l, TestParams))

	balance, err := l.Store.AccountBalance(TestParams.Open.Account)
	require.NoError(t, err)
	require.Equal(t, ledger.RaiMax, balance)
}

func TestForTagUnknownNetwork(t *testing.T) {
	_, ok := ForTag(0)
	require.False(t, ok)
}
