// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math/big"
	"testing"

	"github.com/blocklattice/ledgerd/addresses"
	"github.com/stretchr/testify/require"
)

func fixedAccount(b byte) addresses.Account {
	var a addresses.Account
	a[0] = b
	return a
}

// newSeededLedger returns a Ledger whose genesis account already
// holds the maximum representable balance.
func newSeededLedger(t *testing.T) (*Ledger, addresses.Account) {
	t.Helper()
	genesisAccount := fixedAccount(0x01)
	genesis := &OpenBlock{
		Account:        genesisAccount,
		Source:         Hash{},
		Representative: genesisAccount,
	}
	l := NewLedger(NewMemStore())
	require.NoError(t, l.SeedGenesis(genesis, genesis.Hash()))

	balance, err := l.Store.AccountBalance(genesisAccount)
	require.NoError(t, err)
	require.Equal(t, RaiMax, balance)

	return l, genesisAccount
}

func TestSeedGenesis(t *testing.T) {
	newSeededLedger(t)
}

func TestSeedGenesisRejectsWrongExpectedHash(t *testing.T) {
	genesisAccount := fixedAccount(0x01)
	genesis := &OpenBlock{Account: genesisAccount, Representative: genesisAccount}
	l := NewLedger(NewMemStore())
	err := l.SeedGenesis(genesis, Hash{0xff})
	require.ErrorIs(t, err, ErrGenesisHashMismatch)
}

func TestSeedGenesisIsIdempotent(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	genesis := &OpenBlock{Account: genesisAccount, Representative: genesisAccount}
	require.NoError(t, l.SeedGenesis(genesis, genesis.Hash()))
}

// hexRai builds a Rai from a hex string, failing the test on error.
func hexRai(t *testing.T, s string) Rai {
	t.Helper()
	r, err := RaiFromHex(s)
	require.NoError(t, err)
	return r
}

// TestSendThenOpenLandingAccount covers genesis sending a fixed
// amount to a fresh "landing" account, which then opens with that
// amount as its starting balance.
func TestSendThenOpenLandingAccount(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	landing := fixedAccount(0x02)

	sendBalance := hexRai(t, "FD89D89D89D89D89D89D89D89D89D89D"[:32])
	send := &SendBlock{
		Previous:    genesisBlockHash(t, l, genesisAccount),
		Destination: landing,
		Balance:     sendBalance,
	}
	_, err := l.AddElectedBlock(send)
	require.NoError(t, err)

	gotGenesisBalance, err := l.Store.AccountBalance(genesisAccount)
	require.NoError(t, err)
	require.Equal(t, sendBalance, gotGenesisBalance)

	wantDelta := new(big.Int)
	wantDelta.SetString("3271945835778254456378601994536232802", 10)
	gotDelta := new(big.Int).Sub(RaiMax.BigInt(), sendBalance.BigInt())
	require.Equal(t, 0, wantDelta.Cmp(gotDelta))

	_, err = l.Store.AccountBalance(landing)
	require.ErrorIs(t, err, ErrAccountNotFound)

	open := &OpenBlock{
		Account:        landing,
		Source:         send.Hash(),
		Representative: landing,
	}
	_, err = l.AddElectedBlock(open)
	require.NoError(t, err)

	gotLandingBalance, err := l.Store.AccountBalance(landing)
	require.NoError(t, err)
	require.Equal(t, 0, gotDelta.Cmp(gotLandingBalance.BigInt()))
}

func genesisBlockHash(t *testing.T, l *Ledger, genesisAccount addresses.Account) Hash {
	t.Helper()
	h, err := l.Store.LatestBlock(genesisAccount)
	require.NoError(t, err)
	return h
}

// TestSendFromLandingAccount covers a landing account, already
// funded by an earlier send, itself sending a portion onward.
func TestSendFromLandingAccount(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	landing := fixedAccount(0x02)

	firstSend := &SendBlock{
		Previous:    genesisBlockHash(t, l, genesisAccount),
		Destination: landing,
		Balance:     hexRai(t, "FD89D89D89D89D89D89D89D89D89D89D"),
	}
	_, err := l.AddElectedBlock(firstSend)
	require.NoError(t, err)

	open := &OpenBlock{Account: landing, Source: firstSend.Hash(), Representative: landing}
	_, err = l.AddElectedBlock(open)
	require.NoError(t, err)

	landingBalanceBefore, err := l.Store.AccountBalance(landing)
	require.NoError(t, err)

	secondSend := &SendBlock{
		Previous:    open.Hash(),
		Destination: genesisAccount,
		Balance:     hexRai(t, "02761762762762762762762762762762"),
	}
	_, err = l.AddElectedBlock(secondSend)
	require.NoError(t, err)

	landingBalanceAfter, err := l.Store.AccountBalance(landing)
	require.NoError(t, err)

	wantDecrease := new(big.Int)
	wantDecrease.SetString("324518553658426726783156020576256", 10)
	gotDecrease := new(big.Int).Sub(landingBalanceBefore.BigInt(), landingBalanceAfter.BigInt())
	require.Equal(t, 0, wantDecrease.Cmp(gotDecrease))
}

// TestChainInvariant checks that successive admissions advance an
// account's frontier one block at a time across a sequence of Change
// blocks.
func TestChainInvariant(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)

	head, err := l.Store.LatestBlock(genesisAccount)
	require.NoError(t, err)

	repA := fixedAccount(0x10)
	change1 := &ChangeBlock{Previous: head, Representative: repA}
	fb1, err := l.AddElectedBlock(change1)
	require.NoError(t, err)

	newHead, err := l.Store.LatestBlock(genesisAccount)
	require.NoError(t, err)
	require.Equal(t, fb1.Hash, newHead)
	require.Equal(t, head, change1.Previous)

	repB := fixedAccount(0x11)
	change2 := &ChangeBlock{Previous: fb1.Hash, Representative: repB}
	fb2, err := l.AddElectedBlock(change2)
	require.NoError(t, err)

	finalHead, err := l.Store.LatestBlock(genesisAccount)
	require.NoError(t, err)
	require.Equal(t, fb2.Hash, finalHead)
	require.Equal(t, fb1.Hash, change2.Previous)
}

// TestSendReceiveConservation checks that admitting a Send and the
// Open that claims it moves the amount between accounts with no fees
// and no drift.
func TestSendReceiveConservation(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	receiver := fixedAccount(0x03)

	genesisBefore, err := l.Store.AccountBalance(genesisAccount)
	require.NoError(t, err)

	send := &SendBlock{
		Previous:    genesisBlockHash(t, l, genesisAccount),
		Destination: receiver,
		Balance:     hexRai(t, "0000000000000000000000000000000f"),
	}
	_, err = l.AddElectedBlock(send)
	require.NoError(t, err)

	open := &OpenBlock{Account: receiver, Source: send.Hash(), Representative: receiver}
	_, err = l.AddElectedBlock(open)
	require.NoError(t, err)

	genesisAfter, err := l.Store.AccountBalance(genesisAccount)
	require.NoError(t, err)
	receiverAfter, err := l.Store.AccountBalance(receiver)
	require.NoError(t, err)

	total := new(big.Int).Add(genesisAfter.BigInt(), receiverAfter.BigInt())
	wantTotal := genesisBefore.BigInt()
	require.Equal(t, 0, wantTotal.Cmp(total))
}

func TestAddElectedBlockRejectsWrongPrevious(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	_ = genesisAccount

	send := &SendBlock{Previous: Hash{0x99}, Destination: fixedAccount(0x02), Balance: RaiMax}
	_, err := l.AddElectedBlock(send)
	require.ErrorIs(t, err, ErrInvalidSuccession)
}

func TestAddElectedBlockRejectsDuplicateOpen(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	dup := &OpenBlock{Account: genesisAccount, Representative: genesisAccount}
	_, err := l.AddElectedBlock(dup)
	require.ErrorIs(t, err, ErrDuplicateOpen)
}

func TestAddElectedBlockRejectsSendUnderflow(t *testing.T) {
	l, genesisAccount := newSeededLedger(t)
	head, err := l.Store.LatestBlock(genesisAccount)
	require.NoError(t, err)

	// RaiMax + 1 cannot be represented, so build a send whose balance
	// exceeds the previous block's balance by constructing a second
	// send atop one with a smaller balance.
	first := &SendBlock{Previous: head, Destination: fixedAccount(0x02), Balance: hexRai(t, "10")}
	_, err = l.AddElectedBlock(first)
	require.NoError(t, err)

	tooLarge := &SendBlock{Previous: first.Hash(), Destination: fixedAccount(0x02), Balance: hexRai(t, "11")}
	_, err = l.AddElectedBlock(tooLarge)
	require.ErrorIs(t, err, ErrUnderflowOnSend)
}
