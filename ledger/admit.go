// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math/big"

	"github.com/blocklattice/ledgerd/addresses"
)

// Ledger resolves the account/representative/balance inheritance a
// bare block variant doesn't carry on the wire, and enforces the
// chain-linearity, open-uniqueness and balance-monotonicity
// invariants, admitting the result into a Store.
//
// Full ledger validation (signatures, proof-of-work, quorum tallying,
// fork resolution) is out of scope; Ledger admits blocks assumed to
// already be elected by the network.
type Ledger struct {
	Store Store
}

// NewLedger wraps store in a Ledger.
func NewLedger(store Store) *Ledger {
	return &Ledger{Store: store}
}

// AddElectedBlock admits block under the account it resolves to,
// returning the FullBlock recorded in the store.
func (l *Ledger) AddElectedBlock(block Block) (*FullBlock, error) {
	switch b := block.(type) {
	case *OpenBlock:
		return l.admitOpen(b)
	case *SendBlock:
		return l.admitNonOpen(block, b.Previous, func(prevFB *FullBlock) (Rai, addresses.Account, error) {
			if b.Balance.Cmp(prevFB.Balance) > 0 {
				return Rai{}, addresses.Account{}, ErrUnderflowOnSend
			}
			return b.Balance, prevFB.Representative, nil
		})
	case *ReceiveBlock:
		return l.admitNonOpen(block, b.Previous, func(prevFB *FullBlock) (Rai, addresses.Account, error) {
			amount, err := l.amountOf(b.Source)
			if err != nil {
				return Rai{}, addresses.Account{}, err
			}
			newBalance, err := addRai(prevFB.Balance, amount)
			if err != nil {
				return Rai{}, addresses.Account{}, err
			}
			return newBalance, prevFB.Representative, nil
		})
	case *ChangeBlock:
		return l.admitNonOpen(block, b.Previous, func(prevFB *FullBlock) (Rai, addresses.Account, error) {
			return prevFB.Balance, b.Representative, nil
		})
	case *StateBlock:
		return l.admitNonOpen(block, b.Previous, func(prevFB *FullBlock) (Rai, addresses.Account, error) {
			return b.Balance, b.Representative, nil
		})
	default:
		return nil, ErrInvalidPayload
	}
}

func (l *Ledger) admitOpen(b *OpenBlock) (*FullBlock, error) {
	if _, err := l.Store.LatestBlock(b.Account); err == nil {
		return nil, ErrDuplicateOpen
	}

	amount, err := l.amountOf(b.Source)
	if err != nil {
		return nil, err
	}

	fb := &FullBlock{
		Block:          b,
		Hash:           b.Hash(),
		Account:        b.Account,
		Representative: b.Representative,
		Balance:        amount,
	}
	return fb, l.commit(fb)
}

// resolveFn computes the new balance and representative for a
// non-Open block given the FullBlock currently at the account's
// frontier.
type resolveFn func(prevFB *FullBlock) (balance Rai, rep addresses.Account, err error)

func (l *Ledger) admitNonOpen(block Block, previous Hash, resolve resolveFn) (*FullBlock, error) {
	prevFB, err := l.Store.GetBlock(previous)
	if err != nil {
		return nil, ErrInvalidSuccession
	}

	head, err := l.Store.LatestBlock(prevFB.Account)
	if err != nil || head != previous {
		return nil, ErrInvalidSuccession
	}

	balance, rep, err := resolve(prevFB)
	if err != nil {
		return nil, err
	}

	fb := &FullBlock{
		Block:          block,
		Hash:           block.Hash(),
		Account:        prevFB.Account,
		Representative: rep,
		Balance:        balance,
	}
	return fb, l.commit(fb)
}

func (l *Ledger) commit(fb *FullBlock) error {
	if err := l.Store.PutBlock(fb); err != nil {
		return err
	}
	if err := l.Store.SetLatest(fb.Account, fb.Hash); err != nil {
		return err
	}
	return l.Store.SetRepresentative(fb.Account, fb.Representative)
}

// amountOf returns the amount a Send block identified by sourceHash
// debited from its account: the difference between the balance of the
// block it extended and its own balance. There is no standing pending
// table; the amount is recomputed from a send that has already been
// admitted.
func (l *Ledger) amountOf(sourceHash Hash) (Rai, error) {
	sendFB, err := l.Store.GetBlock(sourceHash)
	if err != nil {
		return Rai{}, ErrBlockNotFound
	}
	send, ok := sendFB.Block.(*SendBlock)
	if !ok {
		return Rai{}, ErrInvalidPayload
	}

	prevOfSend, err := l.Store.GetBlock(send.Previous)
	if err != nil {
		return Rai{}, ErrBlockNotFound
	}
	return prevOfSend.Balance.Sub(send.Balance)
}

func addRai(a, b Rai) (Rai, error) {
	sum := new(big.Int).Add(a.BigInt(), b.BigInt())
	return NewRaiFromBigInt(sum)
}
