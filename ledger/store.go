// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import "github.com/blocklattice/ledgerd/addresses"

// Store is the abstract capability set the controller admits blocks
// through. Implementations choose their own concurrency strategy; the
// in-memory implementation in this package uses a single mutex, the
// leveldb-backed one relies on leveldb's own internal locking.
//
// Store exposes read and append operations only. There is no delete
// beyond what an implementation's test-only teardown helper provides.
type Store interface {
	// LatestBlock returns the hash of account's most recent admitted
	// block (its frontier), or ErrAccountNotFound if it has none.
	LatestBlock(account addresses.Account) (Hash, error)

	// SetLatest records hash as account's new frontier.
	SetLatest(account addresses.Account, hash Hash) error

	// GetBlock returns the full block stored under hash, or
	// ErrBlockNotFound.
	GetBlock(hash Hash) (*FullBlock, error)

	// PutBlock stores fb, indexed by its hash.
	PutBlock(fb *FullBlock) error

	// RepresentativeOf returns the representative currently in effect
	// for account, cached from its most recent Open, Change, or State
	// block.
	RepresentativeOf(account addresses.Account) (addresses.Account, error)

	// SetRepresentative updates the cached representative for account.
	SetRepresentative(account addresses.Account, rep addresses.Account) error

	// AccountBalance returns the balance carried by account's
	// frontier block, or ErrAccountNotFound if it has none.
	AccountBalance(account addresses.Account) (Rai, error)
}
