// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import "errors"

// ErrGenesisHashMismatch is returned by SeedGenesis when a network's
// hard-coded genesis block does not hash to its expected, equally
// hard-coded constant: a build-time programming error, never a
// runtime condition.
var ErrGenesisHashMismatch = errors.New("ledger: genesis block hash does not match network constant")

// SeedGenesis admits a network's genesis Open block if the store does
// not already have a frontier for its account. Unlike an ordinary
// Open, genesis is not funded by a Send already in the store; its
// balance is the maximum representable Rai by construction.
//
// Call this once per Store at controller initialization.
func (l *Ledger) SeedGenesis(genesis *OpenBlock, expectedHash Hash) error {
	if _, err := l.Store.LatestBlock(genesis.Account); err == nil {
		return nil
	}

	hash := genesis.Hash()
	if hash != expectedHash {
		return ErrGenesisHashMismatch
	}

	fb := &FullBlock{
		Block:          genesis,
		Hash:           hash,
		Account:        genesis.Account,
		Representative: genesis.Representative,
		Balance:        RaiMax,
	}
	return l.commit(fb)
}
