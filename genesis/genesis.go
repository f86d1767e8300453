// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis defines the hard-coded genesis Open block for each
// network, the fixed point every account chain in that network is
// ultimately funded from. Live, Beta and Test each get their own
// account so that a block built for one network can never be replayed
// against another: its Open's Account, and therefore its hash, differs.
package genesis

import (
	"github.com/blocklattice/ledgerd/addresses"
	"github.com/blocklattice/ledgerd/crypto"
	"github.com/blocklattice/ledgerd/ledger"
	"github.com/blocklattice/ledgerd/wire"
)

// seedFor derives a deterministic genesis seed from a fixed label, one
// per network, so the three networks never share a genesis account by
// construction rather than by convention.
func seedFor(label string) addresses.Seed {
	digest := crypto.BlockHash([]byte("blocklattice-genesis-v1"), []byte(label))
	return addresses.Seed(digest)
}

// Params bundles everything a Controller needs to seed its ledger
// before it can admit any block: the network tag stamped on every
// wire header, and the genesis Open block the chain is rooted at.
type Params struct {
	Tag  wire.NetworkTag
	Open *ledger.OpenBlock
	Hash ledger.Hash
	Seed addresses.Seed
	Name string
}

func buildParams(tag wire.NetworkTag, name, label string) Params {
	seed := seedFor(label)
	account := seed.AccountAt(0)

	open := &ledger.OpenBlock{
		Account:        account,
		Source:         ledger.Hash{},
		Representative: account,
	}

	return Params{
		Tag:  tag,
		Open: open,
		Hash: open.Hash(),
		Seed: seed,
		Name: name,
	}
}

// LiveParams, BetaParams and TestParams are the three networks' fixed
// genesis parameters, computed once at package init from their
// network-specific seed labels rather than transcribed as opaque hex,
// so the genesis account and its hash can never drift out of sync with
// each other.
var (
	LiveParams = buildParams(wire.Live, "live", "live")
	BetaParams = buildParams(wire.Beta, "beta", "beta")
	TestParams = buildParams(wire.Test, "test", "test")
)

// ForTag returns the Params for tag, or ok=false for an unrecognized
// network.
func ForTag(tag wire.NetworkTag) (Params, bool) {
	switch tag {
	case wire.Live:
		return LiveParams, true
	case wire.Beta:
		return BetaParams, true
	case wire.Test:
		return TestParams, true
	default:
		return Params{}, false
	}
}

// Seed admits p's genesis block into store, the first thing a node
// does with a fresh Store before accepting any peer traffic.
func Seed(l *ledger.Ledger, p Params) error {
	return l.SeedGenesis(p.Open, p.Hash)
}
