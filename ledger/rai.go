// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger implements the block-lattice data model: the five
// block variants, their canonical hashing, the account state store,
// and the balance-preservation invariants enforced at admission time.
package ledger

import (
	"encoding/hex"
	"errors"
	"math/big"
)

// RaiSize is the wire width, in bytes, of a Rai balance.
const RaiSize = 16

// ErrUnderflow is returned by Rai.Sub when the subtrahend exceeds the
// minuend.
var ErrUnderflow = errors.New("ledger: balance underflow")

// Rai is a 128-bit unsigned balance in the ledger's base unit, stored
// big-endian to match its wire encoding.
type Rai [RaiSize]byte

// RaiMax is the maximum representable balance, assigned in full to
// the genesis account.
var RaiMax = func() Rai {
	var r Rai
	for i := range r {
		r[i] = 0xff
	}
	return r
}()

// NewRaiFromBigInt converts a non-negative big.Int into a Rai,
// returning ErrUnderflow if it does not fit in 128 bits.
func NewRaiFromBigInt(v *big.Int) (Rai, error) {
	var r Rai
	if v.Sign() < 0 || v.BitLen() > RaiSize*8 {
		return r, ErrUnderflow
	}
	v.FillBytes(r[:])
	return r, nil
}

// BigInt returns r as a big.Int.
func (r Rai) BigInt() *big.Int {
	return new(big.Int).SetBytes(r[:])
}

// Cmp compares r and o the way big.Int.Cmp does.
func (r Rai) Cmp(o Rai) int {
	return r.BigInt().Cmp(o.BigInt())
}

// Sub computes r - o, returning ErrUnderflow if o > r.
func (r Rai) Sub(o Rai) (Rai, error) {
	if r.Cmp(o) < 0 {
		return Rai{}, ErrUnderflow
	}
	diff := new(big.Int).Sub(r.BigInt(), o.BigInt())
	return NewRaiFromBigInt(diff)
}

// String renders r as a hex-encoded 128-bit big-endian integer.
func (r Rai) String() string {
	return hex.EncodeToString(r[:])
}

// RaiFromHex parses a hex string (up to 32 characters) into a Rai.
func RaiFromHex(s string) (Rai, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Rai{}, err
	}
	v := new(big.Int).SetBytes(b)
	return NewRaiFromBigInt(v)
}
