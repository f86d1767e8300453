// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addresses implements block-lattice account addresses: the
// textual encoding of a 32-byte Ed25519 public key, plus the seed and
// mnemonic-phrase derivation paths that produce private keys.
package addresses

import (
	"math/big"
	"strings"

	"github.com/blocklattice/ledgerd/crypto"
)

// Prefix is the human-readable network prefix every account address
// carries, e.g. "lat_1stakebank...".
const Prefix = "lat"

// alphabet is the 32-character encoding alphabet, omitting 0, 2, l and
// v to avoid visual ambiguity with 1, O/o, 1/I and u (the four
// characters that whittle the 36-character alphanumeric set down to
// 32 symbols), matching the reference ledger's address format.
const alphabet = "13456789abcdefghijkmnopqrstuwxyz"

// Account is a 32-byte Ed25519 public key identifying a ledger
// participant.
type Account [crypto.PublicKeySize]byte

// checksumSize is the number of trailing checksum bytes encoded into
// an address, taken from the low 5 bytes of the block-hash digest of
// the public key, byte-reversed.
const checksumSize = 5

const (
	pubkeyEncodedWidth   = 52 // ceil((4 zero-pad bits + 256 key bits) / 5)
	checksumEncodedWidth = 8  // ceil(40 checksum bits / 5)
)

// String renders a as its "<prefix>_<encoded>" textual form.
func (a Account) String() string {
	return Prefix + "_" + encode5(a[:], pubkeyEncodedWidth) + encode5(a.checksum(), checksumEncodedWidth)
}

// checksum returns the byte-reversed low 5 bytes of the block-hash
// digest of the account's public key.
func (a Account) checksum() []byte {
	sum := crypto.BlockHash(a[:])
	cs := make([]byte, checksumSize)
	copy(cs, sum[:checksumSize])
	reverseBytes(cs)
	return cs
}

// ParseAccount parses the textual form of an account address,
// rejecting malformed prefixes, invalid alphabet characters, wrong
// lengths, and checksum mismatches.
func ParseAccount(s string) (Account, error) {
	var acct Account

	rest, ok := strings.CutPrefix(s, Prefix+"_")
	if !ok {
		return acct, ErrInvalidAddress
	}
	if len(rest) != pubkeyEncodedWidth+checksumEncodedWidth {
		return acct, ErrInvalidAddress
	}

	pubPart := rest[:pubkeyEncodedWidth]
	checkPart := rest[pubkeyEncodedWidth:]

	pubBytes, err := decode5(pubPart, crypto.PublicKeySize)
	if err != nil {
		return acct, err
	}
	checkBytes, err := decode5(checkPart, checksumSize)
	if err != nil {
		return acct, err
	}

	copy(acct[:], pubBytes)
	want := acct.checksum()
	if !equalBytes(want, checkBytes) {
		return Account{}, ErrChecksumMismatch
	}
	return acct, nil
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// encode5 renders data as a fixed-width string of 5-bit groups, most
// significant group first, using the custom alphabet. A big.Int with
// a small magnitude naturally zero-pads on the left when rendered to
// a fixed number of base-32 digits, which is where an address's
// leading zero-pad bits come from.
func encode5(data []byte, width int) string {
	v := new(big.Int).SetBytes(data)
	base := big.NewInt(int64(len(alphabet)))
	mod := new(big.Int)
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		v.DivMod(v, base, mod)
		out[i] = alphabet[mod.Int64()]
	}
	return string(out)
}

// decode5 is the inverse of encode5, producing exactly byteLen bytes
// or failing if s contains characters outside the alphabet or encodes
// a value too large to fit in byteLen bytes.
func decode5(s string, byteLen int) ([]byte, error) {
	v := new(big.Int)
	base := big.NewInt(int64(len(alphabet)))
	for _, c := range s {
		idx := strings.IndexRune(alphabet, c)
		if idx < 0 {
			return nil, ErrInvalidCharacter
		}
		v.Mul(v, base)
		v.Add(v, big.NewInt(int64(idx)))
	}
	if v.BitLen() > byteLen*8 {
		return nil, ErrInvalidEncoding
	}
	out := make([]byte, byteLen)
	v.FillBytes(out)
	return out, nil
}
