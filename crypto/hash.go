// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package crypto implements the fixed-output digests and the Ed25519
// keypairs the block-lattice core is built on. Block hashing and the
// peer handshake intentionally use two different digests so that a
// cookie signature can never be replayed as a block signature or vice
// versa.
package crypto

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the length in bytes of a block hash.
const HashSize = 32

// handshakeDigestKey domain-separates the handshake digest from the
// block-hash digest. Both are blake2b-256; only the key differs.
var handshakeDigestKey = []byte("blocklattice-handshake-v1")

// Hash is a 32-byte digest, used both for block hashes and for the
// block-hash-derived address checksum.
type Hash [HashSize]byte

// String renders the hash as upper-case hex, matching the wire
// convention used throughout the ledger's tooling.
func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// IsZero reports whether h is the all-zero hash, used as the
// FrontierResp stream terminator.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// HashFromHex parses a 64-character hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(b) != HashSize {
		return h, ErrInvalidEncoding
	}
	copy(h[:], b)
	return h, nil
}

// BlockHash hashes the concatenation of the given preimage parts with
// the block-hash digest (blake2b-256, unkeyed). Each block variant's
// canonical preimage is built by the caller and passed here as an
// ordered list of byte slices.
func BlockHash(parts ...[]byte) Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on an oversized key; nil never does.
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HandshakeSum computes the handshake digest over data. The digest of
// a handshake cookie is the message bound into the Ed25519 signature,
// on both the signing and the verification path; the cookie itself is
// random bytes, not a HandshakeSum output.
func HandshakeSum(data []byte) Hash {
	h, err := blake2b.New256(handshakeDigestKey)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
