// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
)

// SeedSize, PublicKeySize and SignatureSize mirror the block-lattice
// wire sizes: a 32-byte seed/public key and a 64-byte signature.
const (
	SeedSize       = 32
	PrivateKeySize = 32
	PublicKeySize  = 32
	SignatureSize  = 64
)

// KeyFromSeed derives the 64-byte Ed25519 private key (which embeds
// the 32-byte public key) deterministically from a 32-byte seed, the
// same construction crypto/ed25519 uses for all of its key material.
func KeyFromSeed(seed [SeedSize]byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seed[:])
}

// RandomSeed returns SeedSize bytes of cryptographically secure
// randomness, the representation used for both private keys and
// handshake cookies.
func RandomSeed() ([SeedSize]byte, error) {
	var out [SeedSize]byte
	_, err := rand.Read(out[:])
	return out, err
}

// Sign signs msg with priv, returning the raw 64-byte signature.
func Sign(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// Verify reports whether sig is a valid signature of msg under pub.
func Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
