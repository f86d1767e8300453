// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addresses

import (
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/binary"

	"github.com/blocklattice/ledgerd/crypto"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// Seed is 32 bytes of key material from which an arbitrary number of
// indexed private keys can be derived.
type Seed [crypto.SeedSize]byte

// NewSeed generates a random Seed.
func NewSeed() (Seed, error) {
	b, err := crypto.RandomSeed()
	return Seed(b), err
}

// PrivateKeyAt derives the index-th private key from the seed by
// hashing seed || big-endian(index) with the block-hash digest and
// using the result as an Ed25519 seed.
func (s Seed) PrivateKeyAt(index uint32) ed25519.PrivateKey {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)
	derived := crypto.BlockHash(s[:], idx[:])
	return crypto.KeyFromSeed([crypto.SeedSize]byte(derived))
}

// AccountAt returns the account address for the index-th derived key.
func (s Seed) AccountAt(index uint32) Account {
	priv := s.PrivateKeyAt(index)
	var acct Account
	copy(acct[:], priv.Public().(ed25519.PublicKey))
	return acct
}

// mnemonicWordCountBits enumerates the standard BIP39 word counts: 12,
// 15, 18, 21 and 24 words correspond to 128, 160, 192, 224 and 256
// bits of entropy respectively.
var mnemonicWordCountBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// NewMnemonic generates a fresh BIP39 mnemonic with the given word
// count (one of 12, 15, 18, 21, 24) from the active wordlist.
func NewMnemonic(words int) (string, error) {
	bits, ok := mnemonicWordCountBits[words]
	if !ok {
		return "", ErrInvalidMnemonic
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// SeedFromMnemonic derives a Seed from a BIP39 mnemonic phrase and an
// optional passphrase. It validates the phrase's checksum against the
// active wordlist before deriving, then follows the BIP39 PBKDF2
// construction (HMAC-SHA512, 2048 rounds, salt "mnemonic"+passphrase)
// and takes the first 32 bytes of the resulting 64-byte key as the
// ledger seed.
func SeedFromMnemonic(mnemonic, passphrase string) (Seed, error) {
	var seed Seed
	if !bip39.IsMnemonicValid(mnemonic) {
		return seed, ErrInvalidMnemonic
	}
	salt := "mnemonic" + passphrase
	dk := pbkdf2.Key([]byte(mnemonic), []byte(salt), 2048, 64, sha512.New)
	copy(seed[:], dk[:crypto.SeedSize])
	return seed, nil
}
