// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addresses

import "errors"

var (
	// ErrInvalidAddress is returned when an address is missing the
	// network prefix or has the wrong encoded length.
	ErrInvalidAddress = errors.New("addresses: invalid address format")

	// ErrInvalidCharacter is returned when an address contains a byte
	// outside the 32-character encoding alphabet.
	ErrInvalidCharacter = errors.New("addresses: character outside encoding alphabet")

	// ErrInvalidEncoding is returned when a decoded field does not fit
	// in its expected byte width.
	ErrInvalidEncoding = errors.New("addresses: encoded value out of range")

	// ErrChecksumMismatch is returned when an address's checksum does
	// not match its public key.
	ErrChecksumMismatch = errors.New("addresses: checksum mismatch")

	// ErrInvalidMnemonic is returned when a mnemonic phrase fails
	// wordlist or checksum validation.
	ErrInvalidMnemonic = errors.New("addresses: invalid mnemonic phrase")
)
