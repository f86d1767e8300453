// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto

import "errors"

// ErrInvalidEncoding is returned when a hex or binary encoding of a
// key, hash, or signature does not have the expected length.
var ErrInvalidEncoding = errors.New("crypto: invalid encoding")

// ErrHandshakeFailed describes a handshake response signature that
// does not verify against the cookie the local controller issued.
// Nothing in this module returns it: the peer controller reports that
// condition as peer.ErrHandshakeFailed.
var ErrHandshakeFailed = errors.New("crypto: handshake signature verification failed")
