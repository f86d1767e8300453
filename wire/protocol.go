// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// ProtocolVersion is the single protocol version this package speaks.
// A header carries three independent version bytes (max/using/min) so
// a future version could negotiate against older peers; this core
// does not yet enforce any negotiation rule.
const ProtocolVersion uint8 = 1

// PeerEntrySize is the on-wire width of one Keepalive peer entry: a
// 16-byte IPv6 address followed by a 2-byte little-endian port.
const PeerEntrySize = 18

// KeepalivePeerCount is the fixed number of peer entries a Keepalive
// payload carries.
const KeepalivePeerCount = 8
