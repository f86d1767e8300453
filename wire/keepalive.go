// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"net"
)

// PeerEntry is one of the eight peers a Keepalive advertises.
type PeerEntry struct {
	Addr net.IP // 16-byte form; a v4 address is stored v4-in-v6 mapped.
	Port uint16
}

// Keepalive carries a fixed list of peer entries a node currently
// knows about. The core does not act on these beyond passing them to
// the handler; no peer-store is implemented.
type Keepalive struct {
	Peers [KeepalivePeerCount]PeerEntry
}

// Len returns Keepalive's fixed wire length: eight 18-byte entries.
func (Keepalive) Len(_ *Header) int {
	return KeepalivePeerCount * PeerEntrySize
}

// Serialize renders k as its fixed-width wire form.
func (k Keepalive) Serialize() []byte {
	out := make([]byte, 0, k.Len(nil))
	for _, p := range k.Peers {
		var addr [16]byte
		copy(addr[:], p.Addr.To16())
		out = append(out, addr[:]...)
		var port [2]byte
		binary.LittleEndian.PutUint16(port[:], p.Port)
		out = append(out, port[:]...)
	}
	return out
}

// DeserializeKeepalive is the inverse of Keepalive.Serialize.
func DeserializeKeepalive(_ *Header, data []byte) (Keepalive, error) {
	var k Keepalive
	r := NewReader(data)
	for i := range k.Peers {
		addrBytes, err := r.Slice(16)
		if err != nil {
			return k, err
		}
		addr := make(net.IP, 16)
		copy(addr, addrBytes)
		port, err := r.ReadUint16LE()
		if err != nil {
			return k, err
		}
		k.Peers[i] = PeerEntry{Addr: addr, Port: port}
	}
	return k, nil
}
