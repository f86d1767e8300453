// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

// Packet is the unit exchanged between a Controller and its
// transport: a chunk of peer data plus an optional debug annotation
// (e.g. "pkt#42 >>>" from a pcap replay, where direction alternates
// line by line). A nil Annotation leaves the controller's last
// annotation unchanged, so only the most recent non-nil value ever
// needs to be tracked.
type Packet struct {
	Data       []byte
	Annotation *string
}

// NewPacket wraps data with no annotation.
func NewPacket(data []byte) Packet {
	return Packet{Data: data}
}

// NewAnnotatedPacket wraps data with annotation.
func NewAnnotatedPacket(data []byte, annotation string) Packet {
	return Packet{Data: data, Annotation: &annotation}
}
