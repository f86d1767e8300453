// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/blocklattice/ledgerd/ledger"
)

// BlockType is re-exported from ledger so callers constructing headers
// don't need to import both packages.
type BlockType = ledger.BlockType

// Magic is the fixed first byte of every header, a fast reject for
// connections speaking an unrelated protocol.
const Magic byte = 'R'

// HeaderSize is the fixed on-wire width of a header: magic, network,
// three protocol-version bytes, message type, and a 16-bit extensions
// bitfield.
const HeaderSize = 8

// NetworkTag identifies which of the block-lattice networks a header
// belongs to.
type NetworkTag uint8

const (
	// Live is the production network.
	Live NetworkTag = iota + 1
	// Beta is the long-running public test network.
	Beta
	// Test is the ephemeral, per-developer test network.
	Test
)

var networkTagStrings = map[NetworkTag]string{
	Live: "Live",
	Beta: "Beta",
	Test: "Test",
}

// String returns the NetworkTag in human-readable form.
func (n NetworkTag) String() string {
	if s, ok := networkTagStrings[n]; ok {
		return s
	}
	return "Unknown"
}

// MessageType selects which payload codec a header's bytes are
// followed by.
type MessageType uint8

const (
	MessageInvalid MessageType = iota
	MessageKeepalive
	MessagePublish
	MessageConfirmReq
	MessageConfirmAck
	MessageHandshake
	MessageFrontierReq
	MessageFrontierResp
	MessageTelemetryReq
	MessageTelemetryAck
	// MessageBulkPull, MessageBulkPush and MessageBulkPullAccount are
	// bootstrap bulk-transfer stubs: the message type is reserved on
	// the wire but this core implements no payload codec for them.
	MessageBulkPull
	MessageBulkPush
	MessageBulkPullAccount
)

var messageTypeStrings = map[MessageType]string{
	MessageKeepalive:       "Keepalive",
	MessagePublish:         "Publish",
	MessageConfirmReq:      "ConfirmReq",
	MessageConfirmAck:      "ConfirmAck",
	MessageHandshake:       "Handshake",
	MessageFrontierReq:     "FrontierReq",
	MessageFrontierResp:    "FrontierResp",
	MessageTelemetryReq:    "TelemetryReq",
	MessageTelemetryAck:    "TelemetryAck",
	MessageBulkPull:        "BulkPull",
	MessageBulkPush:        "BulkPush",
	MessageBulkPullAccount: "BulkPullAccount",
}

// String returns the MessageType in human-readable form.
func (t MessageType) String() string {
	if s, ok := messageTypeStrings[t]; ok {
		return s
	}
	return "Unknown"
}

// Versions carries the three protocol-version bytes every header
// embeds: the highest version the sender understands, the version it
// is using for this message, and the lowest version it will accept
// from a peer. None of the three is enforced by this core.
type Versions struct {
	Max   uint8
	Using uint8
	Min   uint8
}

// Extensions is the header's 16-bit bitfield. Its bit layout is
// message-type dependent; the named accessors below interpret it per
// message type, and callers must only call the accessor matching the
// header's MessageType.
type Extensions uint16

const (
	extBlockTypeShift = 8
	extBlockTypeMask  = 0x0f

	extHandshakeQuery    = 1 << 0
	extHandshakeResponse = 1 << 1

	extFrontierExtendedParams = 1 << 1

	extTelemetrySizeMask = 0x07ff

	extConfirmAckRootsShift = 0
	extConfirmAckRootsMask  = 0xff
)

// BlockType returns the 4-bit block-type field carried in bits 8-11,
// valid for Publish, ConfirmReq and ConfirmAck headers.
func (e Extensions) BlockType() BlockType {
	return BlockType((uint16(e) >> extBlockTypeShift) & extBlockTypeMask)
}

// WithBlockType returns e with its block-type field set to bt.
func (e Extensions) WithBlockType(bt BlockType) Extensions {
	cleared := uint16(e) &^ (extBlockTypeMask << extBlockTypeShift)
	return Extensions(cleared | (uint16(bt)&extBlockTypeMask)<<extBlockTypeShift)
}

// HandshakeQuery reports whether a Handshake payload carries a query
// cookie.
func (e Extensions) HandshakeQuery() bool {
	return uint16(e)&extHandshakeQuery != 0
}

// HandshakeResponse reports whether a Handshake payload carries a
// response (account + signature).
func (e Extensions) HandshakeResponse() bool {
	return uint16(e)&extHandshakeResponse != 0
}

// WithHandshakeQuery returns e with its query-present bit set to v.
func (e Extensions) WithHandshakeQuery(v bool) Extensions {
	return setBit(e, extHandshakeQuery, v)
}

// WithHandshakeResponse returns e with its response-present bit set to v.
func (e Extensions) WithHandshakeResponse(v bool) Extensions {
	return setBit(e, extHandshakeResponse, v)
}

// FrontierExtendedParams reports whether a FrontierReq carries its
// optional extended parameters.
func (e Extensions) FrontierExtendedParams() bool {
	return uint16(e)&extFrontierExtendedParams != 0
}

// TelemetryPayloadSize returns the payload size encoded in the low 11
// bits of a Telemetry header's extensions.
func (e Extensions) TelemetryPayloadSize() int {
	return int(uint16(e) & extTelemetrySizeMask)
}

// WithTelemetryPayloadSize returns e with its low 11 bits set to size.
func (e Extensions) WithTelemetryPayloadSize(size int) Extensions {
	cleared := uint16(e) &^ extTelemetrySizeMask
	return Extensions(cleared | uint16(size)&extTelemetrySizeMask)
}

// ConfirmAckRootCount returns the number of 32-byte roots a ConfirmAck
// carries, encoded in the header's extensions.
func (e Extensions) ConfirmAckRootCount() int {
	return int((uint16(e) >> extConfirmAckRootsShift) & extConfirmAckRootsMask)
}

// WithConfirmAckRootCount returns e with its root-count field set to n.
func (e Extensions) WithConfirmAckRootCount(n int) Extensions {
	cleared := uint16(e) &^ (extConfirmAckRootsMask << extConfirmAckRootsShift)
	return Extensions(cleared | (uint16(n)&extConfirmAckRootsMask)<<extConfirmAckRootsShift)
}

func setBit(e Extensions, bit uint16, v bool) Extensions {
	if v {
		return Extensions(uint16(e) | bit)
	}
	return Extensions(uint16(e) &^ bit)
}

// Header is the fixed 8-byte frame prefix preceding every message
// payload.
type Header struct {
	Network     NetworkTag
	Versions    Versions
	MessageType MessageType
	Extensions  Extensions
}

// NewHeader builds a header for network and messageType with the
// given extensions, using ProtocolVersion for all three version
// fields.
func NewHeader(network NetworkTag, messageType MessageType, ext Extensions) Header {
	return Header{
		Network:     network,
		Versions:    Versions{Max: ProtocolVersion, Using: ProtocolVersion, Min: ProtocolVersion},
		MessageType: messageType,
		Extensions:  ext,
	}
}

// Validate checks the header's network tag against want; the magic
// byte is checked earlier, by DeserializeHeader. Protocol version
// numbers are recorded but never enforced.
func (h Header) Validate(want NetworkTag) error {
	if h.Network != want {
		return ErrInvalidHeader
	}
	return nil
}

// Serialize renders h as its fixed 8-byte wire form.
func (h Header) Serialize() []byte {
	out := make([]byte, HeaderSize)
	out[0] = Magic
	out[1] = byte(h.Network)
	out[2] = h.Versions.Max
	out[3] = h.Versions.Using
	out[4] = h.Versions.Min
	out[5] = byte(h.MessageType)
	binary.LittleEndian.PutUint16(out[6:8], uint16(h.Extensions))
	return out
}

// DeserializeHeader parses exactly HeaderSize bytes into a Header,
// failing with ErrInvalidHeader if the magic byte is wrong.
func DeserializeHeader(data []byte) (Header, error) {
	var h Header
	if len(data) != HeaderSize {
		return h, ErrUnexpectedEOF
	}
	if data[0] != Magic {
		return h, ErrInvalidHeader
	}
	h.Network = NetworkTag(data[1])
	h.Versions = Versions{Max: data[2], Using: data[3], Min: data[4]}
	h.MessageType = MessageType(data[5])
	h.Extensions = Extensions(binary.LittleEndian.Uint16(data[6:8]))
	return h, nil
}
