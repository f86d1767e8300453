// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "encoding/binary"

// TelemetryReq asks a peer to send its telemetry snapshot. It carries
// no payload; the header alone constitutes the message.
type TelemetryReq struct{}

// Len is always 0: TelemetryReq has no payload beyond its header.
func (TelemetryReq) Len(_ *Header) (int, error) { return 0, nil }

// Serialize returns an empty slice.
func (TelemetryReq) Serialize() []byte { return nil }

// DeserializeTelemetryReq always succeeds with an empty struct,
// ignoring any trailing bytes.
func DeserializeTelemetryReq(_ *Header, _ []byte) (TelemetryReq, error) {
	return TelemetryReq{}, nil
}

// TelemetryAck carries a minimal node-metadata snapshot: the reporting
// node's account, its software version, and the block count it has
// stored. Fields beyond these are not modeled.
type TelemetryAck struct {
	Account    [32]byte
	Version    uint8
	BlockCount uint64
}

const telemetryAckSize = 32 + 1 + 8

// Len returns TelemetryAck's fixed wire length. The header's
// low-11-bit payload-size field is expected to match this but is not
// itself consulted for framing; it exists for peers that extend the
// payload with additional metadata this core doesn't model.
func (TelemetryAck) Len(_ *Header) (int, error) {
	return telemetryAckSize, nil
}

// Serialize renders t as account||version||blockCount.
func (t TelemetryAck) Serialize() []byte {
	out := make([]byte, 0, telemetryAckSize)
	out = append(out, t.Account[:]...)
	out = append(out, t.Version)
	var bc [8]byte
	binary.LittleEndian.PutUint64(bc[:], t.BlockCount)
	out = append(out, bc[:]...)
	return out
}

// DeserializeTelemetryAck is the inverse of TelemetryAck.Serialize.
func DeserializeTelemetryAck(_ *Header, data []byte) (TelemetryAck, error) {
	var t TelemetryAck
	r := NewReader(data)

	account, err := r.ReadArray32()
	if err != nil {
		return t, err
	}
	t.Account = account

	version, err := r.ReadByte()
	if err != nil {
		return t, err
	}
	t.Version = version

	count, err := r.ReadUint64LE()
	if err != nil {
		return t, err
	}
	t.BlockCount = count
	return t, nil
}
