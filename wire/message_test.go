// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"net"
	"testing"

	"github.com/blocklattice/ledgerd/addresses"
	"github.com/blocklattice/ledgerd/ledger"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fill(t *rapid.T, label string) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = byte(rapid.IntRange(0, 255).Draw(t, label))
	}
	return out
}

func fillRai(t *rapid.T, label string) ledger.Rai {
	var out ledger.Rai
	for i := range out {
		out[i] = byte(rapid.IntRange(0, 255).Draw(t, label))
	}
	return out
}

// TestKeepaliveRoundTrip covers the universal round-trip property for
// the Keepalive payload.
func TestKeepaliveRoundTrip(t *testing.T) {
	header := NewHeader(Live, MessageKeepalive, 0)
	var k Keepalive
	for i := range k.Peers {
		ip := net.ParseIP("2001:db8::1")
		k.Peers[i] = PeerEntry{Addr: ip, Port: uint16(1000 + i)}
	}

	buf := k.Serialize()
	require.Equal(t, k.Len(&header), len(buf))

	got, err := DeserializeKeepalive(&header, buf)
	require.NoError(t, err)
	for i := range k.Peers {
		require.True(t, k.Peers[i].Addr.Equal(got.Peers[i].Addr))
		require.Equal(t, k.Peers[i].Port, got.Peers[i].Port)
	}
}

func TestPublishRoundTripSendBlock(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		acct := addresses.Account(fill(t, "account"))
		send := &ledger.SendBlock{
			Previous:    ledger.Hash(fill(t, "previous")),
			Destination: acct,
			Balance:     fillRai(t, "balance"),
		}
		header := NewHeader(Live, MessagePublish, Extensions(0).WithBlockType(ledger.BlockTypeSend))
		length, err := Publish{}.Len(&header)
		require.NoError(t, err)

		p := Publish{Block: send}
		buf := p.Serialize()
		require.Equal(t, length, len(buf))

		got, err := DeserializePublish(&header, buf)
		require.NoError(t, err)
		require.Equal(t, send, got.Block)
	})
}

func TestConfirmReqRoundTripBlockShape(t *testing.T) {
	header := NewHeader(Live, MessageConfirmReq, Extensions(0).WithBlockType(ledger.BlockTypeChange))
	change := &ledger.ChangeBlock{
		Previous:       ledger.Hash{1, 2, 3},
		Representative: addresses.Account{4, 5, 6},
	}

	req := ConfirmReq{Block: change}
	length, err := req.Len(&header)
	require.NoError(t, err)
	buf := req.Serialize()
	require.Equal(t, length, len(buf))

	got, err := DeserializeConfirmReq(&header, buf)
	require.NoError(t, err)
	require.Equal(t, change, got.Block)
	require.Nil(t, got.Roots)
}

func TestConfirmReqRoundTripRootsShape(t *testing.T) {
	header := NewHeader(Live, MessageConfirmReq,
		Extensions(0).WithBlockType(ledger.BlockTypeNotABlock).WithConfirmAckRootCount(3))

	req := ConfirmReq{Roots: []HashPair{
		{Previous: ledger.Hash{1}, Hash: ledger.Hash{2}},
		{Previous: ledger.Hash{3}, Hash: ledger.Hash{4}},
		{Previous: ledger.Hash{5}, Hash: ledger.Hash{6}},
	}}

	length, err := req.Len(&header)
	require.NoError(t, err)
	buf := req.Serialize()
	require.Equal(t, length, len(buf))

	got, err := DeserializeConfirmReq(&header, buf)
	require.NoError(t, err)
	require.Equal(t, req.Roots, got.Roots)
	require.Nil(t, got.Block)
}

func TestConfirmAckRoundTrip(t *testing.T) {
	header := NewHeader(Live, MessageConfirmAck, Extensions(0).WithConfirmAckRootCount(2))

	ack := ConfirmAck{
		Account:   [32]byte{1, 2, 3},
		Signature: [64]byte{1, 2, 3},
		Sequence:  123456789,
		Roots: []HashPair{
			{Previous: ledger.Hash{0xAA}, Hash: ledger.Hash{0xBB}},
			{Previous: ledger.Hash{0xCC}, Hash: ledger.Hash{0xDD}},
		},
	}

	length, err := ack.Len(&header)
	require.NoError(t, err)
	buf := ack.Serialize()
	require.Equal(t, length, len(buf))

	got, err := DeserializeConfirmAck(&header, buf)
	require.NoError(t, err)
	require.Equal(t, ack, got)
}

func TestHandshakeRoundTripQueryOnly(t *testing.T) {
	header := NewHeader(Live, MessageHandshake, Extensions(0).WithHandshakeQuery(true))
	cookie := [32]byte{1, 2, 3, 4}
	h := Handshake{Query: &cookie}

	length, err := h.Len(&header)
	require.NoError(t, err)
	buf := h.Serialize()
	require.Equal(t, length, len(buf))

	got, err := DeserializeHandshake(&header, buf)
	require.NoError(t, err)
	require.Equal(t, cookie, *got.Query)
	require.Nil(t, got.Response)
}

func TestHandshakeRoundTripQueryAndResponse(t *testing.T) {
	header := NewHeader(Live, MessageHandshake,
		Extensions(0).WithHandshakeQuery(true).WithHandshakeResponse(true))
	cookie := [32]byte{9}
	h := Handshake{
		Query:    &cookie,
		Response: &HandshakeResponse{Account: [32]byte{1}, Signature: [64]byte{2}},
	}

	length, err := h.Len(&header)
	require.NoError(t, err)
	buf := h.Serialize()
	require.Equal(t, length, len(buf))

	got, err := DeserializeHandshake(&header, buf)
	require.NoError(t, err)
	require.Equal(t, h.Query, got.Query)
	require.Equal(t, h.Response, got.Response)
}

func TestFrontierReqRoundTrip(t *testing.T) {
	header := NewHeader(Live, MessageFrontierReq, 0)
	req := FrontierReq{Start: addresses.Account{1, 2, 3}, Age: 10, Count: 20}

	length, err := req.Len(&header)
	require.NoError(t, err)
	buf := req.Serialize()
	require.Equal(t, length, len(buf))

	got, err := DeserializeFrontierReq(&header, buf)
	require.NoError(t, err)
	require.Equal(t, req, got)
}

func TestFrontierRespRoundTripAndTerminator(t *testing.T) {
	header := NewHeader(Live, MessageFrontierResp, 0)
	resp := FrontierResp{Account: addresses.Account{9}, Frontier: ledger.Hash{8}}

	buf := resp.Serialize()
	got, err := DeserializeFrontierResp(&header, buf)
	require.NoError(t, err)
	require.Equal(t, resp, got)
	require.False(t, got.IsTerminator())

	var zero FrontierResp
	require.True(t, zero.IsTerminator())
}

func TestTelemetryAckRoundTrip(t *testing.T) {
	header := NewHeader(Live, MessageTelemetryAck, 0)
	ack := TelemetryAck{Account: [32]byte{1}, Version: 1, BlockCount: 42}

	buf := ack.Serialize()
	got, err := DeserializeTelemetryAck(&header, buf)
	require.NoError(t, err)
	require.Equal(t, ack, got)
}

func TestMessageDecodeEncodeRoundTrip(t *testing.T) {
	header := NewHeader(Live, MessageTelemetryReq, 0)
	length, err := PayloadLen(&header)
	require.NoError(t, err)
	require.Equal(t, 0, length)

	msg, err := Decode(&header, nil)
	require.NoError(t, err)
	require.Equal(t, MessageTelemetryReq, msg.Type)
	require.Empty(t, msg.Encode())
}
