// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/blocklattice/ledgerd/addresses"
	"github.com/blocklattice/ledgerd/crypto"
	"github.com/blocklattice/ledgerd/genesis"
	"github.com/blocklattice/ledgerd/ledger"
	"github.com/blocklattice/ledgerd/wire"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*Controller, chan<- Packet, <-chan Packet, ed25519.PrivateKey) {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	cfg := Config{
		Network:            NetworkParams{Tag: wire.Test},
		Store:              ledger.NewMemStore(),
		NodeKey:            priv,
		ValidateHandshakes: true,
		IdleTimeout:        2 * time.Second,
	}
	c, in, out := NewController(cfg, "test-peer")
	return c, in, out, priv
}

// TestHandshakeQueryThenResponseSucceeds drives a controller through
// issuing a cookie and receiving back a validly signed response, the
// mutual-auth exchange every live session opens with.
func TestHandshakeQueryThenResponseSucceeds(t *testing.T) {
	c, in, out, _ := newTestController(t)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	// Drain the controller's own handshake query.
	queryPacket := <-out
	header, err := wire.DeserializeHeader(queryPacket.Data[:wire.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, wire.MessageHandshake, header.MessageType)
	require.True(t, header.Extensions.HandshakeQuery())

	msg, err := wire.DeserializeHandshake(&header, queryPacket.Data[wire.HeaderSize:])
	require.NoError(t, err)
	require.NotNil(t, msg.Query)

	peerPub, peerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	digest := crypto.HandshakeSum(msg.Query[:])
	sig := crypto.Sign(peerPriv, digest[:])

	resp := wire.HandshakeResponse{Account: [32]byte(peerPub), Signature: [64]byte(sig)}
	respMsg := wire.Handshake{Response: &resp}
	respHeader := wire.NewHeader(wire.Test, wire.MessageHandshake, wire.Extensions(0).WithHandshakeResponse(true))

	buf := append(respHeader.Serialize(), respMsg.Serialize()...)
	in <- NewPacket(buf)

	close(in)
	err = <-done
	require.ErrorIs(t, err, ErrDisconnected)
	require.True(t, c.handshakeCompleted)
}

// TestHandshakeBadSignatureFails verifies that a response signed by a
// key that never received this controller's cookie is rejected.
func TestHandshakeBadSignatureFails(t *testing.T) {
	c, in, out, _ := newTestController(t)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	<-out // the controller's own query

	forger, forgerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	wrongDigest := crypto.HandshakeSum([]byte("not the real cookie"))
	sig := crypto.Sign(forgerPriv, wrongDigest[:])

	resp := wire.HandshakeResponse{Account: [32]byte(forger), Signature: [64]byte(sig)}
	respMsg := wire.Handshake{Response: &resp}
	respHeader := wire.NewHeader(wire.Test, wire.MessageHandshake, wire.Extensions(0).WithHandshakeResponse(true))

	buf := append(respHeader.Serialize(), respMsg.Serialize()...)
	in <- NewPacket(buf)

	err = <-done
	require.ErrorIs(t, err, ErrHandshakeFailed)
}

// TestRecvBufReassemblesChunks splits one framed message across
// several inbound packets and confirms the controller reassembles and
// dispatches it.
func TestRecvBufReassemblesChunks(t *testing.T) {
	c, in, out, _ := newTestController(t)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	<-out // the controller's own handshake query

	frame := wire.NewHeader(wire.Test, wire.MessageTelemetryReq, 0).Serialize()
	in <- NewPacket(frame[:3])
	in <- NewPacket(frame[3:5])
	in <- NewPacket(frame[5:])

	ackPacket := <-out
	ackHeader, err := wire.DeserializeHeader(ackPacket.Data[:wire.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, wire.MessageTelemetryAck, ackHeader.MessageType)

	close(in)
	require.ErrorIs(t, <-done, ErrDisconnected)
}

// TestIdleTimeout confirms a silent peer terminates the run loop with
// ErrIdleTimeout rather than hanging it forever.
func TestIdleTimeout(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	cfg := Config{
		Network:     NetworkParams{Tag: wire.Test},
		Store:       ledger.NewMemStore(),
		NodeKey:     priv,
		IdleTimeout: 50 * time.Millisecond,
	}
	c, _, out := NewController(cfg, "silent-peer")

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	<-out // the controller's own handshake query
	require.ErrorIs(t, <-done, ErrIdleTimeout)
}

// TestFrontierStreamingReturnsToFramed drives a controller in the
// frontier-streaming state through a bare record and the all-zero
// terminator, then confirms header-framed dispatch has resumed by
// getting a telemetry request answered.
func TestFrontierStreamingReturnsToFramed(t *testing.T) {
	c, in, out, _ := newTestController(t)
	c.EnterFrontierStreaming()

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	<-out // the controller's own handshake query

	record := wire.FrontierResp{Account: addresses.Account{7}, Frontier: ledger.Hash{8}}
	in <- NewPacket(record.Serialize())
	in <- NewPacket(wire.FrontierResp{}.Serialize())

	reqHeader := wire.NewHeader(wire.Test, wire.MessageTelemetryReq, 0)
	in <- NewPacket(reqHeader.Serialize())

	ackPacket := <-out
	ackHeader, err := wire.DeserializeHeader(ackPacket.Data[:wire.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, wire.MessageTelemetryAck, ackHeader.MessageType)

	close(in)
	require.ErrorIs(t, <-done, ErrDisconnected)
}

// TestDispatchAdmitsPublishedBlock drives a Publish message for a
// Send off the genesis frontier through the controller and confirms
// the ledger admitted it, exercising the Framed dispatch path end to
// end.
func TestDispatchAdmitsPublishedBlock(t *testing.T) {
	c, in, out, _ := newTestController(t)

	params := genesis.TestParams
	require.NoError(t, genesis.Seed(c.ledger, params))

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	<-out // the controller's own handshake query, irrelevant here

	var destination addresses.Account
	destination[0] = 0x42
	send := &ledger.SendBlock{
		Previous:    params.Hash,
		Destination: destination,
		Balance:     ledger.Rai{},
	}

	header := wire.NewHeader(wire.Test, wire.MessagePublish, wire.Extensions(0).WithBlockType(ledger.BlockTypeSend))
	payload := wire.Publish{Block: send}.Serialize()
	in <- NewPacket(append(header.Serialize(), payload...))

	close(in)
	err := <-done
	require.ErrorIs(t, err, ErrDisconnected)

	got, err := c.ledger.Store.GetBlock(send.Hash())
	require.NoError(t, err)
	require.Equal(t, params.Open.Account, got.Account)
}
