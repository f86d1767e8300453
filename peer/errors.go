// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements the per-connection controller: the
// reassembly buffer, handshake, and message-dispatch state machine
// that drives a ledger.Ledger from a stream of wire-framed packets.
package peer

import "errors"

var (
	// ErrDisconnected is returned by Controller.Run when the inbound
	// channel closes, the normal termination path for a peer session.
	ErrDisconnected = errors.New("peer: inbound channel disconnected")

	// ErrIdleTimeout is returned when no packet arrives on the inbound
	// channel within a controller's configured idle timeout.
	ErrIdleTimeout = errors.New("peer: idle timeout waiting for inbound data")

	// ErrHandshakeFailed is returned when a peer's handshake response
	// signature does not verify against the cookie this controller
	// issued.
	ErrHandshakeFailed = errors.New("peer: handshake signature verification failed")

	// ErrUnexpectedMessage is returned when a message type arrives that
	// this core has no handler for (the bulk-transfer stubs).
	ErrUnexpectedMessage = errors.New("peer: unexpected or unimplemented message type")
)
