// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"crypto/ed25519"

	"github.com/blocklattice/ledgerd/crypto"
	"github.com/blocklattice/ledgerd/wire"
)

// sendHandshakeQuery issues this controller's cookie as the opening
// message of a session. Incoming messages are dispatched whether or
// not the handshake has completed.
func (c *Controller) sendHandshakeQuery() error {
	seed, err := crypto.RandomSeed()
	if err != nil {
		return err
	}
	c.cookie = seed

	msg := wire.Handshake{Query: &c.cookie}
	ext := wire.Extensions(0).WithHandshakeQuery(true)
	return c.send(wire.MessageHandshake, ext, msg.Serialize())
}

// handleHandshake processes an incoming Handshake payload. A query
// cookie is answered with this node's account and a signature over
// the cookie under the handshake digest; a response is checked against
// whichever cookie this controller issued.
func (c *Controller) handleHandshake(h wire.Handshake) error {
	if h.Query != nil {
		if err := c.respondToQuery(*h.Query); err != nil {
			return err
		}
	}
	if h.Response != nil {
		if err := c.verifyResponse(*h.Response); err != nil {
			return err
		}
		c.handshakeCompleted = true
	}
	return nil
}

// respondToQuery signs the peer's cookie and sends it back as a
// Handshake response.
func (c *Controller) respondToQuery(cookie [32]byte) error {
	digest := crypto.HandshakeSum(cookie[:])
	sig := crypto.Sign(c.cfg.NodeKey, digest[:])

	resp := wire.HandshakeResponse{
		Account:   [32]byte(c.cfg.NodeKey.Public().(ed25519.PublicKey)),
		Signature: [64]byte(sig),
	}
	msg := wire.Handshake{Response: &resp}
	ext := wire.Extensions(0).WithHandshakeResponse(true)
	return c.send(wire.MessageHandshake, ext, msg.Serialize())
}

// verifyResponse checks resp's signature over the cookie this
// controller issued, failing with ErrHandshakeFailed on mismatch. When
// Config.ValidateHandshakes is false (a pcap replay, where cookies
// were never issued to the replaying process) the check is skipped.
func (c *Controller) verifyResponse(resp wire.HandshakeResponse) error {
	if !c.cfg.ValidateHandshakes {
		return nil
	}
	digest := crypto.HandshakeSum(c.cookie[:])
	if !crypto.Verify(ed25519.PublicKey(resp.Account[:]), digest[:], resp.Signature[:]) {
		return ErrHandshakeFailed
	}
	return nil
}
