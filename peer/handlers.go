// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"crypto/ed25519"

	"github.com/blocklattice/ledgerd/wire"
)

// handleKeepalive does nothing beyond acknowledging receipt; peer
// discovery and connection management live with the transport, outside
// this package.
func (c *Controller) handleKeepalive(wire.Keepalive) error {
	return nil
}

// handlePublish admits the carried block as an elected block. A
// rejection from the ledger (a bad successor, a duplicate Open, an
// underflowing Send) is logged and otherwise ignored: a single bad
// Publish from a peer never tears down the connection.
func (c *Controller) handlePublish(p wire.Publish) error {
	_, err := c.ledger.AddElectedBlock(p.Block)
	if err != nil && log != nil {
		log.Debugf("peer %s: rejected published block: %v", c.peerAddr, err)
	}
	return nil
}

// handleConfirmReq answers a vote request. Full quorum/weight
// tallying is out of scope for this core; it only checks
// that a single-block request names a block this ledger actually
// admitted, and otherwise drops the request silently.
func (c *Controller) handleConfirmReq(req wire.ConfirmReq) error {
	if req.Block == nil {
		return nil
	}
	fb, err := c.ledger.Store.GetBlock(req.Block.Hash())
	if err != nil {
		return nil
	}

	ack := wire.ConfirmAck{
		Account:  c.localAccount(),
		Sequence: 0,
		Roots:    []wire.HashPair{{Hash: fb.Hash}},
	}
	ext := wire.Extensions(0).WithConfirmAckRootCount(len(ack.Roots))
	return c.send(wire.MessageConfirmAck, ext, ack.Serialize())
}

// handleConfirmAck records nothing; tallying votes toward quorum
// requires weighted-representative accounting this core does not keep,
// so an incoming vote is simply observed here.
func (c *Controller) handleConfirmAck(wire.ConfirmAck) error {
	return nil
}

// handleFrontierReq answers with the single frontier record known for
// req.Start (no record if the account is unknown), followed by the
// terminator record. Frontier records are
// streamed bare, without per-record headers, matching what a peer in
// the FrontierStreaming state expects. The reference protocol streams
// every account in the ledger's lexical order; this core's Store has
// no enumeration capability (ledger.Store is a point-lookup
// interface), so only the requested account's own frontier can be
// reported.
func (c *Controller) handleFrontierReq(req wire.FrontierReq) error {
	if hash, err := c.ledger.Store.LatestBlock(req.Start); err == nil {
		resp := wire.FrontierResp{Account: req.Start, Frontier: hash}
		if err := c.sendRaw(resp.Serialize()); err != nil {
			return err
		}
	}

	terminator := wire.FrontierResp{}
	return c.sendRaw(terminator.Serialize())
}

// EnterFrontierStreaming switches the controller into the
// FrontierStreaming dispatch state, used by a client that has just
// sent a FrontierReq and now expects a sequence of bare FrontierResp
// records rather than header-framed messages.
func (c *Controller) EnterFrontierStreaming() {
	c.state = stateFrontierStreaming
}

// handleFrontierResp processes one record of an incoming frontier
// stream, returning to framed dispatch once the terminator arrives.
func (c *Controller) handleFrontierResp(resp wire.FrontierResp) error {
	if resp.IsTerminator() {
		c.state = stateFramed
		return nil
	}
	if log != nil {
		log.Debugf("peer %s: frontier %s -> %s", c.peerAddr, resp.Account, resp.Frontier)
	}
	return nil
}

// handleTelemetryReq replies with this node's telemetry snapshot.
// Full telemetry (peer counts, uptime, bandwidth) is a skeleton only;
// BlockCount is the one figure derivable from the ledger
// store without additional bookkeeping, and even that requires
// enumeration this Store does not support, so it is reported as zero.
func (c *Controller) handleTelemetryReq(wire.TelemetryReq) error {
	ack := wire.TelemetryAck{
		Account: [32]byte(c.localAccount()),
		Version: wire.ProtocolVersion,
	}
	payload := ack.Serialize()
	ext := wire.Extensions(0).WithTelemetryPayloadSize(len(payload))
	return c.send(wire.MessageTelemetryAck, ext, payload)
}

// handleTelemetryAck observes a peer's telemetry snapshot. Nothing in
// this core aggregates telemetry across peers; the handler exists so
// the message is dispatched rather than rejected as unexpected.
func (c *Controller) handleTelemetryAck(wire.TelemetryAck) error {
	return nil
}

func (c *Controller) localAccount() [32]byte {
	return [32]byte(c.cfg.NodeKey.Public().(ed25519.PublicKey))
}
