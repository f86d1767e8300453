// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/blocklattice/ledgerd/ledger"
	"github.com/blocklattice/ledgerd/wire"
	"github.com/davecgh/go-spew/spew"
)

// InboundCapacity and OutboundCapacity bound the channel pair a
// Controller is driven by and drains into; both directions
// backpressure naturally once a transport falls behind.
const (
	InboundCapacity  = 100
	OutboundCapacity = 100
)

// DefaultIdleTimeout is how long Run waits for inbound data before
// failing with ErrIdleTimeout. The protocol fixes no value; this is a
// conservative default a caller can override via Config.IdleTimeout.
const DefaultIdleTimeout = 2 * time.Minute

// Config constructs a Controller. The controller has no flag parsing
// or CLI surface of its own; everything it needs is supplied by
// construction.
type Config struct {
	Network NetworkParams
	Store   ledger.Store
	NodeKey ed25519.PrivateKey

	// ValidateHandshakes disables handshake-signature verification
	// when false. A pcap dump tool replaying captured traffic sets
	// this false, since cookies in replayed traffic were never issued
	// to the local node and can never be validated against it.
	ValidateHandshakes bool

	// IdleTimeout overrides DefaultIdleTimeout when non-zero.
	IdleTimeout time.Duration
}

// NetworkParams holds the per-network settings a Controller needs:
// which network tag to stamp on outgoing headers and validate on
// incoming ones.
type NetworkParams struct {
	Tag wire.NetworkTag
}

// dispatchState is the controller's two-state message-framing state
// machine: header-framed messages, or a bare frontier record stream.
type dispatchState int

const (
	stateFramed dispatchState = iota
	stateFrontierStreaming
)

// Controller owns the logic of one peer: an inbound/outbound packet
// channel pair, a reassembly buffer, a reusable header, and the
// ledger it admits elected blocks into.
type Controller struct {
	cfg    Config
	ledger *ledger.Ledger

	peerAddr string
	state    dispatchState

	incoming <-chan Packet
	outgoing chan<- Packet

	// buf is the reassembly buffer. Using a bytes.Buffer's Read/Write
	// pair rather than the naive "copy the tail over the head" pattern
	// avoids an O(n) compaction on every read; the buffer only slides
	// its backing array down once the already-read prefix grows large
	// relative to the unread suffix.
	buf bytes.Buffer

	header         wire.Header
	lastAnnotation *string

	cookie             [32]byte
	handshakeCompleted bool
}

// NewController constructs a Controller bound to peerAddr (an opaque
// label; the controller never dials anything itself, a transport
// supplies bytes through incoming and drains outgoing) along with the
// channel pair a caller should hand to its transport.
func NewController(cfg Config, peerAddr string) (*Controller, chan<- Packet, <-chan Packet) {
	incoming := make(chan Packet, InboundCapacity)
	outgoing := make(chan Packet, OutboundCapacity)

	c := &Controller{
		cfg:      cfg,
		ledger:   ledger.NewLedger(cfg.Store),
		peerAddr: peerAddr,
		state:    stateFramed,
		incoming: incoming,
		outgoing: outgoing,
		header:   wire.NewHeader(cfg.Network.Tag, wire.MessageHandshake, 0),
	}
	return c, incoming, outgoing
}

// idleTimeout returns the configured idle timeout or DefaultIdleTimeout.
func (c *Controller) idleTimeout() time.Duration {
	if c.cfg.IdleTimeout > 0 {
		return c.cfg.IdleTimeout
	}
	return DefaultIdleTimeout
}

// recvBuf blocks on the inbound channel until the reassembly buffer
// holds at least n bytes, then drains exactly n of them. It fails with
// ErrDisconnected when the inbound channel closes and ErrIdleTimeout
// when no packet arrives within the idle timeout while waiting.
func (c *Controller) recvBuf(n int) ([]byte, error) {
	timer := time.NewTimer(c.idleTimeout())
	defer timer.Stop()

	for c.buf.Len() < n {
		select {
		case packet, ok := <-c.incoming:
			if !ok {
				return nil, ErrDisconnected
			}
			if packet.Annotation != nil {
				c.lastAnnotation = packet.Annotation
			}
			c.buf.Write(packet.Data)
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.idleTimeout())

		case <-timer.C:
			return nil, ErrIdleTimeout
		}
	}

	out := make([]byte, n)
	if _, err := c.buf.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// send serializes message and writes it, preceded by header, to the
// outbound channel.
func (c *Controller) send(messageType wire.MessageType, ext wire.Extensions, payload []byte) error {
	header := c.header
	header.MessageType = messageType
	header.Extensions = ext

	buf := make([]byte, 0, wire.HeaderSize+len(payload))
	buf = append(buf, header.Serialize()...)
	buf = append(buf, payload...)

	c.outgoing <- NewPacket(buf)
	return nil
}

// sendRaw writes payload to the outbound channel with no header, used
// for the bare records of a frontier stream.
func (c *Controller) sendRaw(payload []byte) error {
	c.outgoing <- NewPacket(payload)
	return nil
}

// recvHeader reads and validates the next 8-byte header.
func (c *Controller) recvHeader() (wire.Header, error) {
	raw, err := c.recvBuf(wire.HeaderSize)
	if err != nil {
		return wire.Header{}, err
	}
	header, err := wire.DeserializeHeader(raw)
	if err != nil {
		return header, err
	}
	if err := header.Validate(c.cfg.Network.Tag); err != nil {
		return header, err
	}
	return header, nil
}

// recvMessage reads a header-selected payload and decodes it into a
// wire.Message.
func (c *Controller) recvMessage(header wire.Header) (wire.Message, error) {
	length, err := wire.PayloadLen(&header)
	if err != nil {
		return wire.Message{}, err
	}
	raw, err := c.recvBuf(length)
	if err != nil {
		return wire.Message{}, err
	}
	msg, err := wire.Decode(&header, raw)
	if err != nil {
		c.debugDump(header, raw)
		return msg, err
	}
	return msg, nil
}

// debugDump logs a diffable dump of a malformed frame, annotated with
// the last packet annotation seen (e.g. from a pcap replay), using
// go-spew for readable test/debug output.
func (c *Controller) debugDump(header wire.Header, raw []byte) {
	if log == nil {
		return
	}
	annotation := ""
	if c.lastAnnotation != nil {
		annotation = *c.lastAnnotation + " "
	}
	log.Debugf("%smalformed %s frame from %s: %s", annotation, header.MessageType, c.peerAddr, spew.Sdump(raw))
}

// Run drives the controller's receive/dispatch loop until the inbound
// channel closes (ErrDisconnected, a normal exit) or a terminal
// condition occurs. It issues the initial handshake query before
// entering the loop.
func (c *Controller) Run() error {
	if err := c.sendHandshakeQuery(); err != nil {
		return fmt.Errorf("peer %s: sending handshake query: %w", c.peerAddr, err)
	}

	for {
		if c.state == stateFrontierStreaming {
			header := wire.NewHeader(c.cfg.Network.Tag, wire.MessageFrontierResp, 0)
			length, err := wire.FrontierResp{}.Len(&header)
			if err != nil {
				return fmt.Errorf("peer %s: sizing frontier record: %w", c.peerAddr, err)
			}
			raw, err := c.recvBuf(length)
			if err != nil {
				return fmt.Errorf("peer %s: receiving frontier record: %w", c.peerAddr, err)
			}
			resp, err := wire.DeserializeFrontierResp(&header, raw)
			if err != nil {
				return fmt.Errorf("peer %s: decoding frontier record: %w", c.peerAddr, err)
			}
			if err := c.handleFrontierResp(resp); err != nil {
				return fmt.Errorf("peer %s: handling frontier record: %w", c.peerAddr, err)
			}
			continue
		}

		header, err := c.recvHeader()
		if err != nil {
			return fmt.Errorf("peer %s: receiving header: %w", c.peerAddr, err)
		}

		msg, err := c.recvMessage(header)
		if err != nil {
			return fmt.Errorf("peer %s: receiving %s payload: %w", c.peerAddr, header.MessageType, err)
		}

		if log != nil {
			if c.lastAnnotation != nil {
				log.Debugf("%s %s", *c.lastAnnotation, header.MessageType)
			} else {
				log.Debugf("%s", header.MessageType)
			}
		}

		if err := c.dispatch(header, msg); err != nil {
			return fmt.Errorf("peer %s: handling %s: %w", c.peerAddr, header.MessageType, err)
		}
	}
}

// dispatch routes msg to its message-specific handler.
func (c *Controller) dispatch(header wire.Header, msg wire.Message) error {
	switch header.MessageType {
	case wire.MessageKeepalive:
		return c.handleKeepalive(msg.Keepalive)
	case wire.MessagePublish:
		return c.handlePublish(msg.Publish)
	case wire.MessageConfirmReq:
		return c.handleConfirmReq(msg.ConfirmReq)
	case wire.MessageConfirmAck:
		return c.handleConfirmAck(msg.ConfirmAck)
	case wire.MessageHandshake:
		return c.handleHandshake(msg.Handshake)
	case wire.MessageFrontierReq:
		return c.handleFrontierReq(msg.FrontierReq)
	case wire.MessageFrontierResp:
		return c.handleFrontierResp(msg.FrontierResp)
	case wire.MessageTelemetryReq:
		return c.handleTelemetryReq(msg.TelemetryReq)
	case wire.MessageTelemetryAck:
		return c.handleTelemetryAck(msg.TelemetryAck)
	default:
		return ErrUnexpectedMessage
	}
}
