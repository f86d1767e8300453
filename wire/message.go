// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// Message is a tagged union over every payload this package codes,
// selected by a header's MessageType. Decode/Encode replace the
// source's trait-object dispatch (a dynamic Wire capability, boxed so
// the pcap dump tool could print any payload behind one interface)
// with a switch over MessageType: no boxed payload ever needs a
// lifetime or a virtual call. A MessageType the switch does not list
// falls to its default case (ErrInvalidPayload from Decode, nil from
// Encode); the compiler does not check the switch for completeness.
type Message struct {
	Type MessageType

	Keepalive    Keepalive
	Publish      Publish
	ConfirmReq   ConfirmReq
	ConfirmAck   ConfirmAck
	Handshake    Handshake
	FrontierReq  FrontierReq
	FrontierResp FrontierResp
	TelemetryReq TelemetryReq
	TelemetryAck TelemetryAck
}

// PayloadLen returns the wire length of header's message body, or
// ErrInvalidPayload for a message type this package has no codec for
// (BulkPull/BulkPush/BulkPullAccount, or an unrecognized byte).
func PayloadLen(header *Header) (int, error) {
	switch header.MessageType {
	case MessageKeepalive:
		return Keepalive{}.Len(header), nil
	case MessagePublish:
		return Publish{}.Len(header)
	case MessageConfirmReq:
		return ConfirmReq{}.Len(header)
	case MessageConfirmAck:
		return ConfirmAck{}.Len(header)
	case MessageHandshake:
		return Handshake{}.Len(header)
	case MessageFrontierReq:
		return FrontierReq{}.Len(header)
	case MessageFrontierResp:
		return FrontierResp{}.Len(header)
	case MessageTelemetryReq:
		return TelemetryReq{}.Len(header)
	case MessageTelemetryAck:
		return TelemetryAck{}.Len(header)
	default:
		return 0, ErrInvalidPayload
	}
}

// Decode deserializes data (exactly PayloadLen(header) bytes) into the
// Message variant header.MessageType names.
func Decode(header *Header, data []byte) (Message, error) {
	m := Message{Type: header.MessageType}
	var err error
	switch header.MessageType {
	case MessageKeepalive:
		m.Keepalive, err = DeserializeKeepalive(header, data)
	case MessagePublish:
		m.Publish, err = DeserializePublish(header, data)
	case MessageConfirmReq:
		m.ConfirmReq, err = DeserializeConfirmReq(header, data)
	case MessageConfirmAck:
		m.ConfirmAck, err = DeserializeConfirmAck(header, data)
	case MessageHandshake:
		m.Handshake, err = DeserializeHandshake(header, data)
	case MessageFrontierReq:
		m.FrontierReq, err = DeserializeFrontierReq(header, data)
	case MessageFrontierResp:
		m.FrontierResp, err = DeserializeFrontierResp(header, data)
	case MessageTelemetryReq:
		m.TelemetryReq, err = DeserializeTelemetryReq(header, data)
	case MessageTelemetryAck:
		m.TelemetryAck, err = DeserializeTelemetryAck(header, data)
	default:
		return m, ErrInvalidPayload
	}
	return m, err
}

// Encode serializes the variant of m named by m.Type.
func (m Message) Encode() []byte {
	switch m.Type {
	case MessageKeepalive:
		return m.Keepalive.Serialize()
	case MessagePublish:
		return m.Publish.Serialize()
	case MessageConfirmReq:
		return m.ConfirmReq.Serialize()
	case MessageConfirmAck:
		return m.ConfirmAck.Serialize()
	case MessageHandshake:
		return m.Handshake.Serialize()
	case MessageFrontierReq:
		return m.FrontierReq.Serialize()
	case MessageFrontierResp:
		return m.FrontierResp.Serialize()
	case MessageTelemetryReq:
		return m.TelemetryReq.Serialize()
	case MessageTelemetryAck:
		return m.TelemetryAck.Serialize()
	default:
		return nil
	}
}
