// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/blocklattice/ledgerd/ledger"
	"github.com/stretchr/testify/require"
)

// TestHeaderRoundTrip builds a header (Live, Publish, extensions with
// block-type=Send), serializes, deserializes, and expects equality.
func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader(Live, MessagePublish, Extensions(0).WithBlockType(ledger.BlockTypeSend))
	got, err := DeserializeHeader(h.Serialize())
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Equal(t, ledger.BlockTypeSend, got.Extensions.BlockType())
}

func TestHeaderDeserializeRejectsBadMagic(t *testing.T) {
	h := NewHeader(Live, MessageKeepalive, 0)
	buf := h.Serialize()
	buf[0] = 'X'
	_, err := DeserializeHeader(buf)
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func TestHeaderDeserializeRejectsShortBuffer(t *testing.T) {
	_, err := DeserializeHeader([]byte{Magic, 1, 2})
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestHeaderValidateRejectsWrongNetwork(t *testing.T) {
	h := NewHeader(Test, MessageKeepalive, 0)
	require.ErrorIs(t, h.Validate(Live), ErrInvalidHeader)
	require.NoError(t, h.Validate(Test))
}

func TestExtensionsHandshakeBits(t *testing.T) {
	e := Extensions(0).WithHandshakeQuery(true).WithHandshakeResponse(false)
	require.True(t, e.HandshakeQuery())
	require.False(t, e.HandshakeResponse())

	e = e.WithHandshakeResponse(true)
	require.True(t, e.HandshakeQuery())
	require.True(t, e.HandshakeResponse())
}

func TestExtensionsConfirmAckRootCount(t *testing.T) {
	e := Extensions(0).WithConfirmAckRootCount(5).WithBlockType(ledger.BlockTypeState)
	require.Equal(t, 5, e.ConfirmAckRootCount())
	require.Equal(t, ledger.BlockTypeState, e.BlockType())
}
