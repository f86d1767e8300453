// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/blocklattice/ledgerd/ledger"

// Publish carries one block, whose variant is selected by the
// header's block-type extension bits rather than by any tag in the
// payload itself.
type Publish struct {
	Block ledger.Block
}

// blockWireSize returns the fixed serialized size of the block
// variant bt selects, or -1 if bt does not name a block variant.
func blockWireSize(bt ledger.BlockType) int {
	switch bt {
	case ledger.BlockTypeOpen:
		return ledger.OpenBlockSize
	case ledger.BlockTypeSend:
		return ledger.SendBlockSize
	case ledger.BlockTypeReceive:
		return ledger.ReceiveBlockSize
	case ledger.BlockTypeChange:
		return ledger.ChangeBlockSize
	case ledger.BlockTypeState:
		return ledger.StateBlockSize
	default:
		return -1
	}
}

// Len returns the wire length of the block named by header's
// block-type extension bits. header must be non-nil: Publish's length
// cannot be known without it.
func (Publish) Len(header *Header) (int, error) {
	size := blockWireSize(header.Extensions.BlockType())
	if size < 0 {
		return 0, ErrInvalidPayload
	}
	return size, nil
}

// Serialize renders p's block in its variant's own canonical form.
func (p Publish) Serialize() []byte {
	return p.Block.Serialize()
}

// DeserializePublish decodes data as the block variant named by
// header's block-type extension bits.
func DeserializePublish(header *Header, data []byte) (Publish, error) {
	block, err := deserializeBlock(header.Extensions.BlockType(), data)
	if err != nil {
		return Publish{}, err
	}
	return Publish{Block: block}, nil
}

func deserializeBlock(bt ledger.BlockType, data []byte) (ledger.Block, error) {
	switch bt {
	case ledger.BlockTypeOpen:
		return ledger.DeserializeOpenBlock(data)
	case ledger.BlockTypeSend:
		return ledger.DeserializeSendBlock(data)
	case ledger.BlockTypeReceive:
		return ledger.DeserializeReceiveBlock(data)
	case ledger.BlockTypeChange:
		return ledger.DeserializeChangeBlock(data)
	case ledger.BlockTypeState:
		return ledger.DeserializeStateBlock(data)
	default:
		return nil, ErrInvalidPayload
	}
}
