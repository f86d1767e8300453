// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"errors"

	"github.com/blocklattice/ledgerd/addresses"
	"github.com/blocklattice/ledgerd/crypto"
)

// Hash is a block hash, re-exported from crypto so callers rarely
// need to import both packages.
type Hash = crypto.Hash

// BlockType selects which of the five block variants a payload
// carries. The numeric values match the 4-bit block-type field wire
// headers embed in their extensions bitfield.
type BlockType uint8

const (
	BlockTypeInvalid BlockType = iota
	BlockTypeNotABlock
	BlockTypeSend
	BlockTypeReceive
	BlockTypeOpen
	BlockTypeChange
	BlockTypeState
)

// Wire sizes for each block variant's fixed-width serialized form,
// exported so the wire package's per-message Len(header) can select
// the right payload length from the header's block-type bits without
// constructing a throwaway block value.
const (
	OpenBlockSize    = 32 + 32 + 32 + crypto.SignatureSize + 8
	SendBlockSize    = 32 + 32 + RaiSize + crypto.SignatureSize + 8
	ReceiveBlockSize = 32 + 32 + crypto.SignatureSize + 8
	ChangeBlockSize  = 32 + 32 + crypto.SignatureSize + 8
	StateBlockSize   = 32*4 + RaiSize + crypto.SignatureSize + 8
)

// stateDomainSeparator is prepended to a State block's preimage so its
// hash space can never collide with a legacy variant's.
var stateDomainSeparator = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// ErrInvalidPayload is returned when a serialized block does not
// decode to its expected fixed width.
var ErrInvalidPayload = errors.New("ledger: invalid block payload")

// Block is the common interface every variant satisfies: a canonical
// serialization, a canonical hash preimage, and the wire block type
// that selects it.
type Block interface {
	Type() BlockType
	Hash() Hash
	Serialize() []byte
	Signature() [crypto.SignatureSize]byte
	Work() uint64
}

// blockCommon holds the two fields every variant carries but none of
// them contribute to the hash: the signature and the proof-of-work
// nonce. Neither is validated by this core.
type blockCommon struct {
	signature [crypto.SignatureSize]byte
	work      uint64
}

func (c blockCommon) Signature() [crypto.SignatureSize]byte { return c.signature }
func (c blockCommon) Work() uint64                          { return c.work }

// OpenBlock is the first block on an account's chain. It has no
// previous field: account, source and representative are its entire
// identity.
type OpenBlock struct {
	blockCommon
	Account        addresses.Account
	Source         Hash
	Representative addresses.Account
}

func (b *OpenBlock) Type() BlockType { return BlockTypeOpen }

func (b *OpenBlock) Hash() Hash {
	return crypto.BlockHash(b.Account[:], b.Source[:], b.Representative[:])
}

func (b *OpenBlock) Serialize() []byte {
	out := make([]byte, 0, 32+32+32+crypto.SignatureSize+8)
	out = append(out, b.Account[:]...)
	out = append(out, b.Source[:]...)
	out = append(out, b.Representative[:]...)
	out = append(out, b.signature[:]...)
	out = appendWork(out, b.work)
	return out
}

// DeserializeOpenBlock is the inverse of OpenBlock.Serialize.
func DeserializeOpenBlock(data []byte) (*OpenBlock, error) {
	const size = OpenBlockSize
	if len(data) != size {
		return nil, ErrInvalidPayload
	}
	b := &OpenBlock{}
	off := 0
	copy(b.Account[:], data[off:off+32])
	off += 32
	copy(b.Source[:], data[off:off+32])
	off += 32
	copy(b.Representative[:], data[off:off+32])
	off += 32
	copy(b.signature[:], data[off:off+crypto.SignatureSize])
	off += crypto.SignatureSize
	b.work = binary.LittleEndian.Uint64(data[off:])
	return b, nil
}

// SendBlock debits the producing account's chain and credits
// Destination with the difference between the previous block's
// balance and Balance.
type SendBlock struct {
	blockCommon
	Previous    Hash
	Destination addresses.Account
	Balance     Rai
}

func (b *SendBlock) Type() BlockType { return BlockTypeSend }

func (b *SendBlock) Hash() Hash {
	return crypto.BlockHash(b.Previous[:], b.Destination[:], b.Balance[:])
}

func (b *SendBlock) Serialize() []byte {
	out := make([]byte, 0, 32+32+RaiSize+crypto.SignatureSize+8)
	out = append(out, b.Previous[:]...)
	out = append(out, b.Destination[:]...)
	out = append(out, b.Balance[:]...)
	out = append(out, b.signature[:]...)
	out = appendWork(out, b.work)
	return out
}

// DeserializeSendBlock is the inverse of SendBlock.Serialize.
func DeserializeSendBlock(data []byte) (*SendBlock, error) {
	const size = SendBlockSize
	if len(data) != size {
		return nil, ErrInvalidPayload
	}
	b := &SendBlock{}
	off := 0
	copy(b.Previous[:], data[off:off+32])
	off += 32
	copy(b.Destination[:], data[off:off+32])
	off += 32
	copy(b.Balance[:], data[off:off+RaiSize])
	off += RaiSize
	copy(b.signature[:], data[off:off+crypto.SignatureSize])
	off += crypto.SignatureSize
	b.work = binary.LittleEndian.Uint64(data[off:])
	return b, nil
}

// ReceiveBlock claims the amount sent by Source into the chain it
// extends.
type ReceiveBlock struct {
	blockCommon
	Previous Hash
	Source   Hash
}

func (b *ReceiveBlock) Type() BlockType { return BlockTypeReceive }

func (b *ReceiveBlock) Hash() Hash {
	return crypto.BlockHash(b.Previous[:], b.Source[:])
}

func (b *ReceiveBlock) Serialize() []byte {
	out := make([]byte, 0, 32+32+crypto.SignatureSize+8)
	out = append(out, b.Previous[:]...)
	out = append(out, b.Source[:]...)
	out = append(out, b.signature[:]...)
	out = appendWork(out, b.work)
	return out
}

// DeserializeReceiveBlock is the inverse of ReceiveBlock.Serialize.
func DeserializeReceiveBlock(data []byte) (*ReceiveBlock, error) {
	const size = ReceiveBlockSize
	if len(data) != size {
		return nil, ErrInvalidPayload
	}
	b := &ReceiveBlock{}
	off := 0
	copy(b.Previous[:], data[off:off+32])
	off += 32
	copy(b.Source[:], data[off:off+32])
	off += 32
	copy(b.signature[:], data[off:off+crypto.SignatureSize])
	off += crypto.SignatureSize
	b.work = binary.LittleEndian.Uint64(data[off:])
	return b, nil
}

// ChangeBlock reassigns the producing account's representative
// without moving balance.
type ChangeBlock struct {
	blockCommon
	Previous       Hash
	Representative addresses.Account
}

func (b *ChangeBlock) Type() BlockType { return BlockTypeChange }

func (b *ChangeBlock) Hash() Hash {
	return crypto.BlockHash(b.Previous[:], b.Representative[:])
}

func (b *ChangeBlock) Serialize() []byte {
	out := make([]byte, 0, 32+32+crypto.SignatureSize+8)
	out = append(out, b.Previous[:]...)
	out = append(out, b.Representative[:]...)
	out = append(out, b.signature[:]...)
	out = appendWork(out, b.work)
	return out
}

// DeserializeChangeBlock is the inverse of ChangeBlock.Serialize.
func DeserializeChangeBlock(data []byte) (*ChangeBlock, error) {
	const size = ChangeBlockSize
	if len(data) != size {
		return nil, ErrInvalidPayload
	}
	b := &ChangeBlock{}
	off := 0
	copy(b.Previous[:], data[off:off+32])
	off += 32
	copy(b.Representative[:], data[off:off+32])
	off += 32
	copy(b.signature[:], data[off:off+crypto.SignatureSize])
	off += crypto.SignatureSize
	b.work = binary.LittleEndian.Uint64(data[off:])
	return b, nil
}

// StateBlock is the unified, self-describing variant: it is the only
// one that carries its own account, and Link takes on the role of
// Source, Destination or Representative depending on what the block
// is doing.
type StateBlock struct {
	blockCommon
	Account        addresses.Account
	Previous       Hash
	Representative addresses.Account
	Balance        Rai
	Link           [32]byte
}

func (b *StateBlock) Type() BlockType { return BlockTypeState }

func (b *StateBlock) Hash() Hash {
	return crypto.BlockHash(stateDomainSeparator[:], b.Account[:], b.Previous[:],
		b.Representative[:], b.Balance[:], b.Link[:])
}

func (b *StateBlock) Serialize() []byte {
	out := make([]byte, 0, 32*4+RaiSize+crypto.SignatureSize+8)
	out = append(out, b.Account[:]...)
	out = append(out, b.Previous[:]...)
	out = append(out, b.Representative[:]...)
	out = append(out, b.Balance[:]...)
	out = append(out, b.Link[:]...)
	out = append(out, b.signature[:]...)
	out = appendWork(out, b.work)
	return out
}

// DeserializeStateBlock is the inverse of StateBlock.Serialize.
func DeserializeStateBlock(data []byte) (*StateBlock, error) {
	const size = StateBlockSize
	if len(data) != size {
		return nil, ErrInvalidPayload
	}
	b := &StateBlock{}
	off := 0
	copy(b.Account[:], data[off:off+32])
	off += 32
	copy(b.Previous[:], data[off:off+32])
	off += 32
	copy(b.Representative[:], data[off:off+32])
	off += 32
	copy(b.Balance[:], data[off:off+RaiSize])
	off += RaiSize
	copy(b.Link[:], data[off:off+32])
	off += 32
	copy(b.signature[:], data[off:off+crypto.SignatureSize])
	off += crypto.SignatureSize
	b.work = binary.LittleEndian.Uint64(data[off:])
	return b, nil
}

func appendWork(out []byte, work uint64) []byte {
	var w [8]byte
	binary.LittleEndian.PutUint64(w[:], work)
	return append(out, w[:]...)
}

// Previous returns the block's previous-block hash, or the zero hash
// for an Open block, which has none.
func Previous(b Block) Hash {
	switch v := b.(type) {
	case *OpenBlock:
		return Hash{}
	case *SendBlock:
		return v.Previous
	case *ReceiveBlock:
		return v.Previous
	case *ChangeBlock:
		return v.Previous
	case *StateBlock:
		return v.Previous
	default:
		return Hash{}
	}
}

// FullBlock pairs a block variant with the facts its wire form
// doesn't carry directly: which account produced it, which
// representative is in effect after it, and the balance it leaves
// that account with. Open and State blocks carry account and
// representative inline; Send and Receive inherit both from the
// previous block in the chain, and Change inherits only the account,
// carrying its new representative inline. Balance is never on the wire for
// Open, Receive or Change; all three are resolved at admission time.
type FullBlock struct {
	Block          Block
	Hash           Hash
	Account        addresses.Account
	Representative addresses.Account
	Balance        Rai
}
