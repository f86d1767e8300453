// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/blocklattice/ledgerd/ledger"
)

// HashPair is one root entry in a ConfirmReq roots list or a
// ConfirmAck vote: a block hash paired with the hash of the block it
// replaces in the account's chain (the zero hash for an Open).
type HashPair struct {
	Previous ledger.Hash
	Hash     ledger.Hash
}

const hashPairSize = 32 + 32

func serializeHashPairs(pairs []HashPair) []byte {
	out := make([]byte, 0, len(pairs)*hashPairSize)
	for _, p := range pairs {
		out = append(out, p.Previous[:]...)
		out = append(out, p.Hash[:]...)
	}
	return out
}

func deserializeHashPairs(r *Reader, n int) ([]HashPair, error) {
	pairs := make([]HashPair, n)
	for i := range pairs {
		prev, err := r.ReadArray32()
		if err != nil {
			return nil, err
		}
		hash, err := r.ReadArray32()
		if err != nil {
			return nil, err
		}
		pairs[i] = HashPair{Previous: ledger.Hash(prev), Hash: ledger.Hash(hash)}
	}
	return pairs, nil
}

// ConfirmReq requests a vote either on a single block (the
// Publish-shaped case, when the header names a real block type) or on
// a list of roots (when the header's block-type bits are
// ledger.BlockTypeNotABlock). Exactly one of Block or Roots is set.
type ConfirmReq struct {
	Block ledger.Block
	Roots []HashPair
}

// Len returns ConfirmReq's wire length: a block's own fixed size in
// the single-block case, or roots-count*64 in the roots-list case.
// The roots count shares the low byte of the header's extensions with
// ConfirmAck's vote-root count.
func (ConfirmReq) Len(header *Header) (int, error) {
	if header.Extensions.BlockType() == ledger.BlockTypeNotABlock {
		return header.Extensions.ConfirmAckRootCount() * hashPairSize, nil
	}
	size := blockWireSize(header.Extensions.BlockType())
	if size < 0 {
		return 0, ErrInvalidPayload
	}
	return size, nil
}

// Serialize renders c in whichever of its two shapes is populated.
func (c ConfirmReq) Serialize() []byte {
	if c.Block != nil {
		return c.Block.Serialize()
	}
	return serializeHashPairs(c.Roots)
}

// DeserializeConfirmReq decodes data as a block or a roots list
// depending on header's block-type extension bits.
func DeserializeConfirmReq(header *Header, data []byte) (ConfirmReq, error) {
	if header.Extensions.BlockType() == ledger.BlockTypeNotABlock {
		r := NewReader(data)
		roots, err := deserializeHashPairs(r, header.Extensions.ConfirmAckRootCount())
		if err != nil {
			return ConfirmReq{}, err
		}
		return ConfirmReq{Roots: roots}, nil
	}
	block, err := deserializeBlock(header.Extensions.BlockType(), data)
	if err != nil {
		return ConfirmReq{}, err
	}
	return ConfirmReq{Block: block}, nil
}

// ConfirmAck is a vote: the voting account, its signature, a
// monotonic sequence/timestamp, and the list of roots being voted on.
type ConfirmAck struct {
	Account   [32]byte
	Signature [64]byte
	Sequence  uint64
	Roots     []HashPair
}

// Len returns ConfirmAck's wire length: the fixed 32+64+8-byte header
// plus 64 bytes per root, the root count coming from the header's
// extensions.
func (ConfirmAck) Len(header *Header) (int, error) {
	n := header.Extensions.ConfirmAckRootCount()
	return 32 + 64 + 8 + n*hashPairSize, nil
}

// Serialize renders a in its fixed-prefix-plus-roots wire form.
func (a ConfirmAck) Serialize() []byte {
	out := make([]byte, 0, 32+64+8+len(a.Roots)*hashPairSize)
	out = append(out, a.Account[:]...)
	out = append(out, a.Signature[:]...)
	var seq [8]byte
	binary.LittleEndian.PutUint64(seq[:], a.Sequence)
	out = append(out, seq[:]...)
	out = append(out, serializeHashPairs(a.Roots)...)
	return out
}

// DeserializeConfirmAck is the inverse of ConfirmAck.Serialize.
func DeserializeConfirmAck(header *Header, data []byte) (ConfirmAck, error) {
	var a ConfirmAck
	r := NewReader(data)

	account, err := r.ReadArray32()
	if err != nil {
		return a, err
	}
	a.Account = account

	sig, err := r.ReadArray64()
	if err != nil {
		return a, err
	}
	a.Signature = sig

	seq, err := r.ReadUint64LE()
	if err != nil {
		return a, err
	}
	a.Sequence = seq

	roots, err := deserializeHashPairs(r, header.Extensions.ConfirmAckRootCount())
	if err != nil {
		return a, err
	}
	a.Roots = roots
	return a, nil
}
