// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/blocklattice/ledgerd/addresses"
	"github.com/blocklattice/ledgerd/ledger"
)

// FrontierReq asks a peer to stream its known frontiers starting from
// Start, limited to accounts modified within Age and bounded to Count
// records (0 meaning unbounded).
type FrontierReq struct {
	Start addresses.Account
	Age   uint32
	Count uint32
}

// frontierReqFixedSize is FrontierReq's wire length when the header's
// extended-parameters bit is clear.
const frontierReqFixedSize = 32 + 4 + 4

// Len returns FrontierReq's wire length. The extended-parameters bit
// is recorded on the header but this core defines no extra fields
// beyond the base request.
func (FrontierReq) Len(_ *Header) (int, error) {
	return frontierReqFixedSize, nil
}

// Serialize renders f as its fixed-width wire form.
func (f FrontierReq) Serialize() []byte {
	out := make([]byte, 0, frontierReqFixedSize)
	out = append(out, f.Start[:]...)
	var age, count [4]byte
	binary.LittleEndian.PutUint32(age[:], f.Age)
	binary.LittleEndian.PutUint32(count[:], f.Count)
	out = append(out, age[:]...)
	out = append(out, count[:]...)
	return out
}

// DeserializeFrontierReq is the inverse of FrontierReq.Serialize.
func DeserializeFrontierReq(_ *Header, data []byte) (FrontierReq, error) {
	var f FrontierReq
	r := NewReader(data)

	start, err := r.ReadArray32()
	if err != nil {
		return f, err
	}
	f.Start = addresses.Account(start)

	age, err := r.ReadUint32LE()
	if err != nil {
		return f, err
	}
	f.Age = age

	count, err := r.ReadUint32LE()
	if err != nil {
		return f, err
	}
	f.Count = count
	return f, nil
}

// FrontierResp is one record in a frontier stream: an account and the
// hash of its current frontier block. The all-zero record terminates
// the stream (see peer.Controller's FrontierStreaming state).
type FrontierResp struct {
	Account  addresses.Account
	Frontier ledger.Hash
}

const frontierRespSize = 32 + 32

// Len returns FrontierResp's fixed wire length.
func (FrontierResp) Len(_ *Header) (int, error) {
	return frontierRespSize, nil
}

// Serialize renders f as account||frontier.
func (f FrontierResp) Serialize() []byte {
	out := make([]byte, 0, frontierRespSize)
	out = append(out, f.Account[:]...)
	out = append(out, f.Frontier[:]...)
	return out
}

// DeserializeFrontierResp is the inverse of FrontierResp.Serialize.
func DeserializeFrontierResp(_ *Header, data []byte) (FrontierResp, error) {
	var f FrontierResp
	r := NewReader(data)

	account, err := r.ReadArray32()
	if err != nil {
		return f, err
	}
	f.Account = addresses.Account(account)

	frontier, err := r.ReadArray32()
	if err != nil {
		return f, err
	}
	f.Frontier = ledger.Hash(frontier)
	return f, nil
}

// IsTerminator reports whether f is the all-zero record that ends a
// frontier stream.
func (f FrontierResp) IsTerminator() bool {
	return f.Account == addresses.Account{} && f.Frontier.IsZero()
}
