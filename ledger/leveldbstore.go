// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/blocklattice/ledgerd/addresses"
	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBStore is a disk-backed Store, the persistent counterpart to
// MemStore. Keys are namespaced by a one-byte prefix per logical map;
// leveldb's own write path serializes concurrent callers, so no
// additional locking is layered on top here.
type LevelDBStore struct {
	db *leveldb.DB
}

const (
	prefixLatest = 'L'
	prefixBlock  = 'B'
	prefixRep    = 'R'
)

// OpenLevelDBStore opens (creating if absent) a leveldb database at
// path as a Store.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

func accountKey(prefix byte, account addresses.Account) []byte {
	key := make([]byte, 1+len(account))
	key[0] = prefix
	copy(key[1:], account[:])
	return key
}

func hashKey(prefix byte, hash Hash) []byte {
	key := make([]byte, 1+len(hash))
	key[0] = prefix
	copy(key[1:], hash[:])
	return key
}

func (s *LevelDBStore) LatestBlock(account addresses.Account) (Hash, error) {
	var h Hash
	v, err := s.db.Get(accountKey(prefixLatest, account), nil)
	if err == leveldb.ErrNotFound {
		return h, ErrAccountNotFound
	}
	if err != nil {
		return h, err
	}
	copy(h[:], v)
	return h, nil
}

func (s *LevelDBStore) SetLatest(account addresses.Account, hash Hash) error {
	return s.db.Put(accountKey(prefixLatest, account), hash[:], nil)
}

func (s *LevelDBStore) RepresentativeOf(account addresses.Account) (addresses.Account, error) {
	var rep addresses.Account
	v, err := s.db.Get(accountKey(prefixRep, account), nil)
	if err == leveldb.ErrNotFound {
		return rep, ErrAccountNotFound
	}
	if err != nil {
		return rep, err
	}
	copy(rep[:], v)
	return rep, nil
}

func (s *LevelDBStore) SetRepresentative(account, rep addresses.Account) error {
	return s.db.Put(accountKey(prefixRep, account), rep[:], nil)
}

func (s *LevelDBStore) AccountBalance(account addresses.Account) (Rai, error) {
	head, err := s.LatestBlock(account)
	if err != nil {
		return Rai{}, err
	}
	fb, err := s.GetBlock(head)
	if err != nil {
		return Rai{}, err
	}
	return fb.Balance, nil
}

func (s *LevelDBStore) GetBlock(hash Hash) (*FullBlock, error) {
	v, err := s.db.Get(hashKey(prefixBlock, hash), nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeFullBlock(hash, v)
}

func (s *LevelDBStore) PutBlock(fb *FullBlock) error {
	return s.db.Put(hashKey(prefixBlock, fb.Hash), encodeFullBlock(fb), nil)
}

// encodeFullBlock and decodeFullBlock are the leveldb persistence
// format: [1-byte BlockType][32-byte account][32-byte representative]
// [16-byte balance][4-byte little-endian body length][body], where
// body is the variant's own Serialize() output.
func encodeFullBlock(fb *FullBlock) []byte {
	body := fb.Block.Serialize()
	out := make([]byte, 0, 1+32+32+RaiSize+4+len(body))
	out = append(out, byte(fb.Block.Type()))
	out = append(out, fb.Account[:]...)
	out = append(out, fb.Representative[:]...)
	out = append(out, fb.Balance[:]...)
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(body)))
	out = append(out, l[:]...)
	out = append(out, body...)
	return out
}

func decodeFullBlock(hash Hash, data []byte) (*FullBlock, error) {
	const headerSize = 1 + 32 + 32 + RaiSize + 4
	if len(data) < headerSize {
		return nil, ErrInvalidPayload
	}
	blockType := BlockType(data[0])
	off := 1

	var fb FullBlock
	fb.Hash = hash
	copy(fb.Account[:], data[off:off+32])
	off += 32
	copy(fb.Representative[:], data[off:off+32])
	off += 32
	copy(fb.Balance[:], data[off:off+RaiSize])
	off += RaiSize
	bodyLen := binary.LittleEndian.Uint32(data[off : off+4])
	off += 4
	if uint32(len(data)-off) != bodyLen {
		return nil, ErrInvalidPayload
	}
	body := data[off:]

	var (
		block Block
		err   error
	)
	switch blockType {
	case BlockTypeOpen:
		block, err = DeserializeOpenBlock(body)
	case BlockTypeSend:
		block, err = DeserializeSendBlock(body)
	case BlockTypeReceive:
		block, err = DeserializeReceiveBlock(body)
	case BlockTypeChange:
		block, err = DeserializeChangeBlock(body)
	case BlockTypeState:
		block, err = DeserializeStateBlock(body)
	default:
		return nil, fmt.Errorf("ledger: unknown stored block type %d", blockType)
	}
	if err != nil {
		return nil, err
	}
	fb.Block = block
	return &fb, nil
}
