// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/blocklattice/ledgerd/addresses"
)

// MemStore is an in-memory Store, guarded by a single mutex since it
// is shared across controllers. Finer-grained locking is future work.
type MemStore struct {
	mu     sync.Mutex
	heads  map[addresses.Account]Hash
	reps   map[addresses.Account]addresses.Account
	blocks map[Hash]*FullBlock
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		heads:  make(map[addresses.Account]Hash),
		reps:   make(map[addresses.Account]addresses.Account),
		blocks: make(map[Hash]*FullBlock),
	}
}

func (s *MemStore) LatestBlock(account addresses.Account) (Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.heads[account]
	if !ok {
		return Hash{}, ErrAccountNotFound
	}
	return h, nil
}

func (s *MemStore) SetLatest(account addresses.Account, hash Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heads[account] = hash
	return nil
}

func (s *MemStore) GetBlock(hash Hash) (*FullBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fb, ok := s.blocks[hash]
	if !ok {
		return nil, ErrBlockNotFound
	}
	return fb, nil
}

func (s *MemStore) PutBlock(fb *FullBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[fb.Hash] = fb
	return nil
}

func (s *MemStore) RepresentativeOf(account addresses.Account) (addresses.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rep, ok := s.reps[account]
	if !ok {
		return addresses.Account{}, ErrAccountNotFound
	}
	return rep, nil
}

func (s *MemStore) SetRepresentative(account, rep addresses.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reps[account] = rep
	return nil
}

func (s *MemStore) AccountBalance(account addresses.Account) (Rai, error) {
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
