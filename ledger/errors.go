// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import "errors"

var (
	// ErrInvalidSuccession is returned when a non-Open block's
	// Previous does not match the account's current frontier.
	ErrInvalidSuccession = errors.New("ledger: previous does not match account frontier")

	// ErrDuplicateOpen is returned when an account already has an
	// Open block and a second one is admitted.
	ErrDuplicateOpen = errors.New("ledger: account already has an open block")

	// ErrUnderflowOnSend is returned when a Send's balance exceeds the
	// previous block's balance.
	ErrUnderflowOnSend = errors.New("ledger: send balance exceeds previous balance")

	// ErrBlockNotFound is returned by Store.GetBlock for an unknown hash.
	ErrBlockNotFound = errors.New("ledger: block not found")

	// ErrAccountNotFound is returned by Store.LatestBlock for an
	// account with no blocks.
	ErrAccountNotFound = errors.New("ledger: account has no blocks")
)
