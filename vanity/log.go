// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vanity implements a worker pool that generates random
// secrets (seeds, private keys, or BIP39 phrases) until one derives an
// account address matching a caller-supplied pattern.
package vanity

import "github.com/btcsuite/btclog"

// log is a logger that is initialized with no output filters.  This
// means the package will not perform any logging by default until the
// caller requests it.
var log btclog.Logger

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// DisableLog disables all library log output.  Logging output is
// disabled by default until UseLogger is called.
func DisableLog() {
	log = btclog.Disabled
}

func init() {
	DisableLog()
}
