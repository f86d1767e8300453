// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/blocklattice/ledgerd/peer"
	"github.com/blocklattice/ledgerd/vanity"
	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logRotator is the rotating file the backend below writes to, closed
// during shutdown by the caller of initLogRotator.
var logRotator *rotator.Rotator

// backendLog writes to both stdout and logRotator, the same split the
// btcsuite-lineage daemons use so operators see output both
// interactively and in a durable log file.
var backendLog = btclog.NewBackend(logWriter{})

var (
	log = backendLog.Logger("MAIN")

	subsystemLoggers = map[string]btclog.Logger{
		"PEER":   backendLog.Logger("PEER"),
		"LEDGER": backendLog.Logger("LDGR"),
		"VANITY": backendLog.Logger("VNTY"),
	}
)

// logWriter implements io.Writer, splitting output between stdout and
// the rotator so log lines always land on disk even when run
// non-interactively.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// initLogRotator opens (creating if necessary) the rotating log file
// under logDir, following the same construction every btcd-lineage
// daemon uses for its --logdir flag.
func initLogRotator(logDir string) error {
	r, err := rotator.New(filepath.Join(logDir, defaultLogFilename), 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevels applies level to every subsystem logger and wires each
// package's package-level logger through its own UseLogger.
func setLogLevels(levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		level = btclog.LevelInfo
	}
	for _, l := range subsystemLoggers {
		l.SetLevel(level)
	}

	peer.UseLogger(subsystemLoggers["PEER"])
	vanity.UseLogger(subsystemLoggers["VANITY"])

	// ledger has no package-level logger today; LEDGER is reserved for
	// when admission-rejection logging grows beyond what peer already
	// reports via its own handlePublish debug line.
}
