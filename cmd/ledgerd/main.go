// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command ledgerd is a thin construction shim: it parses a handful of
// flags, builds a Store and a genesis-seeded Ledger for the requested
// network, and drives a peer.Controller over stdin/stdout so the core
// can be exercised without a real transport. A production deployment
// supplies its own transport and calls peer.NewController directly;
// this binary exists to prove the core links together end to end.
package main

import (
	"bufio"
	"crypto/ed25519"
	"fmt"
	"io"
	"os"

	"github.com/blocklattice/ledgerd/genesis"
	"github.com/blocklattice/ledgerd/ledger"
	"github.com/blocklattice/ledgerd/peer"
	"github.com/blocklattice/ledgerd/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ledgerd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(cfg.LogDir); err != nil {
		return fmt.Errorf("initializing log rotator: %w", err)
	}
	defer logRotator.Close()
	setLogLevels(cfg.DebugLevel)

	tag, err := parseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	params, ok := genesis.ForTag(tag)
	if !ok {
		return fmt.Errorf("no genesis parameters for network %q", cfg.Network)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	l := ledger.NewLedger(store)
	if err := genesis.Seed(l, params); err != nil {
		return fmt.Errorf("seeding genesis: %w", err)
	}
	log.Infof("seeded %s genesis account %s", params.Name, params.Open.Account)

	_, nodeKey, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("generating node key: %w", err)
	}

	peerCfg := peer.Config{
		Network:            peer.NetworkParams{Tag: tag},
		Store:              store,
		NodeKey:            nodeKey,
		ValidateHandshakes: !cfg.NoHandshake,
	}

	controller, inbound, outbound := peer.NewController(peerCfg, "stdio")
	go pumpStdin(inbound)
	go pumpStdout(outbound)

	log.Infof("controller running on %s network", params.Name)
	err = controller.Run()
	if err != nil {
		log.Infof("controller exited: %v", err)
	}
	return nil
}

// pumpStdin forwards raw bytes read from stdin into the controller's
// inbound channel, closing it when stdin reaches EOF.
func pumpStdin(inbound chan<- peer.Packet) {
	defer close(inbound)
	r := bufio.NewReader(os.Stdin)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			inbound <- peer.NewPacket(chunk)
		}
		if err != nil {
			if err != io.EOF {
				log.Warnf("reading stdin: %v", err)
			}
			return
		}
	}
}

// pumpStdout writes every packet the controller sends back out to
// stdout.
func pumpStdout(outbound <-chan peer.Packet) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for pkt := range outbound {
		if _, err := w.Write(pkt.Data); err != nil {
			log.Warnf("writing stdout: %v", err)
			return
		}
		w.Flush()
	}
}

// parseNetwork maps a --network flag value to its wire.NetworkTag.
func parseNetwork(s string) (wire.NetworkTag, error) {
	switch s {
	case "live":
		return wire.Live, nil
	case "beta":
		return wire.Beta, nil
	case "test", "":
		return wire.Test, nil
	default:
		return 0, fmt.Errorf("unknown network %q (want live, beta or test)", s)
	}
}

// openStore builds the ledger.Store cfg selects: leveldb-backed under
// cfg.DataDir by default, or a MemStore when --memstore is passed.
func openStore(cfg *config) (ledger.Store, error) {
	if cfg.MemoryStore {
		return ledger.NewMemStore(), nil
	}
	return ledger.OpenLevelDBStore(cfg.DataDir)
}
