// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "ledgerd.conf"
	defaultLogFilename    = "ledgerd.log"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
)

var (
	defaultHomeDir    = appDataDir("ledgerd")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(defaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(defaultHomeDir, "logs")
)

// config holds ledgerd's runtime configuration, parsed from the
// command line only; the core it wires (peer.Config, ledger.Store)
// takes no flags of its own.
type config struct {
	HomeDir     string `short:"A" long:"appdata" description:"Directory to store data"`
	DataDir     string `long:"datadir" description:"Directory to store the leveldb account store"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	Network     string `long:"network" description:"Network to connect to (live, beta, test)" default:"test"`
	Peer        string `long:"peer" description:"host:port of a peer (accepted but unused: the controller speaks over stdin/stdout)"`
	Listen      string `long:"listen" description:"Address to listen for inbound peers on (accepted but unused: the controller speaks over stdin/stdout)"`
	MemoryStore bool   `long:"memstore" description:"Use an in-memory account store instead of leveldb"`
	NoHandshake bool   `long:"no-validate-handshakes" description:"Skip handshake signature verification (replay/debug use)"`
	DebugLevel  string `long:"debuglevel" description:"Logging level for all subsystems" default:"info"`
}

// loadConfig parses command-line flags into a config with ledgerd's
// defaults pre-filled, the same two-step "defaults struct then
// flags.Parse" idiom btcd-lineage daemons use.
func loadConfig() (*config, []string, error) {
	cfg := config{
		HomeDir:    defaultHomeDir,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	for _, dir := range []string{cfg.HomeDir, cfg.DataDir, cfg.LogDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	return &cfg, remainingArgs, nil
}

// appDataDir mirrors btcutil.AppDataDir's layout without pulling in
// the rest of btcutil for one helper: ~/.ledgerd on Unix-likes,
// %LOCALAPPDATA%\ledgerd on Windows.
func appDataDir(name string) string {
	if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
		return filepath.Join(appData, name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+name)
	}
	return filepath.Join(home, "."+name)
}
