// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vanity

import (
	"context"
	"crypto/ed25519"
	"runtime"

	"github.com/blocklattice/ledgerd/addresses"
)

// addressPrefix is the network prefix every rendered account address
// starts with, used to locate the body a StartsWith/StartOrEnd
// pattern is tested against.
const addressPrefix = addresses.Prefix

// SecretKind selects which kind of secret a worker generates.
type SecretKind int

const (
	// SecretSeed generates a random 32-byte seed and derives account 0.
	SecretSeed SecretKind = iota
	// SecretPrivate generates a random Ed25519 private key directly.
	SecretPrivate
	// SecretPhrase generates a random BIP39 mnemonic of Words words and
	// derives the seed and account 0 from it.
	SecretPhrase
)

// SecretType configures what a worker generates each round.
type SecretType struct {
	Kind SecretKind

	// Words is the BIP39 word count (12, 15, 18, 21 or 24), used only
	// when Kind is SecretPhrase.
	Words int
}

// Secret is the generated key material behind a Result's address,
// exactly one field populated depending on the SecretType that
// produced it.
type Secret struct {
	Seed    *addresses.Seed
	Private ed25519.PrivateKey
	Phrase  string
}

// Result pairs a generated Secret with the account address it derives to.
type Result struct {
	Secret  Secret
	Account addresses.Account
}

// checkCount bounds how many attempts a worker makes before polling
// ctx for cancellation; a larger value trades slower shutdown for less
// overhead spent checking ctx.Err() between attempts.
const checkCount = 10000

// Config parameterizes a vanity search: what to generate, what
// pattern to look for, and how many workers to run (0 meaning
// runtime.NumCPU()).
type Config struct {
	SecretType SecretType
	Match      Match
	Workers    int
}

// Start launches Config.Workers goroutines (or runtime.NumCPU() if
// zero) generating secrets and testing them against Config.Match,
// returning a channel of hits. The channel closes once every worker
// has exited following ctx's cancellation.
func Start(ctx context.Context, cfg Config) <-chan Result {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan Result)
	out := make(chan Result, 10)

	updateAttempts := make(chan uint64)
	monitorQuit := make(chan struct{})
	go speedMonitor(monitorQuit, updateAttempts)

	done := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		go func() {
			worker(ctx, cfg, results, updateAttempts)
			done <- struct{}{}
		}()
	}

	go func() {
		defer close(out)
		defer close(monitorQuit)
		exited := 0
		for exited < workers {
			select {
			case r := <-results:
				select {
				case out <- r:
				case <-ctx.Done():
				}
			case <-done:
				exited++
			}
		}
	}()

	return out
}

// worker runs single attempts in a loop, polling ctx for cancellation
// every checkCount iterations, forwarding every hit to results and
// flushing its attempt count to the speed monitor between batches.
func worker(ctx context.Context, cfg Config, results chan<- Result, updateAttempts chan<- uint64) {
	for {
		select {
		case <-ctx.Done():
			if log != nil {
				log.Debugf("vanity worker exiting: %v", ctx.Err())
			}
			return
		default:
		}

		for i := 0; i < checkCount; i++ {
			result, err := singleAttempt(cfg.SecretType)
			if err != nil {
				if log != nil {
					log.Errorf("vanity worker: generating secret: %v", err)
				}
				continue
			}
			if !cfg.Match.matches(result.Account.String()) {
				continue
			}
			select {
			case results <- result:
			case <-ctx.Done():
				return
			}
		}

		select {
		case updateAttempts <- uint64(checkCount):
		case <-ctx.Done():
			return
		}
	}
}

// singleAttempt generates one secret of the given type and derives its
// account address.
func singleAttempt(st SecretType) (Result, error) {
	switch st.Kind {
	case SecretPrivate:
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return Result{}, err
		}
		var account addresses.Account
		copy(account[:], pub)
		return Result{Secret: Secret{Private: priv}, Account: account}, nil

	case SecretPhrase:
		words := st.Words
		if words == 0 {
			words = 24
		}
		mnemonic, err := addresses.NewMnemonic(words)
		if err != nil {
			return Result{}, err
		}
		seed, err := addresses.SeedFromMnemonic(mnemonic, "")
		if err != nil {
			return Result{}, err
		}
		return Result{Secret: Secret{Phrase: mnemonic}, Account: seed.AccountAt(0)}, nil

	default: // SecretSeed
		seed, err := addresses.NewSeed()
		if err != nil {
			return Result{}, err
		}
		return Result{Secret: Secret{Seed: &seed}, Account: seed.AccountAt(0)}, nil
	}
}

// Collect runs Start and gathers exactly limit results, canceling the
// search once that many have arrived.
func Collect(ctx context.Context, cfg Config, limit int) ([]Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := Start(ctx, cfg)
	collected := make([]Result, 0, limit)
	for len(collected) < limit {
		select {
		case r, ok := <-out:
			if !ok {
				return collected, nil
			}
			collected = append(collected, r)
		case <-ctx.Done():
			return collected, ctx.Err()
		}
	}
	return collected, nil
}
