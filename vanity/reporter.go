// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vanity

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// rateUpdateSecs is the minimum number of seconds between rate lines
// emitted by the speed monitor.
const rateUpdateSecs = 1

// speedMonitor tracks the number of generation attempts the workers
// have made and logs the overall rate, at most once per rateUpdateSecs.
// Workers flush their local counts through updateAttempts in batches so
// the monitor is not a per-attempt synchronization point.
func speedMonitor(done <-chan struct{}, updateAttempts <-chan uint64) {
	var total uint64
	start := time.Now()

	ticker := time.NewTicker(time.Second * rateUpdateSecs)
	defer ticker.Stop()

	for {
		select {
		case n := <-updateAttempts:
			total += n

		case <-ticker.C:
			elapsed := time.Since(start).Seconds()
			if total == 0 || elapsed <= 0 {
				continue
			}
			log.Infof("Attempt speed: %.0f addresses/s (%d total)",
				float64(total)/elapsed, total)

		case <-done:
			return
		}
	}
}

// String renders the populated field of the secret as text: hex for a
// seed or private key, the phrase itself for a mnemonic.
func (s Secret) String() string {
	switch {
	case s.Seed != nil:
		return hex.EncodeToString(s.Seed[:])
	case s.Private != nil:
		return hex.EncodeToString(s.Private.Seed())
	default:
		return s.Phrase
	}
}

// Report consumes results until the channel closes, writing one
// "secret address" line per match to w, and returns everything it saw.
// Pair it with Start: the workers produce, Report consumes, and the
// speed monitor inside Start emits the periodic rate line.
func Report(w io.Writer, results <-chan Result) ([]Result, error) {
	var seen []Result
	for r := range results {
		if _, err := fmt.Fprintf(w, "%s %s\n", r.Secret, r.Account); err != nil {
			return seen, err
		}
		seen = append(seen, r)
	}
	return seen, nil
}
