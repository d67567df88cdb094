// Package randid generates random identifiers.
//
// Besides cryptographically random hex strings, the package maintains a
// private pseudo-random source that is fully isolated from the process-wide
// generator: hosts that seed math/rand deterministically for their own
// purposes cannot make identifiers drawn here predictable, and drawing an
// identifier never disturbs the host's sequence. The source is acquired
// through a structured scope that guarantees release on every exit path.
package randid

import (
	crand "crypto/rand"
	"encoding/hex"
	"math/rand/v2"
	"strconv"
	"sync"
)

// RandHex returns a random hexadecimal string carrying n bytes of entropy.
// The length in characters is 2n.
func RandHex(n int) string {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		panic("randid: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// PrivateInt returns the decimal representation of a random integer in
// [min, max], drawn from the private source. Panics if min > max.
func PrivateInt(min, max int) string {
	if min > max {
		panic("randid: PrivateInt with min > max")
	}
	var s string
	withPrivate(func(r *rand.Rand) {
		s = strconv.Itoa(min + r.IntN(max-min+1))
	})
	return s
}

var private struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// withPrivate runs f with exclusive access to the private source, releasing
// it on every exit path, including a panicking f. The source is seeded once,
// from crypto/rand, the first time it is acquired.
func withPrivate(f func(*rand.Rand)) {
	private.mu.Lock()
	defer private.mu.Unlock()
	if private.rng == nil {
		var seed [32]byte
		if _, err := crand.Read(seed[:]); err != nil {
			panic("randid: " + err.Error())
		}
		private.rng = rand.New(rand.NewChaCha8(seed))
	}
	f(private.rng)
}
