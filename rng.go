package uuid

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20"
)

// SeedSize is the size in bytes of an Rng seed
const SeedSize = chacha20.KeySize

// Rng is a reusable random byte source built on the ChaCha20 keystream.
// It amortizes entropy seeding across many generated UUIDs: a fresh Rng
// is seeded exactly once from crypto/rand, after which generation does
// not touch the OS entropy pool.
//
// An Rng is ordinary owned mutable state. It is not safe for concurrent
// use without external synchronization; give each goroutine its own, or
// use the package-level generators which lock internally.
type Rng struct {
	cipher *chacha20.Cipher
}

// NewRng creates an Rng seeded once from crypto/rand
func NewRng() (*Rng, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
		return nil, err
	}
	return NewRngFromSeed(seed), nil
}

// NewRngFromSeed creates an Rng with a caller-provided seed, producing a
// deterministic byte stream. This is intended for reproducible test
// vectors; a poorly chosen seed yields UUIDs that are neither random nor
// unique.
func NewRngFromSeed(seed [SeedSize]byte) *Rng {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// key and nonce sizes are fixed at compile time
		panic(err)
	}
	return &Rng{cipher: c}
}

// Read fills p with random bytes from the keystream. It implements
// io.Reader so an Rng can be plugged into the stateful generators as
// their random source. It never returns an error.
func (r *Rng) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
