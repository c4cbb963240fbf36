package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// NewV7 packs a caller-supplied 48-bit millisecond Unix timestamp and the
// rand_a (12-bit) / rand_b (62-bit) random fields into a version 7 UUID.
// Higher bits of each input are silently discarded.
//
// For wall-clock generation with monotonicity guarantees, use Generator
// or the package-level New.
func NewV7(unixMilli uint64, randA uint16, randB uint64) UUID {
	var uuid UUID
	binary.BigEndian.PutUint64(uuid[0:8], unixMilli<<16)
	uuid[6] = 0x70 | byte(randA>>8)&0x0f
	uuid[7] = byte(randA)
	binary.BigEndian.PutUint64(uuid[8:16], randB)
	uuid[8] = 0x80 | uuid[8]&0x3f
	return uuid
}

// Generator is a thread-safe UUIDv7 generator that ensures monotonicity
// within the same millisecond by using a counter in the rand_a field.
type Generator struct {
	mu            sync.Mutex
	lastTimestamp uint64
	counter       uint16 // 12-bit counter for sub-millisecond ordering
	randReader    io.Reader
}

// NewGenerator creates a new UUIDv7 generator with crypto/rand as the random source
func NewGenerator() *Generator {
	return &Generator{
		randReader: rand.Reader,
	}
}

// NewGeneratorWithReader creates a new UUIDv7 generator with a custom random source.
// This is primarily useful for testing with deterministic random sources
// such as a seeded Rng.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{
		randReader: r,
	}
}

// New generates a new UUIDv7 with the current timestamp.
// This method is thread-safe and ensures monotonic ordering of UUIDs
// generated within the same millisecond.
func (g *Generator) New() (UUID, error) {
	return g.NewWithTime(time.Now())
}

// NewWithTime generates a new UUIDv7 with the specified timestamp.
// This method is thread-safe and ensures monotonic ordering.
func (g *Generator) NewWithTime(t time.Time) (UUID, error) {
	var uuid UUID

	// Unix timestamp in milliseconds (48 bits)
	timestamp := uint64(t.UnixMilli())

	g.mu.Lock()
	defer g.mu.Unlock()

	// Monotonicity: if the timestamp is the same or earlier, step the
	// counter; on counter overflow borrow the next millisecond.
	if timestamp <= g.lastTimestamp {
		g.counter++
		if g.counter > 0xfff {
			g.counter = 0
			timestamp = g.lastTimestamp + 1
		}
		g.lastTimestamp = timestamp
	} else {
		// New millisecond: rand_a starts from fresh random data, per
		// RFC 9562 section 6.2 method 1
		var randBytes [2]byte
		if _, err := io.ReadFull(g.randReader, randBytes[:]); err != nil {
			return uuid, err
		}
		g.counter = binary.BigEndian.Uint16(randBytes[:]) & 0xfff
		g.lastTimestamp = timestamp
	}

	// unix_ts_ms occupies bytes 0-5
	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16)

	// rand_a carries the counter, split around the version nibble
	uuid[6] = byte(g.counter >> 8)
	uuid[7] = byte(g.counter)

	// rand_b fills bytes 8-15
	if _, err := io.ReadFull(g.randReader, uuid[8:]); err != nil {
		return uuid, err
	}

	uuid.setVersion(VersionTimeSorted)
	uuid.setVariant(VariantRFC4122)

	return uuid, nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = uuid.Must(uuid.New())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by New
var defaultGenerator = NewGenerator()

// New generates a new UUIDv7 using the default generator.
// This is a convenience function that uses the package-level generator.
func New() (UUID, error) {
	return defaultGenerator.New()
}

// UnixMilli extracts the Unix timestamp in milliseconds from a UUIDv7.
// Returns 0 for any other version.
func (u UUID) UnixMilli() int64 {
	if u.Version() != VersionTimeSorted {
		return 0
	}
	// 48-bit timestamp from bytes 0-5
	timestamp := uint64(u[0])<<40 |
		uint64(u[1])<<32 |
		uint64(u[2])<<24 |
		uint64(u[3])<<16 |
		uint64(u[4])<<8 |
		uint64(u[5])
	return int64(timestamp)
}

// Time returns the timestamp as a time.Time for a UUIDv7.
// Returns the zero time for any other version.
func (u UUID) Time() time.Time {
	if u.Version() != VersionTimeSorted {
		return time.Time{}
	}
	ms := u.UnixMilli()
	return time.Unix(ms/1000, (ms%1000)*1000000)
}
