package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// gregorianEpochOffset is the count of 100-nanosecond intervals between
// the Gregorian calendar reform (1582-10-15) and the Unix epoch.
const gregorianEpochOffset = 122192928000000000

// NewV1 packs a caller-supplied 60-bit Gregorian timestamp, 14-bit clock
// sequence and 48-bit node into a version 1 UUID.
//
// The timestamp counts 100-nanosecond intervals since 1582-10-15. Only
// the low 60 bits of timestamp and the low 14 bits of clockSeq are used;
// higher bits are silently discarded. The node is typically a MAC
// address or a random substitute with the multicast bit set.
func NewV1(timestamp uint64, clockSeq uint16, node [6]byte) UUID {
	var uuid UUID
	// time_low, time_mid, time_hi with the version nibble in the top 4 bits
	binary.BigEndian.PutUint32(uuid[0:4], uint32(timestamp))
	binary.BigEndian.PutUint16(uuid[4:6], uint16(timestamp>>32))
	uuid[6] = 0x10 | byte(timestamp>>56)&0x0f
	uuid[7] = byte(timestamp >> 48)
	// clock_seq_hi with the variant in the top 2 bits, clock_seq_low
	uuid[8] = 0x80 | byte(clockSeq>>8)&0x3f
	uuid[9] = byte(clockSeq)
	copy(uuid[10:], node[:])
	return uuid
}

// NewV6 packs the same inputs as NewV1 into a version 6 UUID.
//
// Version 6 is field-compatible with version 1 but stores the timestamp
// high bits first, so lexicographic byte order matches chronological
// order (better B-tree locality for database keys).
func NewV6(timestamp uint64, clockSeq uint16, node [6]byte) UUID {
	var uuid UUID
	binary.BigEndian.PutUint32(uuid[0:4], uint32(timestamp>>28))
	binary.BigEndian.PutUint16(uuid[4:6], uint16(timestamp>>12))
	uuid[6] = 0x60 | byte(timestamp>>8)&0x0f
	uuid[7] = byte(timestamp)
	uuid[8] = 0x80 | byte(clockSeq>>8)&0x3f
	uuid[9] = byte(clockSeq)
	copy(uuid[10:], node[:])
	return uuid
}

// TimeGenerator is a thread-safe generator for version 1 and version 6
// UUIDs driven by the wall clock. It holds a random 14-bit clock sequence
// that is incremented whenever the clock does not move forward between
// calls, and a 48-bit node identifier.
type TimeGenerator struct {
	mu         sync.Mutex
	lastTime   uint64 // 100ns Gregorian intervals
	clockSeq   uint16
	node       [6]byte
	randReader io.Reader
}

// NewTimeGenerator creates a TimeGenerator with a random clock sequence
// and a random node identifier, using crypto/rand as the random source.
// The multicast bit of the random node is set so it can never collide
// with a real MAC address, per RFC 4122 section 4.5.
func NewTimeGenerator() (*TimeGenerator, error) {
	return NewTimeGeneratorWithReader(rand.Reader)
}

// NewTimeGeneratorWithReader creates a TimeGenerator with a custom random
// source. This is primarily useful for testing with deterministic sources
// such as a seeded Rng.
func NewTimeGeneratorWithReader(r io.Reader) (*TimeGenerator, error) {
	g := &TimeGenerator{randReader: r}

	var seed [8]byte
	if _, err := io.ReadFull(g.randReader, seed[:]); err != nil {
		return nil, err
	}
	g.clockSeq = binary.BigEndian.Uint16(seed[0:2]) & 0x3fff
	copy(g.node[:], seed[2:8])
	g.node[0] |= 0x01 // multicast bit marks a non-MAC node
	return g, nil
}

// SetNodeID replaces the node identifier, e.g. with a real MAC address or
// an externally coordinated worker ID.
func (g *TimeGenerator) SetNodeID(node [6]byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.node = node
}

// NewV1 generates a version 1 UUID from the current time
func (g *TimeGenerator) NewV1() (UUID, error) {
	return g.NewV1WithTime(time.Now())
}

// NewV1WithTime generates a version 1 UUID from the specified time
func (g *TimeGenerator) NewV1WithTime(t time.Time) (UUID, error) {
	ts, cs, node := g.step(t)
	return NewV1(ts, cs, node), nil
}

// NewV6 generates a version 6 UUID from the current time
func (g *TimeGenerator) NewV6() (UUID, error) {
	return g.NewV6WithTime(time.Now())
}

// NewV6WithTime generates a version 6 UUID from the specified time
func (g *TimeGenerator) NewV6WithTime(t time.Time) (UUID, error) {
	ts, cs, node := g.step(t)
	return NewV6(ts, cs, node), nil
}

// step advances the generator clock. If the timestamp did not move
// forward since the last call (clock rollback, or two calls within the
// same 100ns tick), the clock sequence is incremented so the resulting
// UUIDs still differ.
func (g *TimeGenerator) step(t time.Time) (uint64, uint16, [6]byte) {
	timestamp := gregorianTime(t)

	g.mu.Lock()
	defer g.mu.Unlock()

	if timestamp <= g.lastTime {
		g.clockSeq = (g.clockSeq + 1) & 0x3fff
	}
	g.lastTime = timestamp
	return timestamp, g.clockSeq, g.node
}

// gregorianTime converts t to 100-nanosecond intervals since 1582-10-15
func gregorianTime(t time.Time) uint64 {
	return uint64(t.Unix())*10000000 + uint64(t.Nanosecond()/100) + gregorianEpochOffset
}
