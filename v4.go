package uuid

import (
	"crypto/rand"
	"io"
)

// NewV4 generates a version 4 (random) UUID: all 16 bytes are filled from
// crypto/rand, then the version and RFC variant bits are set.
//
// Each call reads the OS entropy source. When generating a lot of UUIDs
// very quickly, prefer NewV4From with a reusable Rng.
func NewV4() (UUID, error) {
	var uuid UUID
	if _, err := io.ReadFull(rand.Reader, uuid[:]); err != nil {
		return uuid, err
	}
	uuid.setVersion(VersionRandom)
	uuid.setVariant(VariantRFC4122)
	return uuid, nil
}

// NewV4From generates a version 4 UUID from the provided Rng, avoiding a
// trip to the OS entropy source per call. The Rng keystream cannot fail,
// so neither can this.
func NewV4From(rng *Rng) UUID {
	var uuid UUID
	rng.Read(uuid[:])
	uuid.setVersion(VersionRandom)
	uuid.setVariant(VariantRFC4122)
	return uuid
}
