package uuid

// Mixed-endian support.
//
// Some legacy systems (most prominently Microsoft GUID producers) store
// the three timestamp-related fields little-endian while the rest of the
// UUID remains big-endian. Conversions are explicit, named operations;
// the in-memory form of a UUID is always big-endian.

// swapEndian reverses byte order within time_low (bytes 0-3),
// time_mid (bytes 4-5) and time_hi_and_version (bytes 6-7).
// The clock sequence and node bytes are untouched.
// Applying it twice is the identity.
func (u UUID) swapEndian() UUID {
	u[0], u[1], u[2], u[3] = u[3], u[2], u[1], u[0]
	u[4], u[5] = u[5], u[4]
	u[6], u[7] = u[7], u[6]
	return u
}

// FromBytesME creates a UUID from mixed-endian bytes.
// The resulting UUID is stored in-memory as big-endian.
func FromBytesME(b []byte) (UUID, error) {
	uuid, err := FromBytes(b)
	if err != nil {
		return uuid, err
	}
	return uuid.swapEndian(), nil
}

// BytesME returns the UUID as mixed-endian bytes.
// See FromBytesME for details.
func (u UUID) BytesME() []byte {
	return u.swapEndian().Bytes()
}

// ParseME parses a UUID whose string form was produced from mixed-endian
// bytes. Such strings display the timestamp fields byte-swapped; they are
// being displayed wrong, but still need to be parsed correctly.
func ParseME(s string) (UUID, error) {
	uuid, err := Parse(s)
	if err != nil {
		return uuid, err
	}
	return uuid.swapEndian(), nil
}
