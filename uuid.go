package uuid

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122 and RFC 9562.
// The UUID is a 128-bit (16 byte) value stored in its canonical big-endian byte order.
// Any 16-byte pattern is a valid UUID value; the Version and Variant accessors only
// read bits and never fail.
type UUID [16]byte

// Version represents the UUID version, stored in the top four bits of byte 6.
type Version byte

const (
	VersionNil                 Version = iota // all version bits zero
	VersionTimeBased                          // UUIDv1, Gregorian time
	VersionDCESecurity                        // UUIDv2
	VersionNameBasedMD5                       // UUIDv3
	VersionRandom                             // UUIDv4
	VersionNameBasedSHA1                      // UUIDv5
	VersionTimeSortedGregorian                // UUIDv6, reordered Gregorian time
	VersionTimeSorted                         // UUIDv7, Unix time
	VersionCustom                             // UUIDv8, vendor-specific
	VersionReserved                           // versions 9-15
)

// String returns the name of the version.
func (v Version) String() string {
	switch v {
	case VersionNil:
		return "Nil"
	case VersionTimeBased:
		return "TimeBased"
	case VersionDCESecurity:
		return "DCESecurity"
	case VersionNameBasedMD5:
		return "NameBasedMD5"
	case VersionRandom:
		return "Random"
	case VersionNameBasedSHA1:
		return "NameBasedSHA1"
	case VersionTimeSortedGregorian:
		return "TimeSortedGregorian"
	case VersionTimeSorted:
		return "TimeSorted"
	case VersionCustom:
		return "Custom"
	default:
		return "Reserved"
	}
}

// Variant represents the UUID variant, stored in the top bits of byte 8.
type Variant byte

const (
	VariantNCS       Variant = iota // 0xx, NCS backward compatibility (includes Nil)
	VariantRFC4122                  // 10x, RFC 4122 / RFC 9562 conforming
	VariantMicrosoft                // 110, Microsoft backward compatibility
	VariantFuture                   // 111, reserved for the future (includes Max)
)

// String returns the name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantNCS:
		return "NCS"
	case VariantRFC4122:
		return "RFC4122"
	case VariantMicrosoft:
		return "Microsoft"
	default:
		return "Future"
	}
}

// Nil is the nil UUID (all bits zero)
var Nil UUID

// Max is the max UUID (all bits one), defined by RFC 9562 section 5.10
var Max = UUID{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Version returns the version of the UUID.
// Unrecognized version numbers (9-15) report VersionReserved; many UUIDs
// in the wild are incorrectly generated, so this value cannot be relied
// upon unless the variant is RFC4122.
func (u UUID) Version() Version {
	v := Version(u[6] >> 4)
	if v > VersionCustom {
		return VersionReserved
	}
	return v
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// setVersion overwrites the version bits, leaving the low nibble of byte 6 intact
func (u *UUID) setVersion(v Version) {
	u[6] = (u[6] & 0x0f) | (byte(v) << 4)
}

// setVariant overwrites only the bits owned by the variant field.
// The surrounding bits of byte 8 carry clock sequence (or random) data
// and must survive a re-tag losslessly.
func (u *UUID) setVariant(v Variant) {
	switch v {
	case VariantNCS:
		u[8] &= 0x7f
	case VariantRFC4122:
		u[8] = (u[8] & 0x3f) | 0x80
	case VariantMicrosoft:
		u[8] = (u[8] & 0x1f) | 0xc0
	default:
		u[8] |= 0xe0
	}
}

const (
	lowerhex = "0123456789abcdef"
	upperhex = "0123456789ABCDEF"

	urnPrefix = "urn:uuid:"

	canonicalLen = 36
	urnLen       = 45
	bracedLen    = 38
	simpleLen    = 32
)

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [canonicalLen]byte
	u.Encode(&buf)
	return string(buf[:])
}

// StringUpper is String with uppercase hex digits
func (u UUID) StringUpper() string {
	var buf [canonicalLen]byte
	u.EncodeUpper(&buf)
	return string(buf[:])
}

// URN returns the UUID as an RFC 2141 URN: urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) URN() string {
	var buf [urnLen]byte
	u.EncodeURN(&buf)
	return string(buf[:])
}

// URNUpper is URN with uppercase hex digits. The urn:uuid: prefix stays lowercase.
func (u UUID) URNUpper() string {
	var buf [urnLen]byte
	u.EncodeURNUpper(&buf)
	return string(buf[:])
}

// Encode writes the canonical lowercase hyphenated form into buf.
// Taking a fixed-size array pointer makes the required buffer size part
// of the signature, so a wrong-size buffer is a compile error rather
// than a runtime failure.
func (u UUID) Encode(buf *[36]byte) {
	encodeCanonical(buf[:], u, lowerhex)
}

// EncodeUpper is Encode with uppercase hex digits
func (u UUID) EncodeUpper(buf *[36]byte) {
	encodeCanonical(buf[:], u, upperhex)
}

// EncodeURN writes the lowercase URN form into buf
func (u UUID) EncodeURN(buf *[45]byte) {
	copy(buf[:len(urnPrefix)], urnPrefix)
	encodeCanonical(buf[len(urnPrefix):], u, lowerhex)
}

// EncodeURNUpper is EncodeURN with uppercase hex digits
func (u UUID) EncodeURNUpper(buf *[45]byte) {
	copy(buf[:len(urnPrefix)], urnPrefix)
	encodeCanonical(buf[len(urnPrefix):], u, upperhex)
}

// encodeCanonical encodes the UUID into dst, which must hold 36 bytes,
// placing hyphens at offsets 8, 13, 18 and 23
func encodeCanonical(dst []byte, u UUID, hextable string) {
	j := 0
	for i, b := range u {
		switch i {
		case 4, 6, 8, 10:
			dst[j] = '-'
			j++
		}
		dst[j] = hextable[b>>4]
		dst[j+1] = hextable[b&0x0f]
		j += 2
	}
}

// Parse parses a UUID from its string representation.
// It accepts the following formats, with case-insensitive hex digits:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (canonical)
//   - urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (simple, without hyphens)
//
// The urn:uuid: prefix must be lowercase and braces must be balanced.
// Parsing is all-or-nothing: any malformed input yields ErrInvalidFormat
// and never a partially decoded value.
func Parse(s string) (UUID, error) {
	var uuid UUID

	switch len(s) {
	case urnLen:
		if s[:len(urnPrefix)] != urnPrefix {
			return uuid, ErrInvalidFormat
		}
		s = s[len(urnPrefix):]
	case bracedLen:
		if s[0] != '{' || s[bracedLen-1] != '}' {
			return uuid, ErrInvalidFormat
		}
		s = s[1 : bracedLen-1]
	case canonicalLen:
		// handled below
	case simpleLen:
		if _, err := hex.Decode(uuid[:], []byte(s)); err != nil {
			return UUID{}, ErrInvalidFormat
		}
		return uuid, nil
	default:
		return uuid, ErrInvalidFormat
	}

	// Canonical format: hyphens at exactly these four positions
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid, ErrInvalidFormat
	}
	// Decode each segment
	if err := decodeHexSegment(uuid[0:4], s[0:8]); err != nil {
		return UUID{}, err
	}
	if err := decodeHexSegment(uuid[4:6], s[9:13]); err != nil {
		return UUID{}, err
	}
	if err := decodeHexSegment(uuid[6:8], s[14:18]); err != nil {
		return UUID{}, err
	}
	if err := decodeHexSegment(uuid[8:10], s[19:23]); err != nil {
		return UUID{}, err
	}
	if err := decodeHexSegment(uuid[10:16], s[24:36]); err != nil {
		return UUID{}, err
	}
	return uuid, nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("uuid: Parse(%q): %v", s, err))
	}
	return uuid
}

// decodeHexSegment decodes a hex string segment into a byte slice
func decodeHexSegment(dst []byte, src string) error {
	if _, err := hex.Decode(dst, []byte(src)); err != nil {
		return ErrInvalidFormat
	}
	return nil
}

// Bytes returns the UUID as a byte slice in canonical big-endian order
func (u UUID) Bytes() []byte {
	return u[:]
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// IsMax returns true if the UUID is the max UUID (all ones)
func (u UUID) IsMax() bool {
	return u == Max
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [canonicalLen]byte
	u.Encode(&buf)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return ErrInvalidLength
	}
	copy(u[:], data)
	return nil
}

// Scan implements the sql.Scanner interface for database compatibility
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		id, err := Parse(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	case []byte:
		if len(src) == 16 {
			copy(u[:], src)
			return nil
		}
		if len(src) == 0 {
			return nil
		}
		id, err := Parse(string(src))
		if err != nil {
			return err
		}
		*u = id
		return nil
	default:
		return fmt.Errorf("uuid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < 16; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
