package uuid

import "encoding/binary"

// Timestamp returns the 60-bit timestamp embedded in a time-based UUID.
//
// For version 1 UUIDs this is the count of 100-nanosecond intervals since
// the Gregorian epoch (1582-10-15), reassembled from the time_low,
// time_mid and time_hi fields with the version bits masked out. For
// version 6 UUIDs the reordered field layout is used instead.
//
// The value is only meaningful for those versions, but the accessor is
// defined for any input and never fails.
func (u UUID) Timestamp() uint64 {
	if u.Version() == VersionTimeSortedGregorian {
		hi := uint64(binary.BigEndian.Uint32(u[0:4]))
		mid := uint64(binary.BigEndian.Uint16(u[4:6]))
		low := uint64(u[6]&0x0f)<<8 | uint64(u[7])
		return hi<<28 | mid<<12 | low
	}
	hi := uint64(u[6]&0x0f)<<8 | uint64(u[7])
	mid := uint64(binary.BigEndian.Uint16(u[4:6]))
	low := uint64(binary.BigEndian.Uint32(u[0:4]))
	return hi<<48 | mid<<32 | low
}

// ClockSequence returns the 14-bit clock sequence, with the variant bits
// masked out. Only meaningful for time-based UUIDs, but defined for any input.
func (u UUID) ClockSequence() uint16 {
	return uint16(u[8]&0x3f)<<8 | uint16(u[9])
}

// NodeID returns the 48-bit node identifier from the last six bytes
func (u UUID) NodeID() [6]byte {
	var node [6]byte
	copy(node[:], u[10:])
	return node
}
