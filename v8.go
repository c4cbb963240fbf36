package uuid

// NewV8 creates a version 8 (vendor/application-specific) UUID from 16
// caller-supplied bytes. Only the version and variant bits are
// overwritten; every other bit passes through unchanged.
//
// Uniqueness of version 8 UUIDs is entirely up to the caller and must
// not be assumed (RFC 9562 section 5.8).
func NewV8(data [16]byte) UUID {
	uuid := UUID(data)
	uuid.setVersion(VersionCustom)
	uuid.setVariant(VariantRFC4122)
	return uuid
}
