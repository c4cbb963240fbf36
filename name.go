package uuid

import (
	"crypto/md5"
	"crypto/sha1"
	"hash"
)

// NewV3 generates a version 3 (name-based, MD5) UUID from the given
// namespace and name. Identical inputs always yield the identical UUID.
//
// MD5 is obsolete as a hash; NewV5 should be preferred for new
// identifiers. Both are implemented identically, differing only in the
// hash algorithm and version tag.
func NewV3(namespace UUID, name []byte) UUID {
	return newNameBased(md5.New(), namespace, name, VersionNameBasedMD5)
}

// NewV5 generates a version 5 (name-based, SHA-1) UUID from the given
// namespace and name. Identical inputs always yield the identical UUID.
func NewV5(namespace UUID, name []byte) UUID {
	return newNameBased(sha1.New(), namespace, name, VersionNameBasedSHA1)
}

// newNameBased hashes namespace||name, takes the first 16 bytes of the
// digest and tags them with the version and RFC variant bits
func newNameBased(h hash.Hash, namespace UUID, name []byte, version Version) UUID {
	h.Write(namespace[:])
	h.Write(name)

	var uuid UUID
	copy(uuid[:], h.Sum(nil))
	uuid.setVersion(version)
	uuid.setVariant(VariantRFC4122)
	return uuid
}
