package uuid

// Predefined namespace UUIDs from RFC 4122 Appendix C, used as seeds for
// name-based (version 3 and 5) generation. All four share the same
// 11-byte suffix.
var (
	// NamespaceDNS is for fully-qualified domain names
	NamespaceDNS = MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	// NamespaceURL is for URLs
	NamespaceURL = MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

	// NamespaceOID is for ISO OIDs
	NamespaceOID = MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")

	// NamespaceX500 is for X.500 distinguished names
	NamespaceX500 = MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")
)
