// Package uuid implements 128-bit Universally Unique Identifiers (UUIDs)
// as defined by RFC 4122 and RFC 9562: a 16-byte big-endian value type,
// generators for versions 1 and 3-8, and a lossless text codec for the
// four common string grammars.
//
// Generating UUIDs:
//
//	// Version 4 (random)
//	id, err := uuid.NewV4()
//
//	// Version 7 (time-ordered), monotonic within a millisecond
//	id, err := uuid.New()
//
//	// Version 5 (name-based, deterministic)
//	id := uuid.NewV5(uuid.NamespaceDNS, []byte("example.com"))
//
//	// Version 1/6 (Gregorian time), with a managed clock sequence
//	gen, err := uuid.NewTimeGenerator()
//	id, err = gen.NewV1()
//
// Parsing and formatting:
//
//	// Accepts canonical, simple, braced and urn:uuid: forms,
//	// case-insensitive
//	id, err := uuid.Parse("662aa7c7-7598-4d56-8bcc-a72c30f998a2")
//
//	s := id.String()    // canonical lowercase
//	s = id.URN()        // urn:uuid:...
//	s = id.StringUpper()
//
// Allocation-free formatting writes into a caller-owned buffer whose
// size is checked at compile time:
//
//	var buf [36]byte
//	id.Encode(&buf)
//
// Mixed-endian GUIDs:
//
// Some legacy systems store the three timestamp fields little-endian.
// FromBytesME, BytesME and ParseME convert explicitly between that
// layout and the canonical big-endian form; nothing ever swaps silently.
//
// Performance:
//
// When generating many random UUIDs in a tight loop, a reusable Rng
// avoids hitting the OS entropy source per call:
//
//	rng, err := uuid.NewRng()
//	for i := 0; i < 1000; i++ {
//	    id := uuid.NewV4From(rng)
//	    // Use id...
//	}
//
// Thread safety:
//
// UUID values are immutable and safe to share. The package-level
// generator and the Generator/TimeGenerator types lock internally and
// can be used concurrently. An Rng is single-owner state and must not
// be shared across goroutines without external synchronization.
//
// Standards compliance:
//
// Field layouts follow RFC 4122 and RFC 9562. The Version and Variant
// accessors are total: they classify any 16-byte pattern and never
// fail, because many UUIDs in the wild are non-conformant.
package uuid
