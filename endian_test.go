package uuid

import (
	"bytes"
	"testing"
)

func TestEndian_RoundTrip(t *testing.T) {
	uuid := testVector
	if uuid.Version() != VersionRandom {
		t.Fatalf("test vector version = %v, want %v", uuid.Version(), VersionRandom)
	}

	me := uuid.BytesME()
	back, err := FromBytesME(me)
	if err != nil {
		t.Fatalf("FromBytesME() error = %v", err)
	}
	if back != uuid {
		t.Errorf("mixed-endian round-trip mismatch: got %v, want %v", back, uuid)
	}

	// The swapped fields of this vector are not palindromic, so the two
	// byte orders must differ.
	if bytes.Equal(me, uuid.Bytes()) {
		t.Error("BytesME() equals Bytes() for non-palindromic timestamp fields")
	}
	// Only the first eight bytes participate in the swap
	if !bytes.Equal(me[8:], uuid[8:]) {
		t.Error("BytesME() modified clock sequence or node bytes")
	}
	if want := "c7a72a66-9875-564d-8bcc-a72c30f998a2"; MustFromBytes(me).String() != want {
		t.Errorf("mixed-endian bytes = %v, want %v", MustFromBytes(me).String(), want)
	}
}

func TestEndian_RoundTrip_Arbitrary(t *testing.T) {
	rng := NewRngFromSeed([SeedSize]byte{0x07})
	for i := 0; i < 50; i++ {
		var raw [16]byte
		rng.Read(raw[:])

		uuid := MustFromBytes(raw[:])
		back, err := FromBytesME(uuid.BytesME())
		if err != nil {
			t.Fatalf("FromBytesME() error = %v", err)
		}
		if back != uuid {
			t.Errorf("round-trip mismatch for %v", uuid)
		}
	}
}

func TestFromBytesME_Invalid(t *testing.T) {
	if _, err := FromBytesME([]byte{0x01, 0x02}); err != ErrInvalidLength {
		t.Errorf("FromBytesME(short) error = %v, want %v", err, ErrInvalidLength)
	}
}

func TestParseME(t *testing.T) {
	// A GUID displayed from mixed-endian storage: taken at face value the
	// version nibble is garbage, swapped it is a well-formed v4 UUID.
	const displayed = "20169084-b186-884f-b110-3db2c37eb8b5"

	swapped, err := ParseME(displayed)
	if err != nil {
		t.Fatalf("ParseME() error = %v", err)
	}
	face, err := Parse(displayed)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if face.Version() == VersionRandom {
		t.Error("face-value parse should not look like a v4 UUID")
	}
	if swapped.Version() != VersionRandom {
		t.Errorf("ParseME() version = %v, want %v", swapped.Version(), VersionRandom)
	}
	if swapped.Variant() != VariantRFC4122 {
		t.Errorf("ParseME() variant = %v, want %v", swapped.Variant(), VariantRFC4122)
	}
	if want := "84901620-86b1-4f88-b110-3db2c37eb8b5"; swapped.String() != want {
		t.Errorf("ParseME() = %v, want %v", swapped.String(), want)
	}

	if _, err := ParseME("not-a-uuid"); err != ErrInvalidFormat {
		t.Errorf("ParseME(invalid) error = %v, want %v", err, ErrInvalidFormat)
	}
}
