package uuid

import "testing"

// nameBased checks the determinism and tagging invariants shared by the
// two name-based versions
func nameBased(t *testing.T, fn func(UUID, []byte) UUID, version Version) {
	t.Helper()

	ns1 := Must(NewV4())
	ns2 := Must(NewV4())

	uuid1 := fn(ns1, []byte("test"))
	uuid2 := fn(ns1, []byte("test"))
	if uuid1 != uuid2 {
		t.Error("identical namespace and name must yield identical UUIDs")
	}

	if other := fn(ns1, []byte("Cat")); other == uuid1 {
		t.Error("different names in the same namespace must yield different UUIDs")
	}
	if other := fn(ns2, []byte("test")); other == uuid1 {
		t.Error("the same name in different namespaces must yield different UUIDs")
	}

	if uuid1.Version() != version {
		t.Errorf("version = %v, want %v", uuid1.Version(), version)
	}
	if uuid1.Variant() != VariantRFC4122 {
		t.Errorf("variant = %v, want %v", uuid1.Variant(), VariantRFC4122)
	}
}

func TestNewV3(t *testing.T) {
	nameBased(t, NewV3, VersionNameBasedMD5)

	// RFC 4122 Appendix B, as corrected by errata 1352
	uuid := NewV3(NamespaceDNS, []byte("www.widgets.com"))
	if want := "3d813cbb-47fb-32ba-91df-831e1593ac29"; uuid.String() != want {
		t.Errorf("NewV3(NamespaceDNS, www.widgets.com) = %v, want %v", uuid, want)
	}
}

func TestNewV5(t *testing.T) {
	nameBased(t, NewV5, VersionNameBasedSHA1)

	// RFC 9562 appendix A.4 test vector
	uuid := NewV5(NamespaceDNS, []byte("www.example.com"))
	if want := "2ed6657d-e927-568b-95e1-2665a8aea6a2"; uuid.String() != want {
		t.Errorf("NewV5(NamespaceDNS, www.example.com) = %v, want %v", uuid, want)
	}
}
