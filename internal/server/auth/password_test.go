package auth

import "testing"

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	digest, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "" || digest == "pw1" {
		t.Fatalf("digest looks wrong: %q", digest)
	}

	if !h.Verify("pw1", digest) {
		t.Fatal("Verify should succeed for the original password")
	}
	if h.Verify("pw2", digest) {
		t.Fatal("Verify should fail for a different password")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()

	d1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	d2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if d1 == d2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
	if !h.Verify("same-password", d1) || !h.Verify("same-password", d2) {
		t.Fatal("both digests must verify against the original password")
	}
}

func TestBcryptHasher_VerifyGarbageDigest(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher()
	if h.Verify("pw", "not-a-bcrypt-digest") {
		t.Fatal("Verify must report false for a malformed digest")
	}
}
