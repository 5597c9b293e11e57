package password

import "testing"

func TestDeriveAndVerify(t *testing.T) {
	digest, salt, err := Derive("pw123", "")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if len(salt) != 32 {
		t.Fatalf("expected 32 hex chars of salt, got %d", len(salt))
	}
	if len(digest) != 64 {
		t.Fatalf("expected 64 hex chars of digest, got %d", len(digest))
	}

	if !Verify("pw123", salt, digest) {
		t.Fatalf("verify rejected the original password")
	}
	if Verify("pw124", salt, digest) {
		t.Fatalf("verify accepted a different password")
	}
}

func TestDeriveDeterministicUnderFixedSalt(t *testing.T) {
	const salt = "00112233445566778899aabbccddeeff"

	d1, s1, err := Derive("hunter2", salt)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	d2, _, err := Derive("hunter2", salt)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if s1 != salt {
		t.Fatalf("supplied salt was replaced: %s", s1)
	}
	if d1 != d2 {
		t.Fatalf("same password and salt produced different digests")
	}

	other, _, err := Derive("hunter3", salt)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if other == d1 {
		t.Fatalf("different passwords produced the same digest")
	}
}

func TestDeriveGeneratesFreshSalts(t *testing.T) {
	d1, s1, err := Derive("pw123", "")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	d2, s2, err := Derive("pw123", "")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("two derives reused the same salt")
	}
	if d1 == d2 {
		t.Fatalf("two derives with fresh salts produced the same digest")
	}
}
