package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashingLifecycle(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	password := "S3curePass!"
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}
	if hash == password {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := hasher.Verify(hash, password); err != nil {
		t.Fatalf("expected password to verify, got error: %v", err)
	}

	if err := hasher.Verify(hash, "wrong"); err == nil {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestVerifyFailsForMutatedPassword(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	password := "correct-horse-battery"
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}

	// Flipping any single character must break verification.
	for i := 0; i < len(password); i++ {
		mutated := []byte(password)
		mutated[i] ^= 0x01
		if err := hasher.Verify(hash, string(mutated)); err == nil {
			t.Fatalf("expected verification to fail for mutation at index %d", i)
		}
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	if err := hasher.Verify("not-a-bcrypt-hash", "whatever"); err == nil {
		t.Fatal("expected malformed hash to fail verification")
	}
	if err := hasher.Verify("   ", "whatever"); err == nil {
		t.Fatal("expected empty hash to fail verification")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)
	if _, err := hasher.Hash("   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	hasher := NewHasher(9999)
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost fallback, got %d", hasher.cost)
	}
}
