package services_test

import (
	"testing"

	"steprush-backend/internal/services"
)

func TestDigest(t *testing.T) {
	// Well-known SHA-256 vectors.
	if got := services.Digest([]byte("")); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("Digest of empty input mismatch: %s", got)
	}

	if got := services.Digest([]byte("abc")); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("Digest of \"abc\" mismatch: %s", got)
	}
}

func TestKeyedDigest(t *testing.T) {
	got := services.KeyedDigest([]byte("key"), []byte("The quick brown fox jumps over the lazy dog"))
	want := "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"
	if got != want {
		t.Errorf("KeyedDigest mismatch: got %s, want %s", got, want)
	}
}

func TestSecureRandomHex(t *testing.T) {
	a, err := services.SecureRandomHex(32)
	if err != nil {
		t.Fatalf("SecureRandomHex failed: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a))
	}

	b, err := services.SecureRandomHex(32)
	if err != nil {
		t.Fatalf("SecureRandomHex failed: %v", err)
	}
	if a == b {
		t.Error("Two random seeds should not collide")
	}
}

func TestNewCommitment(t *testing.T) {
	c, err := services.NewCommitment()
	if err != nil {
		t.Fatalf("NewCommitment failed: %v", err)
	}

	if len(c.ServerSeed) != 64 {
		t.Errorf("Server seed should be 32 bytes hex-encoded, got %d chars", len(c.ServerSeed))
	}

	if services.Digest([]byte(c.ServerSeed)) != c.ServerSeedHash {
		t.Error("Commitment hash should be the digest of the server seed")
	}
}
