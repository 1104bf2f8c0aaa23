package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest returns the hex-encoded SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KeyedDigest returns the hex-encoded HMAC-SHA256 of message under key.
// Only the holder of the server seed can produce the committed outcomes.
func KeyedDigest(key, message []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write(message)
	return hex.EncodeToString(h.Sum(nil))
}

// SecureRandomHex returns byteLen cryptographically random bytes, hex-encoded.
func SecureRandomHex(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %v", err)
	}
	return hex.EncodeToString(buf), nil
}

// Commitment is one round's server seed together with its published hash.
// The seed stays server-side until the round is terminal.
type Commitment struct {
	ServerSeed     string
	ServerSeedHash string
}

// NewCommitment generates a fresh 32-byte server seed and commits to it.
func NewCommitment() (*Commitment, error) {
	seed, err := SecureRandomHex(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate server seed: %v", err)
	}
	return &Commitment{
		ServerSeed:     seed,
		ServerSeedHash: Digest([]byte(seed)),
	}, nil
}

// GenerateClientSeed produces a seed for players who did not supply one.
func GenerateClientSeed() (string, error) {
	return SecureRandomHex(16)
}
