// Package hash provides content hashing for merged pack output.
//
// Packmerger uses SHA-256 digests to report the integrity of generated
// archives and to derive collision-free session identifiers for the web
// service. The package provides both a real implementation using
// crypto/sha256 and a fake implementation for testing.
package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hasher provides an abstraction for content hashing operations.
type Hasher interface {
	// HashBytes computes the hex digest of the given content.
	HashBytes(data []byte) string

	// NewID returns a fresh random identifier safe for use as a
	// directory name.
	NewID() (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes computes the SHA-256 hex digest of the given content.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewID returns the hex encoding of 16 random bytes.
func (h *SHA256Hasher) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// FakeHasher implements Hasher with deterministic output for testing.
type FakeHasher struct {
	nextID int
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{}
}

// HashBytes returns a short deterministic digest of the content length.
func (h *FakeHasher) HashBytes(data []byte) string {
	return fmt.Sprintf("fakehash-%d", len(data))
}

// NewID returns sequential identifiers.
func (h *FakeHasher) NewID() (string, error) {
	h.nextID++
	return fmt.Sprintf("session-%04d", h.nextID), nil
}
