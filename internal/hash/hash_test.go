package hash

import "testing"

func TestSHA256Hasher_HashBytes(t *testing.T) {
	h := NewSHA256Hasher()

	// Known SHA-256 of the empty input.
	if got := h.HashBytes(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("HashBytes(nil) = %q", got)
	}
	if h.HashBytes([]byte("a")) == h.HashBytes([]byte("b")) {
		t.Error("distinct inputs produced the same digest")
	}
	if h.HashBytes([]byte("x")) != h.HashBytes([]byte("x")) {
		t.Error("digest not deterministic")
	}
}

func TestSHA256Hasher_NewID(t *testing.T) {
	h := NewSHA256Hasher()

	a, err := h.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	b, err := h.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if len(a) != 32 {
		t.Errorf("id length = %d, want 32 hex chars", len(a))
	}
	if a == b {
		t.Error("consecutive ids collided")
	}
}

func TestFakeHasher(t *testing.T) {
	h := NewFakeHasher()

	if got := h.HashBytes([]byte("abc")); got != "fakehash-3" {
		t.Errorf("HashBytes = %q, want fakehash-3", got)
	}

	first, err := h.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	second, err := h.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if first != "session-0001" || second != "session-0002" {
		t.Errorf("ids = %q, %q", first, second)
	}
}
