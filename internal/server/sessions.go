package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AsagiriBeta/PackMerger/internal/clock"
	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/hash"
)

// SessionStore manages per-upload session directories. Every session
// owns an isolated directory under the uploads root holding the
// extracted packs, so concurrent merge jobs never share input or output
// locations.
type SessionStore struct {
	fs     fsops.FS
	hasher hash.Hasher
	clk    clock.Clock
	root   string
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore rooted at root.
func NewSessionStore(fs fsops.FS, hasher hash.Hasher, clk clock.Clock, root string, ttl time.Duration) *SessionStore {
	return &SessionStore{fs: fs, hasher: hasher, clk: clk, root: root, ttl: ttl}
}

// Create allocates a new session directory and returns its ID.
func (s *SessionStore) Create() (string, error) {
	id, err := s.hasher.NewID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	if err := s.fs.MkdirAll(s.PacksDir(id), 0755); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}
	return id, nil
}

// Dir returns the session's root directory.
func (s *SessionStore) Dir(id string) string {
	return filepath.Join(s.root, id)
}

// PacksDir returns the directory holding the session's extracted packs.
func (s *SessionStore) PacksDir(id string) string {
	return filepath.Join(s.Dir(id), "packs")
}

// Exists reports whether the session directory is present.
func (s *SessionStore) Exists(id string) (bool, error) {
	if err := s.fs.ValidateIdentifier(id); err != nil {
		return false, err
	}
	return s.fs.IsDir(s.Dir(id))
}

// Remove deletes a session and everything in it.
func (s *SessionStore) Remove(id string) error {
	if err := s.fs.ValidateIdentifier(id); err != nil {
		return err
	}
	return s.fs.RemoveAll(s.Dir(id))
}

// Sweep removes sessions older than the store's TTL and returns how
// many were deleted. Entries whose age cannot be determined are left
// alone.
func (s *SessionStore) Sweep() (int, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	removed := 0
	cutoff := s.clk.Now().Add(-s.ttl)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := s.fs.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove expired entry %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
