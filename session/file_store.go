package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists the session as a single file on disk. Writes go through a
// temporary file and rename so a crashed write leaves either the old session or none,
// never a torn one.
//
// FileStore is the client counterpart of the browser's cookie + local storage pair:
// one authoritative copy, wiped entirely whenever any part of it fails to parse.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore creates a store rooted at path. The parent directory is created on
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when the session cannot be encoded or the file cannot be
// written. Save can be used concurrently with Load and Clear on the same store.
func (f *FileStore) Save(ctx context.Context, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load describes the load operation and its observable behavior.
//
// Load returns [ErrAbsent] when no file exists or the stored session has expired, and
// [ErrCorrupt] after wiping an undecodable file. Load can be used concurrently with
// Save and Clear on the same store.
func (f *FileStore) Load(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAbsent
		}
		return nil, err
	}

	s, err := Decode(data)
	if err != nil {
		// Fail-safe, not fail-loud: wipe and report corrupt so the caller
		// routes through the normal unauthenticated path.
		_ = os.Remove(f.path)
		return nil, ErrCorrupt
	}

	if s.Expired(f.now()) {
		_ = os.Remove(f.path)
		return nil, ErrAbsent
	}

	return s, nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear removes the session file. It is idempotent: clearing an absent session is not
// an error. Clear can be used concurrently with Save and Load on the same store.
func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
