package session

import (
	"context"
	"sync"
	"time"
)

// MemStore holds the encoded session in process memory. Used by tests and by
// embedders that manage persistence themselves.
//
// MemStore keeps the encoded bytes rather than the decoded struct so the corrupt-data
// path behaves exactly like the durable backends.
type MemStore struct {
	mu   sync.Mutex
	data []byte
	now  func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{now: time.Now}
}

func (m *MemStore) Save(ctx context.Context, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

func (m *MemStore) Load(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrAbsent
	}

	s, err := Decode(m.data)
	if err != nil {
		m.data = nil
		return nil, ErrCorrupt
	}

	if s.Expired(m.now()) {
		m.data = nil
		return nil, ErrAbsent
	}

	return s, nil
}

func (m *MemStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// SeedRaw overwrites the stored bytes directly, bypassing the codec. Test hook for
// exercising the corrupt-read path.
func (m *MemStore) SeedRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}
