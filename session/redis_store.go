package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session in Redis under a single prefixed key. It exists for
// deployments where several headless workers (CI runners, batch importers) share one
// backend login instead of each holding a session file.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewRedisStore creates a store writing under prefix. An empty prefix defaults to
// "gl".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "gl"
	}
	return &RedisStore{
		client: client,
		key:    prefix + ":session",
		now:    time.Now,
	}
}

// Save stores the encoded session with a TTL matching its remaining lifetime.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if s.ExpiresAt > 0 {
		ttl = time.Until(time.Unix(s.ExpiresAt, 0))
		if ttl <= 0 {
			return errors.New("session already expired")
		}
	}

	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Load describes the load operation and its observable behavior.
//
// Load returns [ErrAbsent] when no key exists (Redis expiry handles session
// lifetime), [ErrCorrupt] after deleting an undecodable value, and
// [ErrStoreUnavailable] when Redis cannot be reached.
func (r *RedisStore) Load(ctx context.Context) (*Session, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAbsent
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	s, err := Decode(data)
	if err != nil {
		_ = r.client.Del(ctx, r.key).Err()
		return nil, ErrCorrupt
	}

	if s.Expired(r.now()) {
		_ = r.client.Del(ctx, r.key).Err()
		return nil, ErrAbsent
	}

	return s, nil
}

// Clear deletes the session key. Idempotent.
func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
