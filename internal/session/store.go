package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yourorg/listings-web/backend"
	"github.com/yourorg/listings-web/internal/redisx"
)

// Record is what the server keeps per browser session.
type Record struct {
	Token     string        `json:"token"`
	User      *backend.User `json:"user,omitempty"`
	CheckedAt time.Time     `json:"checkedAt"`
}

// TokenStore persists bearer tokens keyed by session id.
type TokenStore interface {
	Get(ctx context.Context, sid string) (Record, error)
	Put(ctx context.Context, sid string, rec Record, ttl time.Duration) error
	// Touch replaces the record but keeps its expiry.
	Touch(ctx context.Context, sid string, rec Record) error
	Delete(ctx context.Context, sid string) error
}

const keyPrefix = "session:"

type RedisStore struct {
	c *redisx.Client
}

func NewRedisStore(c *redisx.Client) *RedisStore { return &RedisStore{c: c} }

func (s *RedisStore) Get(ctx context.Context, sid string) (Record, error) {
	raw, err := s.c.Get(ctx, keyPrefix+sid)
	if errors.Is(err, redisx.ErrNotFound) {
		return Record{}, ErrNoSession
	}
	if err != nil {
		return Record{}, fmt.Errorf("load session: %w", err)
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, fmt.Errorf("decode session: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Put(ctx context.Context, sid string, rec Record, ttl time.Duration) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, keyPrefix+sid, string(b), ttl)
}

func (s *RedisStore) Touch(ctx context.Context, sid string, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.c.KeepTTL(ctx, keyPrefix+sid, string(b)); errors.Is(err, redisx.ErrNotFound) {
		return ErrNoSession
	} else if err != nil {
		return err
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.c.Del(ctx, keyPrefix+sid)
}

// MemoryStore keeps sessions in process. Used when no Redis is configured.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]memEntry
	now func() time.Time
}

type memEntry struct {
	rec     Record
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]memEntry{}, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[sid]
	if !ok {
		return Record{}, ErrNoSession
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.m, sid)
		return Record{}, ErrNoSession
	}
	return e.rec, nil
}

func (s *MemoryStore) Put(_ context.Context, sid string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memEntry{rec: rec}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.m[sid] = e
	return nil
}

func (s *MemoryStore) Touch(_ context.Context, sid string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[sid]
	if !ok {
		return ErrNoSession
	}
	e.rec = rec
	s.m[sid] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}
