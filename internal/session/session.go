// Package session owns the signed-in state of a browser. A Manager is built
// once at startup and handed to the HTTP layer; nothing here is global.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/listings-web/backend"
	"github.com/yourorg/listings-web/internal/events"
	"github.com/yourorg/listings-web/internal/refresh"
)

var (
	ErrNoSession    = errors.New("session: not found")
	ErrInvalidToken = errors.New("session: token rejected by backend")
)

// Backend is the slice of the API client the session needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResponse, error)
	Signup(ctx context.Context, username, email, password string) (*backend.SignupResponse, error)
	Verify(ctx context.Context, email, code string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	CurrentUser(ctx context.Context, token string) (*backend.User, error)
}

// Session is the per-request view. The zero value is an anonymous visitor.
type Session struct {
	ID   string
	User *backend.User
}

func (s *Session) Authenticated() bool { return s != nil && s.User != nil }

type Options struct {
	TTL time.Duration
	// RevalidateAfter is how long a cached user is trusted before the token
	// is checked against the backend again in the background.
	RevalidateAfter time.Duration
	Logger          *slog.Logger
}

type Manager struct {
	api             Backend
	store           TokenStore
	pub             events.Publisher
	ttl             time.Duration
	revalidateAfter time.Duration
	refresher       *refresh.Refresher
	logger          *slog.Logger
	now             func() time.Time
}

func NewManager(api Backend, store TokenStore, pub events.Publisher, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.RevalidateAfter <= 0 {
		opts.RevalidateAfter = 5 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &Manager{
		api:             api,
		store:           store,
		pub:             pub,
		ttl:             opts.TTL,
		revalidateAfter: opts.RevalidateAfter,
		logger:          opts.Logger,
		now:             time.Now,
	}
	m.refresher = refresh.New(128, 2, 10*time.Second, func(ctx context.Context, j refresh.Job) {
		if _, err := m.validate(ctx, j.Key); err != nil && !errors.Is(err, ErrNoSession) {
			m.logger.Warn("session revalidation failed", "sid", j.Key, "err", err)
		}
	})
	return m
}

// Close waits for background revalidations to finish.
func (m *Manager) Close() { m.refresher.Close() }

func (m *Manager) TTL() time.Duration { return m.ttl }

// Init restores the session for sid. A token the backend no longer accepts
// is cleared and observers are told the session ended.
func (m *Manager) Init(ctx context.Context, sid string) (*Session, error) {
	if sid == "" {
		return &Session{}, nil
	}
	rec, err := m.store.Get(ctx, sid)
	if errors.Is(err, ErrNoSession) {
		return &Session{}, nil
	}
	if err != nil {
		return &Session{}, err
	}

	if rec.User != nil {
		if m.now().Sub(rec.CheckedAt) >= m.revalidateAfter {
			m.refresher.Enqueue(refresh.Job{Key: sid})
		}
		return &Session{ID: sid, User: rec.User}, nil
	}

	user, err := m.validate(ctx, sid)
	if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrNoSession) {
		return &Session{}, nil
	}
	if err != nil {
		return &Session{}, err
	}
	return &Session{ID: sid, User: user}, nil
}

func (m *Manager) validate(ctx context.Context, sid string) (*backend.User, error) {
	rec, err := m.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	user, err := m.api.CurrentUser(ctx, rec.Token)
	if err != nil {
		m.logger.Info("clearing rejected session token", "sid", sid, "err", err)
		if derr := m.store.Delete(ctx, sid); derr != nil {
			return nil, fmt.Errorf("clear session: %w", derr)
		}
		m.pub.PublishSession(ctx, events.SessionEvent{Kind: events.SessionEnded, SID: sid, Reason: "token_rejected"})
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	rec.User = user
	rec.CheckedAt = m.now()
	if err := m.store.Touch(ctx, sid, rec); err != nil && !errors.Is(err, ErrNoSession) {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Login exchanges credentials for a token, stores it under a fresh session
// id and loads the user.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	lr, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := m.api.CurrentUser(ctx, lr.Token)
	if err != nil {
		return nil, fmt.Errorf("load user after login: %w", err)
	}

	sid := uuid.NewString()
	ttl := m.ttl
	if exp := time.Duration(lr.ExpiresIn) * time.Millisecond; exp > 0 && exp < ttl {
		ttl = exp
	}
	rec := Record{Token: lr.Token, User: user, CheckedAt: m.now()}
	if err := m.store.Put(ctx, sid, rec, ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.pub.PublishSession(ctx, events.SessionEvent{
		Kind:     events.SessionStarted,
		SID:      sid,
		UserID:   user.ID,
		Username: user.Username,
	})
	return &Session{ID: sid, User: user}, nil
}

// Logout clears the token and notifies observers. Unknown ids are a no-op.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	rec, err := m.store.Get(ctx, sid)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	evt := events.SessionEvent{Kind: events.SessionEnded, SID: sid, Reason: "logout"}
	if rec.User != nil {
		evt.UserID, evt.Username = rec.User.ID, rec.User.Username
	}
	m.pub.PublishSession(ctx, evt)
	return nil
}

func (m *Manager) Signup(ctx context.Context, username, email, password string) (*backend.SignupResponse, error) {
	return m.api.Signup(ctx, username, email, password)
}

func (m *Manager) Verify(ctx context.Context, email, code string) (string, error) {
	return m.api.Verify(ctx, email, code)
}

func (m *Manager) ResendVerification(ctx context.Context, email string) (string, error) {
	return m.api.ResendVerification(ctx, email)
}

// Message turns an auth error into text fit for the user: the backend's own
// message when it sent one, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
