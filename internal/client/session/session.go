// Package session owns "who is signed in": the user record and bearer
// credential, their persistence in the key/value store, and the credential
// attached to the API client.
//
// The Store is the single writer of the session and of the two persisted
// entries. Readers call Current or IsAuthenticated and never mutate.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/kvstore"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// Keys of the persisted session entries.
const (
	KeyCredential = "session-credential"
	KeyUser       = "session-user"
)

// Authenticator is the part of the API client the store drives.
type Authenticator interface {
	CreateSession(ctx context.Context, email, password string) (models.User, string, error)
	SetToken(token string)
	ClearToken()
}

// Session is the signed-in user and its credential. The zero value is the
// unauthenticated session; User is non-nil iff Credential is non-empty.
type Session struct {
	User       *models.User
	Credential string
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Credential != ""
}

type Store struct {
	kv      kvstore.Store
	auth    Authenticator
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	current Session
}

type Option func(*Store)

// WithTimeout bounds the remote call made by SignIn.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithClock overrides the time source used to check credential expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(kv kvstore.Store, auth Authenticator, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		auth:   auth,
		logger: logger.With("component", "session"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted session. It is meant to run once at startup.
// Missing or malformed entries leave the store unauthenticated; nothing is
// reported to the caller.
func (s *Store) Restore(ctx context.Context) {
	restored, err := s.load(ctx)
	if err != nil {
		s.logger.Debug(ctx, "no session restored", "reason", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = restored
	s.auth.SetToken(restored.Credential)
	s.logger.Info(ctx, "session restored", "user_id", restored.User.ID)
}

func (s *Store) load(ctx context.Context) (Session, error) {
	credential, err := s.kv.Get(ctx, KeyCredential)
	if err != nil {
		return Session{}, fmt.Errorf("read credential: %w", err)
	}
	if credential == "" {
		return Session{}, errors.New("empty credential")
	}
	if credentialExpired(credential, s.now()) {
		return Session{}, errors.New("credential expired")
	}

	raw, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return Session{}, fmt.Errorf("read user: %w", err)
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return Session{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return Session{}, errors.New("user without id")
	}

	return Session{User: &user, Credential: credential}, nil
}

// SignIn authenticates against the API. On success the credential and user
// are persisted, become the current session and the credential is attached to
// the API client. On failure the API error is returned unchanged and the
// current session, if any, is left as it was.
//
// The remote call runs to completion even if ctx is cancelled, bounded only by
// the store's timeout.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	callCtx := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.timeout)
		defer cancel()
	}

	user, token, err := s.auth.CreateSession(callCtx, email, password)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.SetMany(callCtx, map[string]string{
		KeyCredential: token,
		KeyUser:       string(payload),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.current = Session{User: &user, Credential: token}
	s.auth.SetToken(token)
	s.logger.Info(ctx, "signed in", "user_id", user.ID)
	return nil
}

// SignOut forgets the session locally and detaches the credential. It makes no
// remote call and cannot fail; storage errors are only logged.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(context.WithoutCancel(ctx), KeyCredential, KeyUser); err != nil {
		s.logger.Error(ctx, "failed to remove persisted session", "error", err)
	}

	s.current = Session{}
	s.auth.ClearToken()
	s.logger.Info(ctx, "signed out")
}

// UpdateUser replaces the signed-in user, typically with the record returned
// by a profile or avatar update. The credential is not touched. Called while
// unauthenticated it does nothing.
func (s *Store) UpdateUser(ctx context.Context, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Authenticated() {
		s.logger.Warn(ctx, "user update ignored: not signed in", "user_id", user.ID)
		return
	}

	user = user.Clone()
	payload, err := json.Marshal(user)
	if err != nil {
		s.logger.Error(ctx, "failed to encode user", "error", err)
	} else if err := s.kv.Set(context.WithoutCancel(ctx), KeyUser, string(payload)); err != nil {
		s.logger.Error(ctx, "failed to persist user", "error", err)
	}

	s.current.User = &user
}

// Current returns a copy of the current session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.current.Authenticated() {
		return Session{}
	}
	u := s.current.User.Clone()
	return Session{User: &u, Credential: s.current.Credential}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Authenticated()
}
