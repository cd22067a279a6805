package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/kvstore"
	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAuth struct {
	user  models.User
	token string
	err   error

	calls     int
	lastEmail string
	lastPass  string
	ctxErr    error

	attached string
}

func (f *fakeAuth) CreateSession(ctx context.Context, email, password string) (models.User, string, error) {
	f.calls++
	f.lastEmail, f.lastPass = email, password
	f.ctxErr = ctx.Err()
	return f.user, f.token, f.err
}

func (f *fakeAuth) SetToken(token string) { f.attached = token }
func (f *fakeAuth) ClearToken()           { f.attached = "" }

// brokenKV fails every operation.
type brokenKV struct{}

var errDisk = errors.New("disk on fire")

func (brokenKV) Get(context.Context, string) (string, error)      { return "", errDisk }
func (brokenKV) Set(context.Context, string, string) error        { return errDisk }
func (brokenKV) SetMany(context.Context, map[string]string) error { return errDisk }
func (brokenKV) Remove(context.Context, ...string) error          { return errDisk }

// ---- helpers ----

var breno = models.User{
	ID:        "44rff43-kgdg43f",
	Name:      "Breno",
	Email:     "breno@email.com",
	AvatarURL: "image.jpg",
}

func newStore(t *testing.T, kv kvstore.Store, auth *fakeAuth, opts ...Option) *Store {
	t.Helper()
	return NewStore(kv, auth, logging.Discard(), opts...)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func get(t *testing.T, kv kvstore.Store, key string) (string, bool) {
	t.Helper()
	v, err := kv.Get(context.Background(), key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "44rff43-kgdg43f",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

// ---- Restore ----

func TestRestore_BothEntriesWellFormed(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyCredential, "token-xxxx"))
	require.NoError(t, kv.Set(ctx, KeyUser, mustJSON(t, breno)))

	auth := &fakeAuth{}
	s := newStore(t, kv, auth)
	s.Restore(ctx)

	cur := s.Current()
	require.True(t, cur.Authenticated())
	assert.Equal(t, breno, *cur.User)
	assert.Equal(t, "token-xxxx", cur.Credential)
	assert.Equal(t, "token-xxxx", auth.attached)
}

func TestRestore_MissingOrMalformed(t *testing.T) {
	user := mustJSON(t, breno)

	tests := []struct {
		name       string
		credential *string
		user       *string
	}{
		{name: "nothing persisted"},
		{name: "credential only", credential: ptr("token")},
		{name: "user only", user: &user},
		{name: "empty credential", credential: ptr(""), user: &user},
		{name: "user not json", credential: ptr("token"), user: ptr("{not json")},
		{name: "user is a string", credential: ptr("token"), user: ptr(`"breno"`)},
		{name: "user is null", credential: ptr("token"), user: ptr(`null`)},
		{name: "user without id", credential: ptr("token"), user: ptr(`{"name":"Breno"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			ctx := context.Background()
			if tt.credential != nil {
				require.NoError(t, kv.Set(ctx, KeyCredential, *tt.credential))
			}
			if tt.user != nil {
				require.NoError(t, kv.Set(ctx, KeyUser, *tt.user))
			}

			auth := &fakeAuth{}
			s := newStore(t, kv, auth)
			require.NotPanics(t, func() { s.Restore(ctx) })

			assert.False(t, s.IsAuthenticated())
			assert.Equal(t, Session{}, s.Current())
			assert.Empty(t, auth.attached)
		})
	}
}

func TestRestore_StorageFailureIsSilent(t *testing.T) {
	s := newStore(t, brokenKV{}, &fakeAuth{})
	s.Restore(context.Background())
	assert.False(t, s.IsAuthenticated())
}

func TestRestore_ExpiredJWTIsDiscarded(t *testing.T) {
	now := time.Date(2020, 5, 20, 12, 0, 0, 0, time.UTC)
	kv := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyCredential, signedJWT(t, now.Add(-time.Minute))))
	require.NoError(t, kv.Set(ctx, KeyUser, mustJSON(t, breno)))

	s := newStore(t, kv, &fakeAuth{}, WithClock(func() time.Time { return now }))
	s.Restore(ctx)

	assert.False(t, s.IsAuthenticated())
}

func TestRestore_LiveJWTIsKept(t *testing.T) {
	now := time.Date(2020, 5, 20, 12, 0, 0, 0, time.UTC)
	kv := kvstore.NewMemoryStore()
	ctx := context.Background()
	token := signedJWT(t, now.Add(time.Hour))
	require.NoError(t, kv.Set(ctx, KeyCredential, token))
	require.NoError(t, kv.Set(ctx, KeyUser, mustJSON(t, breno)))

	s := newStore(t, kv, &fakeAuth{}, WithClock(func() time.Time { return now }))
	s.Restore(ctx)

	require.True(t, s.IsAuthenticated())
	assert.Equal(t, token, s.Current().Credential)
}

// ---- SignIn ----

func TestSignIn_RoundTrip(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := &fakeAuth{user: breno, token: "asa4-ff43g-44"}
	s := newStore(t, kv, auth)

	require.NoError(t, s.SignIn(context.Background(), "breno@email.com", "123456"))

	assert.Equal(t, "breno@email.com", auth.lastEmail)
	assert.Equal(t, "123456", auth.lastPass)

	cred, ok := get(t, kv, KeyCredential)
	require.True(t, ok)
	assert.Equal(t, "asa4-ff43g-44", cred)

	user, ok := get(t, kv, KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, mustJSON(t, breno), user)

	cur := s.Current()
	require.True(t, cur.Authenticated())
	assert.Equal(t, breno, *cur.User)
	assert.Equal(t, "asa4-ff43g-44", auth.attached)
}

func TestSignIn_FailureLeavesStateUnchanged(t *testing.T) {
	rejected := errors.New("incorrect email/password combination")
	kv := kvstore.NewMemoryStore()
	auth := &fakeAuth{err: rejected}
	s := newStore(t, kv, auth)

	err := s.SignIn(context.Background(), "breno@email.com", "wrong")
	require.Same(t, rejected, err, "the API error must propagate unmodified")
	assert.Equal(t, 1, auth.calls, "no retry")

	assert.False(t, s.IsAuthenticated())
	_, ok := get(t, kv, KeyCredential)
	assert.False(t, ok)
	_, ok = get(t, kv, KeyUser)
	assert.False(t, ok)
}

func TestSignIn_FailureKeepsPriorSession(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := &fakeAuth{user: breno, token: "first"}
	s := newStore(t, kv, auth)
	ctx := context.Background()
	require.NoError(t, s.SignIn(ctx, "breno@email.com", "123456"))

	auth.err = errors.New("network down")
	require.Error(t, s.SignIn(ctx, "other@email.com", "x"))

	cur := s.Current()
	require.True(t, cur.Authenticated())
	assert.Equal(t, "first", cur.Credential)
	assert.Equal(t, breno.ID, cur.User.ID)
	assert.Equal(t, "first", auth.attached)

	cred, _ := get(t, kv, KeyCredential)
	assert.Equal(t, "first", cred)
}

func TestSignIn_IgnoresCallerCancellation(t *testing.T) {
	auth := &fakeAuth{user: breno, token: "tok"}
	s := newStore(t, kvstore.NewMemoryStore(), auth, WithTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.SignIn(ctx, "breno@email.com", "123456"))
	assert.NoError(t, auth.ctxErr)
	assert.True(t, s.IsAuthenticated())
}

func TestSignIn_PersistFailure(t *testing.T) {
	auth := &fakeAuth{user: breno, token: "tok"}
	s := newStore(t, brokenKV{}, auth)

	err := s.SignIn(context.Background(), "breno@email.com", "123456")
	require.ErrorIs(t, err, errDisk)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, auth.attached)
}

// ---- SignOut ----

func TestSignOut_Completeness(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := &fakeAuth{user: breno, token: "tok"}
	s := newStore(t, kv, auth)
	ctx := context.Background()
	require.NoError(t, s.SignIn(ctx, "breno@email.com", "123456"))

	s.SignOut(ctx)

	_, ok := get(t, kv, KeyCredential)
	assert.False(t, ok)
	_, ok = get(t, kv, KeyUser)
	assert.False(t, ok)
	assert.Equal(t, Session{}, s.Current())
	assert.Empty(t, auth.attached)
}

func TestSignOut_WhenNotSignedIn(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := newStore(t, kv, &fakeAuth{})

	require.NotPanics(t, func() { s.SignOut(context.Background()) })
	assert.False(t, s.IsAuthenticated())
}

func TestSignOut_StorageFailureStillClears(t *testing.T) {
	auth := &fakeAuth{attached: "tok"}
	s := newStore(t, brokenKV{}, auth)
	s.current = Session{User: &breno, Credential: "tok"}

	s.SignOut(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, auth.attached)
}

// ---- UpdateUser ----

func TestUpdateUser_Persistence(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := &fakeAuth{user: breno, token: "tok"}
	s := newStore(t, kv, auth)
	ctx := context.Background()
	require.NoError(t, s.SignIn(ctx, "breno@email.com", "123456"))

	updated := breno
	updated.Name = "Breno Silva"
	updated.AvatarURL = "new.jpg"
	updated.Extra = map[string]json.RawMessage{"phone": json.RawMessage(`"555"`)}
	s.UpdateUser(ctx, updated)

	raw, ok := get(t, kv, KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, mustJSON(t, updated), raw)

	cred, ok := get(t, kv, KeyCredential)
	require.True(t, ok)
	assert.Equal(t, "tok", cred)
	assert.Equal(t, "tok", auth.attached)

	cur := s.Current()
	assert.Equal(t, "Breno Silva", cur.User.Name)
	assert.Equal(t, "tok", cur.Credential)
}

func TestUpdateUser_WhenNotSignedInIsIgnored(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := newStore(t, kv, &fakeAuth{})

	s.UpdateUser(context.Background(), breno)

	assert.False(t, s.IsAuthenticated())
	_, ok := get(t, kv, KeyUser)
	assert.False(t, ok)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	s := newStore(t, kvstore.NewMemoryStore(), &fakeAuth{user: breno, token: "tok"})
	require.NoError(t, s.SignIn(context.Background(), "breno@email.com", "123456"))

	cur := s.Current()
	cur.User.Name = "mutated"

	assert.Equal(t, "Breno", s.Current().User.Name)
}

func TestCredentialExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, credentialExpired("opaque-token", now))
	assert.False(t, credentialExpired(signedJWT(t, now.Add(time.Minute)), now))
	assert.True(t, credentialExpired(signedJWT(t, now.Add(-time.Minute)), now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.False(t, credentialExpired(noExp, now))
}

func ptr(s string) *string { return &s }
