package identity

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/auth"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/backend"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/config"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) VerifyUser(ctx context.Context, creds identity.Credentials) (*backend.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.AuthResult), args.Error(1)
}

func (m *MockAuthenticator) Register(ctx context.Context, reg identity.Registration) (*backend.AuthResult, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.AuthResult), args.Error(1)
}

// memoryStore is a map-backed identity.SessionStore
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*identity.Session
	saveErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]*identity.Session{}}
}

func (s *memoryStore) Save(_ context.Context, sess *identity.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*identity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, identity.ErrSessionNotFound
	}
	return sess, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type dropRecorder struct {
	dropped []string
}

func (d *dropRecorder) Drop(sessionID string) bool {
	d.dropped = append(d.dropped, sessionID)
	return true
}

type authFixture struct {
	svc     *AuthService
	backend *MockAuthenticator
	store   *memoryStore
	drops   *dropRecorder
	now     time.Time
}

func setupAuth(t *testing.T) *authFixture {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.SessionConfig{
		Secret: "test-secret-key-that-is-long-enough-32",
		Issuer: "ic-orders-bff",
	})
	require.NoError(t, err)

	f := &authFixture{
		backend: new(MockAuthenticator),
		store:   newMemoryStore(),
		drops:   &dropRecorder{},
		now:     time.Now(),
	}
	f.svc = NewAuthService(f.backend, f.store, jwtService, f.drops, AuthServiceConfig{
		SessionTTL: time.Hour,
		Now:        func() time.Time { return f.now },
	}, zap.NewNop())
	return f
}

func authResult() *backend.AuthResult {
	return &backend.AuthResult{
		Token: "backend-bearer",
		User:  identity.User{ID: "u1", Name: "Asha", Phone: "9876543210"},
	}
}

// ============================================
// Login / Register
// ============================================

func TestAuthService_LoginOpensSession(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	f.backend.On("VerifyUser", ctx, identity.Credentials{Phone: "9876543210", Password: "secret"}).
		Return(authResult(), nil).Once()

	result, err := f.svc.Login(ctx, identity.Credentials{Phone: " 98765 43210 ", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Asha", result.User.Name)
	assert.WithinDuration(t, f.now.Add(time.Hour), result.ExpiresAt, time.Second)

	sess, err := f.svc.Resolve(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.SessionID, sess.ID)
	assert.Equal(t, "backend-bearer", sess.BackendToken)
	f.backend.AssertExpectations(t)
}

func TestAuthService_LoginRejected(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	f.backend.On("VerifyUser", ctx, mock.Anything).
		Return(nil, &backend.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"})

	_, err := f.svc.Login(ctx, identity.Credentials{Phone: "9876543210", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, f.store.sessions)
}

func TestAuthService_LoginBackendDown(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	transportErr := &backend.TransportError{Method: "POST", Path: backend.PathVerifyUser, Err: errors.New("connection refused")}
	f.backend.On("VerifyUser", ctx, mock.Anything).Return(nil, transportErr)

	_, err := f.svc.Login(ctx, identity.Credentials{Phone: "9876543210", Password: "secret"})
	var te *backend.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestAuthService_LoginValidatesLocally(t *testing.T) {
	f := setupAuth(t)
	_, err := f.svc.Login(context.Background(), identity.Credentials{Phone: "12", Password: "secret"})
	require.Error(t, err)
	f.backend.AssertNotCalled(t, "VerifyUser", mock.Anything, mock.Anything)
}

func TestAuthService_LoginStoreFailure(t *testing.T) {
	f := setupAuth(t)
	f.store.saveErr = errors.New("redis down")
	f.backend.On("VerifyUser", mock.Anything, mock.Anything).Return(authResult(), nil)

	_, err := f.svc.Login(context.Background(), identity.Credentials{Phone: "9876543210", Password: "secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}

func TestAuthService_Register(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	f.backend.On("Register", ctx, mock.MatchedBy(func(r identity.Registration) bool {
		return r.Name == "Asha" && r.Phone == "9876543210"
	})).Return(authResult(), nil).Once()

	result, err := f.svc.Register(ctx, identity.Registration{Name: " Asha ", Phone: "9876543210", Password: "secret1"})
	require.NoError(t, err)
	assert.Len(t, f.store.sessions, 1)
	assert.NotEmpty(t, result.Token)
}

// ============================================
// Resolve / Logout
// ============================================

func TestAuthService_ResolveInvalidToken(t *testing.T) {
	f := setupAuth(t)
	_, err := f.svc.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthService_ResolveAfterLogout(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	f.backend.On("VerifyUser", ctx, mock.Anything).Return(authResult(), nil)
	result, err := f.svc.Login(ctx, identity.Credentials{Phone: "9876543210", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, result.SessionID))
	assert.Equal(t, []string{result.SessionID}, f.drops.dropped)

	_, err = f.svc.Resolve(ctx, result.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthService_ResolveExpiredSession(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	f.backend.On("VerifyUser", ctx, mock.Anything).Return(authResult(), nil)
	result, err := f.svc.Login(ctx, identity.Credentials{Phone: "9876543210", Password: "secret"})
	require.NoError(t, err)

	// The token still verifies with the real clock; only the session clock moves.
	f.now = f.now.Add(2 * time.Hour)
	_, err = f.svc.Resolve(ctx, result.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Empty(t, f.store.sessions)
	assert.Equal(t, []string{result.SessionID}, f.drops.dropped)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******3210", maskPhone("9876543210"))
	assert.Equal(t, "****", maskPhone("123"))
}
