// Package identity logs users in through the backend and binds each login to
// a server-side session addressed by a signed session token.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/auth"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/backend"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
)

// Authentication errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid phone number or password")
	ErrInvalidSession     = shared.NewDomainError("INVALID_SESSION", "Session is invalid or has expired")
)

// Authenticator is the auth part of the backend API
type Authenticator interface {
	VerifyUser(ctx context.Context, creds identity.Credentials) (*backend.AuthResult, error)
	Register(ctx context.Context, reg identity.Registration) (*backend.AuthResult, error)
}

// TokenService signs and checks session tokens
type TokenService interface {
	Issue(session *identity.Session) (string, error)
	Validate(token string) (*auth.Claims, error)
}

// CacheDropper releases the reference cache of a session
type CacheDropper interface {
	Drop(sessionID string) bool
}

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	SessionTTL time.Duration
	Now        func() time.Time
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		SessionTTL: 12 * time.Hour,
		Now:        time.Now,
	}
}

// LoginResult is returned by Login and Register
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      identity.User `json:"user"`
	SessionID string        `json:"-"`
}

// AuthService handles authentication operations
type AuthService struct {
	backend Authenticator
	store   identity.SessionStore
	tokens  TokenService
	caches  CacheDropper
	config  AuthServiceConfig
	logger  *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	backend Authenticator,
	store identity.SessionStore,
	tokens TokenService,
	caches CacheDropper,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = DefaultAuthServiceConfig().SessionTTL
	}
	return &AuthService{
		backend: backend,
		store:   store,
		tokens:  tokens,
		caches:  caches,
		config:  config,
		logger:  logger,
	}
}

// Login verifies the credentials with the backend and opens a session
func (s *AuthService) Login(ctx context.Context, creds identity.Credentials) (*LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	s.logger.Info("Login attempt", zap.String("phone", maskPhone(creds.Phone)))

	result, err := s.backend.VerifyUser(ctx, creds)
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.logger.Warn("Login rejected by backend", zap.String("phone", maskPhone(creds.Phone)))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	return s.openSession(ctx, result)
}

// Register creates an account with the backend and opens a session for it
func (s *AuthService) Register(ctx context.Context, reg identity.Registration) (*LoginResult, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	result, err := s.backend.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.logger.Info("User registered", zap.String("user_id", result.User.ID.String()))
	return s.openSession(ctx, result)
}

func (s *AuthService) openSession(ctx context.Context, result *backend.AuthResult) (*LoginResult, error) {
	sess, err := identity.NewSession(result.User, result.Token, s.config.Now(), s.config.SessionTTL)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.tokens.Issue(sess)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Session opened",
		zap.String("session_id", sess.ID),
		zap.String("user_id", sess.User.ID.String()),
		zap.Time("expires_at", sess.ExpiresAt))
	return &LoginResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      sess.User,
		SessionID: sess.ID,
	}, nil
}

// Resolve returns the live session addressed by a session token
func (s *AuthService) Resolve(ctx context.Context, token string) (*identity.Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	sess, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, identity.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.IsExpired(s.config.Now()) || sess.User.ID.String() != claims.Subject {
		_ = s.store.Delete(ctx, sess.ID)
		s.caches.Drop(sess.ID)
		return nil, ErrInvalidSession
	}
	return sess, nil
}

// Logout ends the session and releases its reference cache
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.caches.Drop(sessionID)
	logger.Enrich(ctx, s.logger).Info("Session closed", zap.String("session_id", sessionID))
	return nil
}

// maskPhone keeps the last four digits of a phone number
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
