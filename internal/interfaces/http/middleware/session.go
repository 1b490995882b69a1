package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionKey    = "session"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// SessionResolver turns a session token into a live session
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*identity.Session, error)
}

// SessionConfig holds configuration for the session middleware
type SessionConfig struct {
	Resolver SessionResolver
	// CookieName is read when no Authorization header is sent
	CookieName string
	Logger     *zap.Logger
}

// SessionAuth rejects requests that carry no live session and stores the
// session on the gin and request contexts of those that do
func SessionAuth(cfg SessionConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := sessionToken(c, cfg.CookieName)
		if token == "" {
			abortUnauthorized(c, "Please log in to continue")
			return
		}

		sess, err := cfg.Resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				abortUnauthorized(c, "Your session has expired. Please log in again")
				return
			}
			logger.Enrich(c.Request.Context(), log).Error("Failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "An unexpected error occurred", GetRequestID(c)))
			return
		}

		c.Set(SessionKey, sess)
		c.Request = c.Request.WithContext(logger.WithSession(c.Request.Context(), sess.ID, sess.User.ID.String()))
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader(AuthHeaderKey); header != "" {
		if token, ok := strings.CutPrefix(header, BearerPrefix); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetSession returns the session stored by SessionAuth
func GetSession(c *gin.Context) (*identity.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*identity.Session)
	return sess, ok && sess != nil
}
