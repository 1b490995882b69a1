package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appidentity "github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
)

// CookieConfig describes the session cookie set on login
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

// AuthHandler handles login, registration and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookie      CookieConfig
	now         func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		now:         time.Now,
	}
}

// SessionResponse is the user view of the current session
type SessionResponse struct {
	User      identity.User `json:"user"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// Login godoc
// @Summary      Log in with phone number and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.Credentials true "Login credentials"
// @Success      200 {object} dto.Response{data=appidentity.LoginResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.Credentials
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, result.Token, result.ExpiresAt)
	h.Success(c, result)
}

// Register godoc
// @Summary      Create an account and log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.Registration true "New account"
// @Success      201 {object} dto.Response{data=appidentity.LoginResult}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.Registration
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, result.Token, result.ExpiresAt)
	h.Created(c, result)
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Success      204
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), sess.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.clearCookie(c)
	h.NoContent(c)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=SessionResponse}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	h.Success(c, SessionResponse{User: sess.User, ExpiresAt: sess.ExpiresAt})
}

func (h *AuthHandler) setCookie(c *gin.Context, token string, expiresAt time.Time) {
	if h.cookie.Name == "" {
		return
	}
	maxAge := int(expiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}
