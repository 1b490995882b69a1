// Package handler holds the gin handlers of the orders API.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/backend"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/dto"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// BindJSON decodes the request body into req and answers 400 when it
// cannot. It reports whether the handler may continue.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return false
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
		return false
	}
	return true
}

// Session returns the session of the request, answering 401 when there is none
func (h *BaseHandler) Session(c *gin.Context) (*identity.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		h.Unauthorized(c, "Please log in to continue")
		return nil, false
	}
	return sess, true
}

// PathID returns the :id path parameter, answering 400 when it is blank
func (h *BaseHandler) PathID(c *gin.Context) (shared.ID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Missing id")
		return "", false
	}
	return shared.ID(req.ID), true
}

// HandleError converts an error into an HTTP response. Backend errors keep
// the backend's message; domain errors map through their code; anything
// else is logged and answered as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var (
		apiErr       *backend.APIError
		transportErr *backend.TransportError
		decodeErr    *backend.DecodeError
		domainErr    *shared.DomainError
	)
	switch {
	case errors.As(err, &apiErr):
		h.ErrorWithCode(c, backendErrorCode(apiErr.StatusCode), apiErr.Message)
	case errors.As(err, &transportErr):
		h.ErrorWithCode(c, dto.ErrCodeBackendUnavailable, "Unable to reach the order service. Please try again")
	case errors.As(err, &decodeErr):
		logger.L(c.Request.Context()).Warn("Unexpected backend response", zap.Error(err))
		h.ErrorWithCode(c, dto.ErrCodeBackend, "The order service returned an unexpected response")
	case errors.As(err, &domainErr):
		h.ErrorWithCode(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		h.ErrorWithCode(c, dto.ErrCodeBackendUnavailable, "Request timed out")
	default:
		logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
	}
}

// backendErrorCode maps a backend status to an API error code
func backendErrorCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return dto.ErrCodeUnauthorized
	case http.StatusForbidden:
		return dto.ErrCodeForbidden
	case http.StatusNotFound:
		return dto.ErrCodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return dto.ErrCodeInvalidInput
	}
	return dto.ErrCodeBackend
}
