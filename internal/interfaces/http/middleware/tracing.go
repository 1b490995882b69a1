package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig returns the otelgin server middleware, or a pass-through
// when tracing is disabled. Spans are named after the route pattern.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// RequestAttributes tags the current span with the request id. Place it
// after the tracing and request id middleware.
func RequestAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if requestID := GetRequestID(c); requestID != "" && span.IsRecording() {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		c.Next()
	}
}

// SessionAttributes adds the session and user ids to the current span.
// Place it after SessionAuth.
func SessionAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if sess, ok := GetSession(c); ok && span.IsRecording() {
			span.SetAttributes(
				attribute.String("session_id", sess.ID),
				attribute.String("user_id", sess.User.ID.String()),
			)
		}
		c.Next()
	}
}

// SpanErrorMarker marks the span of 4xx and 5xx responses with an error
// status. Place it after the tracing middleware.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}
		var message string
		switch {
		case statusCode >= http.StatusInternalServerError:
			message = "Internal Server Error"
		case statusCode == http.StatusUnauthorized:
			message = "Unauthorized"
		case statusCode == http.StatusNotFound:
			message = "Not Found"
		case statusCode == http.StatusTooManyRequests:
			message = "Rate Limited"
		default:
			message = "Client Error"
		}
		span.SetStatus(codes.Error, message)
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}
