package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

// ============================================
// Construction
// ============================================

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FileOutputRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bff.log")
	log, closer := New(&Config{Level: "info", Format: "json", Output: path, MaxSizeMB: 1})
	log.Info("order saved", zap.String("order_number", "ORD-1"))
	require.NoError(t, log.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"order_number":"ORD-1"`)
}

func TestNew_TeesExtraCores(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	log, closer := New(&Config{Level: "error", Format: "json", Output: "stderr"}, core)
	defer closer.Close()

	log.Debug("visible only to the extra core")
	assert.Equal(t, 1, recorded.Len())
}

// ============================================
// Context enrichment
// ============================================

func TestEnrich_AddsCorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithSession(ctx, "sess-1", "user-1")
	ctx = WithContext(ctx, base)

	L(ctx).Info("hello")

	entry := recorded.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "sess-1", fields["session_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, GetSessionID(context.Background()))
	assert.Empty(t, GetTraceID(context.Background()))
}

// ============================================
// Gin middleware
// ============================================

func TestGinMiddleware_LevelsAndSkip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core), "/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/orders/:id", func(c *gin.Context) {
		assert.NotNil(t, GetGinLogger(c))
		c.Status(http.StatusNotFound)
	})
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, p := range []string{"/health", "/orders/42?x=1", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "/orders/:id", entries[0].ContextMap()["route"])
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "Panic recovered", recorded.All()[0].Message)
}

// ============================================
// GORM logger
// ============================================

func TestGormLogger_Trace(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, 10*time.Millisecond)
	query := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), query, nil)
	assert.Equal(t, 0, recorded.Len(), "fast queries are not logged at warn")

	gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	gl.Trace(context.Background(), time.Now(), query, errors.New("disk full"))
	gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Slow SQL", entries[0].Message)
	assert.Equal(t, "SQL Error", entries[1].Message)

	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), query, errors.New("ignored"))
	assert.Equal(t, 2, recorded.Len())
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Warn, GormLevel("info"))
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
}
