package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantState  string
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantState:  "ok",
		},
		{
			name: "all healthy",
			checks: map[string]HealthCheck{
				"database": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
		},
		{
			name: "one failing",
			checks: map[string]HealthCheck{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("ico", "1.2.3", tt.checks)
			c, w := newContext(http.MethodGet, "/health")

			h.Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantState, data["status"])
			assert.Equal(t, "1.2.3", data["version"])
		})
	}
}
