package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name   string
		ping   error
		status int
		body   string
	}{
		{"healthy", nil, http.StatusOK, `"status":"healthy"`},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, `"database":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler(pingerFunc(func() error { return tt.ping }), "test")
			r := gin.New()
			r.GET("/health", h.Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "refused")
		})
	}
}

func TestBackupHandler_NothingStored(t *testing.T) {
	env := newTestEnv(t)
	h := NewBackupHandler(env.base)
	env.api.GET("/backups/latest", h.Latest)
	env.api.POST("/backups/export", h.Export)
	env.api.POST("/backups/import", h.Import)
	env.api.DELETE("/backups/:id", h.Delete)
	user := uuid.New()

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/backups/latest"},
		{http.MethodPost, "/api/v1/backups/export"},
		{http.MethodPost, "/api/v1/backups/import"},
		{http.MethodDelete, "/api/v1/backups/42"},
	} {
		status, resp := env.do(req.method, req.path, user, nil)
		require.Equal(t, http.StatusOK, status, req.path)
		assert.True(t, resp.Success)
		assert.Equal(t, backupUnsupported, resp.Message)
	}
}
