package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if id != "" {
			req.Header.Set(RequestIDKey, id)
		}
		return serve(r, req)
	}

	t.Run("mints a uuid", func(t *testing.T) {
		w := get("")
		id := w.Header().Get(RequestIDKey)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses the client id", func(t *testing.T) {
		assert.Equal(t, "abc-123", get("abc-123").Header().Get(RequestIDKey))
	})

	t.Run("truncates long ids", func(t *testing.T) {
		assert.Len(t, get(strings.Repeat("x", 300)).Header().Get(RequestIDKey), MaxRequestIDLength)
	})

	t.Run("replaces ids with spaces", func(t *testing.T) {
		id := get("abc 123").Header().Get(RequestIDKey)
		assert.NotEqual(t, "abc 123", id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}

func TestCleanRequestID(t *testing.T) {
	assert.Equal(t, "req-1", cleanRequestID("req-1"))
	assert.Empty(t, cleanRequestID("bad\tid"))
	assert.Empty(t, cleanRequestID("ünicode"))
	assert.Empty(t, cleanRequestID(""))
}
