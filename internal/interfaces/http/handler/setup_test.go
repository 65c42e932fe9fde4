package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const testUserHeader = "X-Test-User"

// testEnv is a gin engine whose protected routes trust the X-Test-User header
// in place of a bearer token, backed by an in-memory SQLite database
type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
	api    *gin.RouterGroup
	base   BaseHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1", func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			c.Set(middleware.UserIDKey, id)
		}
		c.Next()
	})

	return &testEnv{
		t:      t,
		db:     db,
		engine: engine,
		api:    api,
		base:   NewBaseHandler(common.DefaultLimits()),
	}
}

// do sends a request as user (uuid.Nil for anonymous) and decodes the envelope
func (e *testEnv) do(method, path string, user uuid.UUID, body any) (int, testutil.Envelope) {
	e.t.Helper()
	req := httptest.NewRequest(method, path, testutil.ToJSONReader(e.t, body))
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set(testUserHeader, user.String())
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w.Code, testutil.DecodeEnvelope(e.t, w)
}
