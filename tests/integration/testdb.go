// Package integration runs FinTrack against a real PostgreSQL started with
// testcontainers, migrated with the embedded schema.
package integration

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fintrack/backend/internal/infrastructure/migration"
	"github.com/fintrack/backend/migrations"
)

const postgresImage = "postgres:16-alpine"

// one container per test binary, migrated once
var pg struct {
	sync.Mutex
	container testcontainers.Container
	dsn       string
}

// TestDB is a connection to the shared, migrated database
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	t     *testing.T
}

// NewSharedTestDB opens a connection to the package's PostgreSQL container,
// starting and migrating it on first use. Tests share data, so each one
// registers its own users.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	pg.Lock()
	defer pg.Unlock()
	if pg.container == nil {
		pg.container, pg.dsn = startPostgres(t)
	}

	db := openGorm(t, pg.dsn)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &TestDB{DB: db, SqlDB: sqlDB, t: t}
}

func startPostgres(t *testing.T) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("fintrack_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("fintrack"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err, "start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db := openGorm(t, dsn)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	migrate(t, sqlDB)

	return container, dsn
}

func openGorm(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	require.NoError(t, err, "connect to postgres")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	return db
}

func migrate(t *testing.T, sqlDB *sql.DB) {
	t.Helper()
	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err, "create migrator")
	require.NoError(t, m.Up(), "apply migrations")
}

// CleanupSharedContainer terminates the container. Call it from TestMain.
func CleanupSharedContainer() {
	pg.Lock()
	defer pg.Unlock()
	if pg.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = pg.container.Terminate(ctx)
	pg.container, pg.dsn = nil, ""
}

// InTx runs fn in a transaction that is always rolled back
func (tdb *TestDB) InTx(fn func(tx *gorm.DB)) {
	tdb.t.Helper()
	tx := tdb.DB.Begin()
	require.NoError(tdb.t, tx.Error)
	defer tx.Rollback()
	fn(tx)
}

// CreateUser inserts a user row through db and returns its ID. The password
// hash is not bcrypt, so the user cannot log in.
func CreateUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := db.Exec(`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, 'x', NOW(), NOW())`, id, "Test "+email, email).Error
	require.NoError(t, err, "insert user")
	return id
}
