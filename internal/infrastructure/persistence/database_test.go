package persistence

import (
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	pool, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	// gorm pings once while opening
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: pool, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return &Database{DB: gormDB, Driver: config.DriverPostgres, pool: pool}, mock
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
	assert.Equal(t, "sqlite", db.System())
	assert.Equal(t, 1, db.pool.Stats().MaxOpenConnections)
	for _, m := range models.All() {
		assert.True(t, db.DB.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestOpen_SQLiteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "fintrack.db")

	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: path}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.FileExists(t, path)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "fintrack.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN(""))
}

func TestDatabase_PingAndClose(t *testing.T) {
	db, mock := newMockDatabase(t)
	assert.Equal(t, "postgresql", db.System())

	mock.ExpectPing()
	mock.ExpectClose()

	assert.NoError(t, db.Ping())
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
