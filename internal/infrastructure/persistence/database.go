package persistence

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database is an open gorm connection plus the pool beneath it
type Database struct {
	DB     *gorm.DB
	Driver string
	pool   *sql.DB
}

// Open connects to the configured database. SQLite files get their schema
// from the gorm models on open; postgres schemas belong to the SQL
// migrations. A nil log keeps gorm silent.
func Open(cfg config.DatabaseConfig, log gormlogger.Interface) (*Database, error) {
	if log == nil {
		log = gormlogger.Discard
	}
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		PrepareStmt:            cfg.Driver != config.DriverSQLite,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}
	pool, err := db.DB()
	if err != nil {
		return nil, err
	}
	d := &Database{DB: db, Driver: cfg.Driver, pool: pool}

	if cfg.Driver == config.DriverSQLite {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		pool.SetMaxOpenConns(1)
	} else {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
		pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := pool.Ping(); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == config.DriverSQLite {
		if err := d.AutoMigrate(); err != nil {
			_ = pool.Close()
			return nil, err
		}
	}
	return d, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	}
	return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
}

// sqliteDSN turns on foreign keys and a busy timeout. The directory of a
// file database is created on demand.
func sqliteDSN(path string) string {
	switch path {
	case "":
		path = "fintrack.db"
	case ":memory:":
		return path
	}
	if dir := filepath.Dir(path); dir != "." {
		// a failure resurfaces as an open error with the full path
		_ = os.MkdirAll(dir, 0o755)
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

// System is the OpenTelemetry db.system value of the driver
func (d *Database) System() string {
	if d.Driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}

// AutoMigrate creates or updates every table from the gorm models
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func (d *Database) Ping() error { return d.pool.Ping() }

func (d *Database) Close() error { return d.pool.Close() }
