package db

import (
	"fmt"
	"net/url"

	zlog "github.com/rs/zerolog/log"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the database backend
type Options struct {
	Path        string // Local SQLite file
	TursoURL    string // libsql://... ; takes precedence over Path when set
	TursoToken  string
	Environment string
}

// Initialize sets up the database connection.
// A Turso URL opens a remote libsql database, otherwise a local SQLite file in WAL mode.
func Initialize(opts Options) error {
	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	var err error
	if opts.TursoURL != "" {
		DB, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        tursoDSN(opts.TursoURL, opts.TursoToken),
		}), gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to turso database: %w", err)
		}
		zlog.Info().Msg("Database connection established (Turso/libsql)")
		return nil
	}

	dsn := opts.Path + "?_journal_mode=WAL&_busy_timeout=5000"
	DB, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	zlog.Info().Str("path", opts.Path).Msg("Database connection established (WAL mode enabled)")
	return nil
}

// tursoDSN appends the auth token as the libsql driver expects it
func tursoDSN(rawURL, token string) string {
	if token == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("authToken", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zlog.Info().Int("models", len(models)).Msg("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
