package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Repository handles database operations for the catalog and accounts
type Repository struct {
	db     *sqlx.DB
	driver string
}

// NewRepository opens a database connection for the given driver
func NewRepository(driver, dsn string, maxConn, maxIdleConn int) (*Repository, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		// A single connection keeps in-memory databases shared and serializes writers
		maxConn, maxIdleConn = 1, 1
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	if driver == DriverPostgres {
		db.SetConnMaxLifetime(5 * time.Minute) // Shorter lifetime to avoid stale connections
		db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections sooner
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db, driver: driver}, nil
}

// Driver returns the name of the underlying database driver
func (r *Repository) Driver() string {
	return r.driver
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// likePattern builds a lower-cased "contains" pattern
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// ensureDir creates the parent directory of an on-disk sqlite database
func ensureDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}
