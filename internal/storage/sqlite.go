package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"kakeibo/internal/common"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStorage implements the service.Storage interface using SQLite.
// It owns the single database handle for the process; open it once at
// startup and close it at shutdown.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// wrapConstraintError converts driver-level constraint violations into the
// application's sentinel errors while preserving the driver message so it
// can be surfaced to the user verbatim. Other errors pass through unchanged.
func wrapConstraintError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return fmt.Errorf("%w: %v", common.ErrDuplicateEntry, err)
	case sqlite3.ErrConstraintCheck:
		return fmt.Errorf("%w: %v", common.ErrInvalidAmount, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", common.ErrInvalidCategory, err)
	default:
		return err
	}
}
