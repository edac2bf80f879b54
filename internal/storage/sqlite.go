// Package storage provides the SQLite persistence layer for the application.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/centavo-dev/centavo/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// dbtx abstracts over *sql.DB and *sql.Tx so every query runs identically
// inside and outside an explicit transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements every Storage data operation against a dbtx.
type queries struct {
	q dbtx
}

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	queries
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		queries: queries{q: db},
		db:      db,
		dbPath:  dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTx{
		queries: queries{q: tx},
		tx:      tx,
	}, nil
}

// sqliteTx wraps sql.Tx to implement service.Transaction. Data operations
// come from the embedded queries running against the transaction.
type sqliteTx struct {
	queries
	tx *sql.Tx
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// BeginTx inside a transaction is not supported.
func (t *sqliteTx) BeginTx(_ context.Context) (service.Transaction, error) {
	return nil, fmt.Errorf("nested transactions are not supported")
}

// Migrate inside a transaction is not supported.
func (t *sqliteTx) Migrate(_ context.Context) error {
	return fmt.Errorf("cannot migrate inside a transaction")
}

// Close is a no-op inside a transaction; the owning storage holds the
// connection.
func (t *sqliteTx) Close() error {
	return nil
}
