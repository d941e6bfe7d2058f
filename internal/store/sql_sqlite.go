package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
)

// NewConnectSQLite opens (creating if needed) the local SQLite database file
// named by cfg.DSN and verifies the connection with a ping.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureDBFile(cfg.DSN); err != nil {
		log.Err(err).Str("dsn", cfg.DSN).Msg("cannot create database file")
		return nil, fmt.Errorf("create database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("dsn", cfg.DSN).Msg("cannot open database")
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("dsn", cfg.DSN).Msg("database ping failed")
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Debug().Str("dsn", cfg.DSN).Msg("local database ready")
	return &DB{DB: conn, logger: log}, nil
}

// ensureDBFile creates an empty file at path unless one already exists, so
// sql.Open never fails on a missing database.
func ensureDBFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}
