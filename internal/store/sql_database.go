package store

import (
	"database/sql"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/migrations"
)

// DB wraps the sql.DB handle of the local database together with a logger.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies all embedded schema migrations to the wrapped database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
