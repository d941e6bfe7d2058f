package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chat-client/internal/logger"
)

// Keys under which client settings are persisted in the settings table.
const (
	keyToken = "token"
	keyTheme = "theme"
)

type credentialRepository struct {
	*DB
	logger *logger.Logger
}

func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *credentialRepository) SaveToken(ctx context.Context, token string) error {
	return r.upsert(ctx, keyToken, token)
}

func (r *credentialRepository) Token(ctx context.Context) (string, error) {
	return r.get(ctx, keyToken)
}

func (r *credentialRepository) DeleteToken(ctx context.Context) error {
	return r.delete(ctx, keyToken)
}

func (r *credentialRepository) SaveTheme(ctx context.Context, theme string) error {
	return r.upsert(ctx, keyTheme, theme)
}

func (r *credentialRepository) Theme(ctx context.Context) (string, error) {
	return r.get(ctx, keyTheme)
}

func (r *credentialRepository) upsert(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert("settings").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query for %s: %w", key, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to execute settings upsert")
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrSettingNotSaved, key)
	}

	return nil
}

func (r *credentialRepository) get(ctx context.Context, key string) (string, error) {
	query, args, err := sq.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build select query for %s: %w", key, err)
	}

	var value string
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		r.logger.Err(err).Str("key", key).Msg("failed to read setting")
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	return value, nil
}

func (r *credentialRepository) delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query for %s: %w", key, err)
	}

	// deleting an absent key is a no-op
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to delete setting")
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}

	return nil
}
