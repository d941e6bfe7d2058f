package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
)

func newFileStorages(t *testing.T, dsn string) *ClientStorages {
	t.Helper()
	storages, err := NewClientStorages(config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	return storages
}

func TestNewClientStorages_CreatesFileAndMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "client.db")

	storages := newFileStorages(t, dsn)

	// a fresh store has no token yet
	_, err := storages.Credentials.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSettingNotFound))
}

func TestCredentials_TokenSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	first := newFileStorages(t, dsn)
	require.NoError(t, first.Credentials.SaveToken(ctx, "persist-me"))

	// simulate process restart: a second storage stack over the same file
	second := newFileStorages(t, dsn)
	token, err := second.Credentials.Token(ctx)

	require.NoError(t, err)
	assert.Equal(t, "persist-me", token)
}

func TestCredentials_SaveTokenReplacesValue(t *testing.T) {
	ctx := context.Background()
	storages := newFileStorages(t, filepath.Join(t.TempDir(), "client.db"))

	require.NoError(t, storages.Credentials.SaveToken(ctx, "first"))
	require.NoError(t, storages.Credentials.SaveToken(ctx, "second"))

	token, err := storages.Credentials.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestCredentials_DeleteTokenKeepsTheme(t *testing.T) {
	ctx := context.Background()
	storages := newFileStorages(t, filepath.Join(t.TempDir(), "client.db"))

	require.NoError(t, storages.Credentials.SaveToken(ctx, "tok"))
	require.NoError(t, storages.Credentials.SaveTheme(ctx, "dark"))

	require.NoError(t, storages.Credentials.DeleteToken(ctx))

	_, err := storages.Credentials.Token(ctx)
	assert.True(t, errors.Is(err, ErrSettingNotFound))

	theme, err := storages.Credentials.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}
