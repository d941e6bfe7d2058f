// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the client's durable key-value storage: a small
// SQLite database holding the opaque session token and UI preferences that
// must survive process restarts.
//
// The only writer of the token key is the session service; the only writer
// of the theme key is the UI layer. Values are opaque strings — the store
// never inspects the token.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_repository_mock.go -package=mock

// CredentialRepository is the durable key-value storage for the session
// token and UI theme preference. Implementations must persist values across
// process restarts.
type CredentialRepository interface {
	// SaveToken durably stores the opaque session token, replacing any
	// previous value. An error means the token may NOT be assumed durable
	// and dependent components must not issue authenticated requests.
	SaveToken(ctx context.Context, token string) error

	// Token returns the stored session token. Returns [ErrSettingNotFound]
	// (wrapped) when no token has been persisted yet.
	Token(ctx context.Context) (string, error)

	// DeleteToken removes the stored session token. Deleting an absent
	// token is not an error.
	DeleteToken(ctx context.Context) error

	// SaveTheme durably stores the UI theme preference ("light"/"dark").
	SaveTheme(ctx context.Context, theme string) error

	// Theme returns the stored theme preference. Returns
	// [ErrSettingNotFound] (wrapped) when none has been persisted yet.
	Theme(ctx context.Context) (string, error)
}
