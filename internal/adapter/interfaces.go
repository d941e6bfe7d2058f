// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the chat backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from transport failures and
// HTTP status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrUnauthorized] for 401,
// [ErrNetwork] when no response arrived at all).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chat-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the chat
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// The adapter is purely a translation layer: it never retries and never
// mutates session or chat state. The only state it holds is the in-memory
// mirror of the bearer token managed via SetToken.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. An empty string clears the mirror.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account. On success it stores the returned
	// bearer token via SetToken and returns the created user profile.
	Register(ctx context.Context, data models.RegistrationData) (models.User, error)

	// Login authenticates an existing account. On success it stores the
	// returned bearer token via SetToken and returns the user profile.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// GetUserData fetches the profile of the user the current token belongs
	// to. Requires a valid bearer token; returns [ErrUnauthorized] (wrapped)
	// when the token is stale or invalid.
	GetUserData(ctx context.Context) (models.User, error)

	// GetChats fetches the full ordered conversation list for the current
	// session, each chat carrying its message history.
	GetChats(ctx context.Context) ([]models.Chat, error)

	// CreateChat creates a new empty conversation and returns it.
	CreateChat(ctx context.Context) (models.Chat, error)

	// DeleteChat removes the conversation identified by chatID.
	DeleteChat(ctx context.Context, chatID string) error

	// SendTextPrompt submits a text-generation prompt for req.ChatID and
	// returns the generated reply text.
	SendTextPrompt(ctx context.Context, req models.PromptRequest) (string, error)

	// SendImagePrompt submits an image-generation prompt for req.ChatID and
	// returns the reference (URL) of the generated image.
	SendImagePrompt(ctx context.Context, req models.PromptRequest) (string, error)
}
