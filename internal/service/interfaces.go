// Package service contains the client's conversation state-synchronization
// core: the session lifecycle, the authoritative chat list with its selected
// conversation, and the optimistic prompt/reply exchange protocol.
//
// State ownership follows a single-writer discipline: only the session
// service writes the session, only the chat service writes the chat
// collection and its selection, and only the exchange service writes the
// displayed message sequence. Cross-service reactions (reset on logout,
// refresh on login, view re-keying on selection change) are wired through
// explicit observer callbacks registered in [NewClientServices], so the same
// logic runs headlessly in tests.
package service

import (
	"context"

	"github.com/MKhiriev/go-chat-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/services_mock.go -package=servicemock

// SessionObserver is invoked after every session state transition. The
// context is the one the transition was driven by (logout uses a background
// context since it cannot block).
type SessionObserver func(ctx context.Context, state models.SessionState)

// SelectionObserver is invoked whenever the selected conversation reference
// changes. chat is nil when the selection became empty.
type SelectionObserver func(chat *models.Chat)

// SessionService owns the current-user identity and the credential
// lifecycle: bootstrap on startup, login/register, and logout.
type SessionService interface {
	// Bootstrap restores a previous session from the credential store. If a
	// token is present it is validated against the backend; a rejected or
	// stale token is deleted and the session stays anonymous. Safe to call
	// once per process lifetime.
	Bootstrap(ctx context.Context) error

	// Login authenticates with the backend. On success the token is durably
	// persisted before observers learn about the authenticated state, so no
	// dependent request can fire without it. On failure the session is left
	// anonymous and the wrapped adapter error is returned for inline display.
	Login(ctx context.Context, creds models.Credentials) error

	// Register creates an account and behaves like Login on success/failure.
	Register(ctx context.Context, data models.RegistrationData) error

	// Logout clears the stored credential and the in-memory session, then
	// notifies observers so dependent state is reset. It is synchronous and
	// cannot fail.
	Logout()

	// State returns the current session lifecycle state.
	State() models.SessionState

	// CurrentUser returns the authenticated user profile, if any.
	CurrentUser() (models.User, bool)

	// Subscribe registers an observer for session transitions. Must be
	// called during wiring, before any operation runs.
	Subscribe(obs SessionObserver)
}

// ChatService owns the authoritative conversation list for the current
// session and the selected-conversation reference. The selection is always
// either empty or an id present in the current list.
type ChatService interface {
	// Refresh replaces the in-memory list with the backend's. If the
	// current selection disappeared the first chat is selected; an empty
	// list clears the selection. On failure the list is cleared defensively
	// and the selection becomes empty.
	Refresh(ctx context.Context) error

	// EnsureChat guarantees a usable conversation: when nothing is
	// selected it creates a chat via the backend and refreshes.
	EnsureChat(ctx context.Context) error

	// Create starts a new empty conversation on the backend, refreshes the
	// list, and selects the created conversation.
	Create(ctx context.Context) (models.Chat, error)

	// Select sets the selection reference to an id present in the current
	// list. No network call is made.
	Select(id string) error

	// Delete removes the conversation on the backend and refreshes, letting
	// the normal selection rules pick a successor.
	Delete(ctx context.Context, id string) error

	// Chats returns a copy of the current conversation list.
	Chats() []models.Chat

	// Selected returns the currently selected conversation, if any.
	Selected() (models.Chat, bool)

	// Get returns the conversation with the given id, if present.
	Get(id string) (models.Chat, bool)

	// SubscribeSelection registers an observer for selection changes. Must
	// be called during wiring, before any operation runs.
	SubscribeSelection(obs SelectionObserver)
}

// ExchangeService drives the optimistic send protocol for the currently
// selected conversation and owns the displayed message sequence.
type ExchangeService interface {
	// Submit runs one full exchange: optimistic user-message append, one
	// backend call chosen by mode, and reconcile-or-rollback. It returns
	// the settled transaction, or nil when the submission was rejected as a
	// guarded no-op (blank prompt, no selection, or an exchange already in
	// flight for this conversation).
	Submit(ctx context.Context, prompt string, mode models.PromptMode, publish bool) *Exchange

	// SetActiveChat re-keys the displayed sequence to chat, replacing it
	// wholesale with that conversation's stored messages. A nil chat drops
	// the active reference but keeps the current view on screen until the
	// next non-nil selection.
	SetActiveChat(chat *models.Chat)

	// Messages returns a copy of the displayed message sequence.
	Messages() []models.Message

	// Sending reports whether an exchange is in flight for the currently
	// selected conversation.
	Sending() bool
}
