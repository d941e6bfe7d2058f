package service

import "errors"

var (
	// ErrChatNotFound is returned by Select when the id is not present in
	// the current conversation list.
	ErrChatNotFound = errors.New("chat not found")

	// ErrLoginOnServer wraps adapter failures during login.
	ErrLoginOnServer = errors.New("login failed")

	// ErrRegisterOnServer wraps adapter failures during registration.
	ErrRegisterOnServer = errors.New("registration failed")

	// ErrCredentialNotPersisted is returned when the token could not be
	// durably stored; the session stays anonymous because dependent
	// components must never fire authenticated requests without a durable
	// credential.
	ErrCredentialNotPersisted = errors.New("credential not persisted")
)
