package tui

import "github.com/MKhiriev/go-chat-client/internal/service"

// NavigateTo switches the login-flow router to another page. Payload, when
// set, is delivered to the target page as its first message.
type NavigateTo struct {
	Page    string
	Payload any
}

// AuthResult is produced by the async login and register commands. A nil Err
// means the session service is now authenticated and the login flow is done.
type AuthResult struct {
	Err error
}

type chatsRefreshedMsg struct {
	err error
}

type chatCreatedMsg struct {
	err error
}

type chatDeletedMsg struct {
	err error
}

type exchangeDoneMsg struct {
	exchange *service.Exchange
}

type themeSavedMsg struct {
	theme string
	err   error
}

type viewTickMsg struct{}
