package models

// SessionState is the lifecycle state of the client session.
// Transitions: Anonymous → Authenticating → Authenticated, and back to
// Anonymous on logout or credential rejection.
type SessionState int

const (
	SessionAnonymous SessionState = iota
	SessionAuthenticating
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticating:
		return "authenticating"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the authenticated identity for the process lifetime.
// Owned exclusively by the session service; the token's single durable
// copy lives in the credential store and is mirrored here.
type Session struct {
	User  User
	Token string
}
