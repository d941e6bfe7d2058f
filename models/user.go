package models

import "time"

// User represents an account entity returned by the chat backend.
// It carries identity attributes only; the session token travels
// separately in [AuthResponse] and must never be embedded here.
type User struct {
	// ID is the backend-assigned unique identifier of the user.
	ID string `json:"_id"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// Email is the unique login identifier used during authentication.
	Email string `json:"email"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials carries the fields sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationData carries the fields sent to the registration endpoint.
type RegistrationData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
