package models

// Envelope is the common wrapper every backend response follows:
// {success: boolean, message?: string, <payload>}. Payload fields live
// in the concrete response types that embed it.
type Envelope struct {
	// Success reports whether the backend accepted the request.
	// A 2xx status with Success=false is still a failure.
	Success bool `json:"success"`

	// Message is an optional human-readable explanation. For failures it
	// carries the reason shown inline in the UI.
	Message string `json:"message,omitempty"`
}

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	Envelope
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UserResponse is returned by the current-user endpoint.
type UserResponse struct {
	Envelope
	User User `json:"user"`
}

// ChatsResponse is returned by the chat-list endpoint. Chats are ordered
// by the backend; the client treats that order as authoritative.
type ChatsResponse struct {
	Envelope
	Chats []Chat `json:"chats"`
}

// ChatResponse is returned by the chat-creation endpoint.
type ChatResponse struct {
	Envelope
	Chat Chat `json:"chat"`
}

// TextReplyResponse is returned by the text-generation endpoint.
// Reply is carried in the envelope's message field by the backend,
// so the generated text lives in Envelope.Message on success.
type TextReplyResponse struct {
	Envelope
}

// ImageReplyResponse is returned by the image-generation endpoint.
type ImageReplyResponse struct {
	Envelope
	ImageURL string `json:"imageUrl"`
}
