package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation. The sequence a chat holds
// is append-only from the client's point of view; the authoritative order
// is whatever the backend returns on the next refresh.
type Message struct {
	// ID is a client-side identifier assigned to optimistic messages so a
	// failed exchange can remove exactly the entry it added. Messages that
	// come from the backend keep the zero value.
	ID string `json:"-"`

	// Role is the message author: user or assistant.
	Role Role `json:"role"`

	// Content is the message body: generated text, or an image reference
	// for image-mode replies.
	Content string `json:"content"`

	// IsImage marks assistant replies whose Content is an image reference.
	IsImage bool `json:"isImage,omitempty"`

	// Timestamp is when the message was produced.
	Timestamp time.Time `json:"timestamp"`
}

// Chat is one conversation thread owned by the current user.
// Identity is the ID; IDs are unique within a user's chat list.
type Chat struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
