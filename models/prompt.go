package models

// PromptMode selects which generation endpoint a prompt is sent to.
type PromptMode string

const (
	PromptModeText  PromptMode = "text"
	PromptModeImage PromptMode = "image"
)

// PromptRequest is the body of a text- or image-generation call.
// Published is only meaningful in image mode; it is forced to false
// for text prompts before dispatch.
type PromptRequest struct {
	Prompt    string `json:"prompt"`
	ChatID    string `json:"chatId"`
	Published bool   `json:"isPublished"`
}
