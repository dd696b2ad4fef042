package history

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation turn, ordered and append-only within a
// conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type record struct {
	messages     []Message
	lastActivity time.Time
}
