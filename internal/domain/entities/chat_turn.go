package entities

import "time"

// Role identifies the author of a chat turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message of the conversation held by a session
type ChatTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserTurn creates a user turn stamped with the current time
func NewUserTurn(content string) ChatTurn {
	return ChatTurn{Role: RoleUser, Content: content, CreatedAt: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant turn stamped with the current time
func NewAssistantTurn(content string) ChatTurn {
	return ChatTurn{Role: RoleAssistant, Content: content, CreatedAt: time.Now().UTC()}
}
