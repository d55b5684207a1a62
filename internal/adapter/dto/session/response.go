package session

import (
	"time"

	"github.com/johnquangdev/video-chat/internal/adapter/dto/common"
)

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID           string          `json:"id"`
	State        string          `json:"state"`
	SourceURL    string          `json:"source_url,omitempty"`
	ChunkCount   int             `json:"chunk_count"`
	Chunks       []ChunkResponse `json:"chunks,omitempty"`
	TurnCount    int             `json:"turn_count"`
	TranscriptID *string         `json:"transcript_id,omitempty"`
	HasAudio     bool            `json:"has_audio"`
	LastError    *string         `json:"last_error,omitempty"`
	common.TimestampResponse
}

// ChunkResponse represents one grouped chunk
type ChunkResponse struct {
	Tag           string  `json:"tag"`
	AnchorSeconds float64 `json:"anchor_seconds"`
	Text          string  `json:"text"`
}

// ChatTurnResponse represents one chat message
type ChatTurnResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AskResponse contains the user turn and the assistant turn appended by a question
type AskResponse struct {
	Turns []ChatTurnResponse `json:"turns"`
}

// HistoryResponse contains the whole conversation, oldest first
type HistoryResponse struct {
	SessionID string             `json:"session_id"`
	Turns     []ChatTurnResponse `json:"turns"`
}

// AudioURLResponse is a temporary link to the archived audio
type AudioURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
