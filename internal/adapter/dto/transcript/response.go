package transcript

import (
	"github.com/johnquangdev/video-chat/internal/adapter/dto/common"
	"github.com/johnquangdev/video-chat/internal/adapter/dto/session"
)

// TranscriptResponse represents an archived transcript
type TranscriptResponse struct {
	ID              string                  `json:"id"`
	SessionID       string                  `json:"session_id"`
	SourceURL       string                  `json:"source_url"`
	Language        string                  `json:"language,omitempty"`
	ModelUsed       string                  `json:"model_used,omitempty"`
	DurationSeconds float64                 `json:"duration_seconds,omitempty"`
	SegmentCount    int                     `json:"segment_count,omitempty"`
	Text            string                  `json:"text,omitempty"`
	Chunks          []session.ChunkResponse `json:"chunks,omitempty"`
	common.TimestampResponse
}
