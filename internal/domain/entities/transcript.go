package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Transcript is the archived output of a processed video
type Transcript struct {
	ID              uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID       uuid.UUID                                  `json:"session_id" gorm:"type:uuid;not null;index"`
	SourceURL       string                                     `json:"source_url" gorm:"type:text;not null;index"`
	Text            string                                     `json:"text" gorm:"type:text"`
	Language        string                                     `json:"language,omitempty" gorm:"type:varchar(20)"`
	Segments        []TranscriptSegment                        `json:"segments,omitempty" gorm:"type:jsonb;serializer:json"`
	Chunks          []GroupedChunk                             `json:"chunks,omitempty" gorm:"type:jsonb;serializer:json"`
	DurationSeconds float64                                    `json:"duration_seconds,omitempty"`
	ModelUsed       string                                     `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	AudioObject     string                                     `json:"audio_object,omitempty" gorm:"type:varchar(255)"`
	RawData         datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a transcript for the given source url
func NewTranscript(sourceURL string) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		SourceURL: sourceURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SegmentCount returns the number of transcribed segments
func (t *Transcript) SegmentCount() int {
	return len(t.Segments)
}
