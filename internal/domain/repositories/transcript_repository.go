package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for archived transcripts
type TranscriptRepository interface {
	CreateTranscript(ctx context.Context, transcript *entities.Transcript) error
	// GetTranscriptByID returns nil, nil when no row matches
	GetTranscriptByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	ListTranscriptsBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.Transcript, error)
}
