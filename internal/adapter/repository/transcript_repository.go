package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/internal/domain/repositories"
)

var _ repositories.TranscriptRepository = (*TranscriptRepository)(nil)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// CreateTranscript creates a new transcript
func (r *TranscriptRepository) CreateTranscript(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Create(transcript).Error
}

// GetTranscriptByID retrieves a transcript by ID
func (r *TranscriptRepository) GetTranscriptByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// ListTranscriptsBySession lists the transcripts a session produced, newest first.
// Segments are left out to keep the listing small.
func (r *TranscriptRepository) ListTranscriptsBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.Transcript, error) {
	var transcripts []*entities.Transcript
	err := r.db.WithContext(ctx).
		Omit("segments", "chunks", "raw_data").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&transcripts).Error
	if err != nil {
		return nil, err
	}
	return transcripts, nil
}
