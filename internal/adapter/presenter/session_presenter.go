package presenter

import (
	"github.com/johnquangdev/video-chat/internal/adapter/dto/common"
	"github.com/johnquangdev/video-chat/internal/adapter/dto/session"
	"github.com/johnquangdev/video-chat/internal/adapter/dto/transcript"
	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

// ToSessionResponse converts a Session entity to SessionResponse DTO
func ToSessionResponse(s *entities.Session) *session.SessionResponse {
	if s == nil {
		return nil
	}

	response := &session.SessionResponse{
		ID:         s.ID.String(),
		State:      string(s.State),
		SourceURL:  s.SourceURL,
		ChunkCount: len(s.Chunks),
		Chunks:     ToChunkResponses(s.Chunks),
		TurnCount:  len(s.History),
		HasAudio:   s.AudioObject != "",
		LastError:  s.LastError,
		TimestampResponse: common.TimestampResponse{
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		},
	}

	if s.TranscriptID != nil {
		id := s.TranscriptID.String()
		response.TranscriptID = &id
	}

	return response
}

// ToChunkResponses converts grouped chunks to DTOs
func ToChunkResponses(chunks []entities.GroupedChunk) []session.ChunkResponse {
	if len(chunks) == 0 {
		return nil
	}
	out := make([]session.ChunkResponse, len(chunks))
	for i, c := range chunks {
		out[i] = session.ChunkResponse{
			Tag:           c.Tag(),
			AnchorSeconds: c.Anchor.Seconds(),
			Text:          c.Text,
		}
	}
	return out
}

// ToTurnResponses converts chat turns to DTOs; the result is never nil
func ToTurnResponses(turns []entities.ChatTurn) []session.ChatTurnResponse {
	out := make([]session.ChatTurnResponse, len(turns))
	for i, t := range turns {
		out[i] = session.ChatTurnResponse{
			Role:      string(t.Role),
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		}
	}
	return out
}

// ToTranscriptResponse converts an archived transcript to DTO.
// Text and chunks are left out of list views.
func ToTranscriptResponse(t *entities.Transcript, full bool) *transcript.TranscriptResponse {
	if t == nil {
		return nil
	}

	response := &transcript.TranscriptResponse{
		ID:              t.ID.String(),
		SessionID:       t.SessionID.String(),
		SourceURL:       t.SourceURL,
		Language:        t.Language,
		ModelUsed:       t.ModelUsed,
		DurationSeconds: t.DurationSeconds,
		SegmentCount:    t.SegmentCount(),
		TimestampResponse: common.TimestampResponse{
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
	}

	if full {
		response.Text = t.Text
		response.Chunks = ToChunkResponses(t.Chunks)
	}

	return response
}

// ToTranscriptResponses converts a transcript list to DTOs
func ToTranscriptResponses(ts []*entities.Transcript) []*transcript.TranscriptResponse {
	out := make([]*transcript.TranscriptResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTranscriptResponse(t, false))
	}
	return out
}
