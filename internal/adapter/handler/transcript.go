package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/errors"
	"github.com/johnquangdev/video-chat/internal/adapter/dto/common"
	"github.com/johnquangdev/video-chat/internal/adapter/presenter"
	"github.com/johnquangdev/video-chat/internal/domain/repositories"
)

// Transcript handles the transcript archive endpoints
type Transcript struct {
	repo   repositories.TranscriptRepository
	logger *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler. repo may be nil when no database is configured.
func NewTranscriptHandler(repo repositories.TranscriptRepository, logger *zap.Logger) *Transcript {
	return &Transcript{repo: repo, logger: logger}
}

// GetTranscript returns an archived transcript
// @Summary      Get transcript
// @Description  Returns an archived transcript with its full text and grouped chunks
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  transcript.TranscriptResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid transcript ID"
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Failure      503  {object}  map[string]interface{}  "Transcript archive is not configured"
// @Router       /v1/transcripts/{id} [get]
func (h *Transcript) GetTranscript(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errors.ErrUnavailable("Transcript archive"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid transcript ID"))
	}

	t, err := h.repo.GetTranscriptByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if t == nil {
		return HandleError(h.logger, c, errors.ErrTranscriptNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(t, true))
}

// ListSessionTranscripts lists the transcripts a session produced
// @Summary      List session transcripts
// @Description  Lists archived transcripts of a session, newest first, without text and chunks
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.ListResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid session ID"
// @Failure      503  {object}  map[string]interface{}  "Transcript archive is not configured"
// @Router       /v1/sessions/{id}/transcripts [get]
func (h *Transcript) ListSessionTranscripts(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errors.ErrUnavailable("Transcript archive"))
	}

	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ts, err := h.repo.ListTranscriptsBySession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data:  presenter.ToTranscriptResponses(ts),
		Count: len(ts),
	})
}
