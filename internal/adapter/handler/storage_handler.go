package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/errors"
	"github.com/johnquangdev/video-chat/internal/adapter/dto/session"
	"github.com/johnquangdev/video-chat/internal/usecase/pipeline"
)

// AudioLinker generates temporary links to archived audio
type AudioLinker interface {
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Storage handles archived audio endpoints
type Storage struct {
	svc    pipeline.UseCase
	linker AudioLinker
	expiry time.Duration
	logger *zap.Logger
}

// NewStorageHandler creates a new storage handler. linker may be nil when no object storage is configured.
func NewStorageHandler(svc pipeline.UseCase, linker AudioLinker, expiry time.Duration, logger *zap.Logger) *Storage {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Storage{svc: svc, linker: linker, expiry: expiry, logger: logger}
}

// AudioURL generates a download URL for the audio of the processed video
// @Summary      Audio download URL
// @Description  Generate a presigned URL for the archived audio of the last processed video
// @Tags         Storage
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  session.AudioURLResponse
// @Failure      404  {object}  map[string]interface{}  "Session or audio not found"
// @Failure      503  {object}  map[string]interface{}  "Object storage is not configured"
// @Router       /v1/sessions/{id}/audio [get]
func (h *Storage) AudioURL(c echo.Context) error {
	if h.linker == nil {
		return HandleError(h.logger, c, errors.ErrUnavailable("Object storage"))
	}

	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	s, err := h.svc.GetSession(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	if s.AudioObject == "" {
		return HandleError(h.logger, c, errors.ErrNotFound("Audio").WithDetail("session_id", id.String()))
	}

	url, err := h.linker.GetFileURL(ctx, s.AudioObject, h.expiry)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to generate download URL",
				zap.String("object_name", s.AudioObject),
				zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, session.AudioURLResponse{
		URL:       url,
		ExpiresAt: time.Now().UTC().Add(h.expiry),
	})
}
