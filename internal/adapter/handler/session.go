package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/errors"
	"github.com/johnquangdev/video-chat/internal/adapter/dto/session"
	"github.com/johnquangdev/video-chat/internal/adapter/presenter"
	"github.com/johnquangdev/video-chat/internal/usecase/pipeline"
)

// Session handles session, processing and chat endpoints
type Session struct {
	svc    pipeline.UseCase
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc pipeline.UseCase, logger *zap.Logger) *Session {
	return &Session{svc: svc, logger: logger}
}

// CreateSession creates an empty session
// @Summary      Create session
// @Description  Creates an idle session that can process one video at a time
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  session.SessionResponse
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /v1/sessions [post]
func (h *Session) CreateSession(c echo.Context) error {
	s, err := h.svc.CreateSession(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToSessionResponse(s))
}

// GetSession returns a session
// @Summary      Get session
// @Description  Returns the session state and the chunks of the last processed video
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  session.SessionResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid session ID"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Router       /v1/sessions/{id} [get]
func (h *Session) GetSession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	s, err := h.svc.GetSession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s))
}

// DeleteSession removes a session
// @Summary      Delete session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Session deleted"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Failure      409  {object}  map[string]interface{}  "Session is busy"
// @Router       /v1/sessions/{id} [delete]
func (h *Session) DeleteSession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.DeleteSession(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"session_id": id.String(), "deleted": true})
}

// ProcessVideo runs the whole pipeline for a video url
// @Summary      Process video
// @Description  Downloads the audio, transcribes it, groups the transcript and builds the chat index. Blocks until the session is ready or the run fails.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Session ID (UUID)"
// @Param        request  body      session.ProcessVideoRequest  true  "Video url"
// @Success      200      {object}  session.SessionResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid payload or url"
// @Failure      404      {object}  map[string]interface{}  "Session not found"
// @Failure      409      {object}  map[string]interface{}  "Session is busy"
// @Failure      422      {object}  map[string]interface{}  "Malformed transcript"
// @Failure      502      {object}  map[string]interface{}  "A pipeline stage failed"
// @Router       /v1/sessions/{id}/process [post]
func (h *Session) ProcessVideo(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req session.ProcessVideoRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	s, err := h.svc.Process(c.Request().Context(), id, req.URL)
	if err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s))
}

// Ask answers a question about the processed video
// @Summary      Ask question
// @Description  Answers a question with the video transcript as context and appends both turns to the history
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Session ID (UUID)"
// @Param        request  body      session.AskRequest  true  "Question"
// @Success      200      {object}  session.AskResponse
// @Failure      400      {object}  map[string]interface{}  "Empty question"
// @Failure      404      {object}  map[string]interface{}  "Session not found"
// @Failure      409      {object}  map[string]interface{}  "Session not ready or busy"
// @Failure      502      {object}  map[string]interface{}  "Chat model failed"
// @Router       /v1/sessions/{id}/ask [post]
func (h *Session) Ask(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req session.AskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrEmptyQuestion())
	}

	turns, err := h.svc.Ask(c.Request().Context(), id, req.Question)
	if err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	return HandleSuccess(h.logger, c, session.AskResponse{Turns: presenter.ToTurnResponses(turns)})
}

// History returns the chat history
// @Summary      Chat history
// @Tags         Chat
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  session.HistoryResponse
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Router       /v1/sessions/{id}/history [get]
func (h *Session) History(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	turns, err := h.svc.History(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	return HandleSuccess(h.logger, c, session.HistoryResponse{
		SessionID: id.String(),
		Turns:     presenter.ToTurnResponses(turns),
	})
}

// ResetSession clears the video and the history
// @Summary      Reset session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  session.SessionResponse
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Failure      409  {object}  map[string]interface{}  "Session is busy"
// @Router       /v1/sessions/{id}/reset [post]
func (h *Session) ResetSession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	s, err := h.svc.ResetSession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, FromDomainError(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s))
}
