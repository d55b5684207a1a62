package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/errors"
	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// parseSessionID reads the :id path parameter
func parseSessionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("Invalid session ID")
	}
	return id, nil
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessWithStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessWithStatus writes a standardized success response with a custom status
func HandleSuccessWithStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// FromDomainError maps pipeline and session errors onto AppErrors.
// The URL check comes before the fetch check since an invalid URL is also a fetch failure,
// and a malformed transcript from a backend is reported as such rather than as a transcription failure.
func FromDomainError(err error, sessionID uuid.UUID) errors.AppError {
	id := sessionID.String()

	var appErr errors.AppError
	switch {
	case stdErrors.As(err, &appErr):
		return appErr
	case stdErrors.Is(err, entities.ErrSessionNotFound):
		return errors.ErrSessionNotFound(id)
	case stdErrors.Is(err, entities.ErrSessionBusy):
		return errors.ErrSessionBusy(id)
	case stdErrors.Is(err, entities.ErrSessionNotReady):
		return errors.ErrSessionNotReady(id)
	case stdErrors.Is(err, entities.ErrEmptyQuestion):
		return errors.ErrEmptyQuestion()
	case stdErrors.Is(err, entities.ErrInvalidURL):
		return errors.ErrInvalidVideoURL(err)
	case stdErrors.Is(err, entities.ErrFetch):
		return errors.ErrFetchFailed(err)
	case stdErrors.Is(err, entities.ErrInvalidSegment):
		return errors.ErrInvalidSegment(err)
	case stdErrors.Is(err, entities.ErrTranscription):
		return errors.ErrTranscriptionFailed(err)
	case stdErrors.Is(err, entities.ErrIndex):
		return errors.ErrIndexFailed(err)
	case stdErrors.Is(err, entities.ErrChatSession):
		return errors.ErrChatSessionFailed(err)
	case stdErrors.Is(err, entities.ErrAsk):
		return errors.ErrAskFailed(err)
	}
	return errors.ErrInternal(err)
}
