package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/video-chat/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	sessionHandler    *Session
	transcriptHandler *Transcript
	storageHandler    *Storage
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, sessionHandler *Session, transcriptHandler *Transcript, storageHandler *Storage) *Router {
	return &Router{
		cfg:               cfg,
		sessionHandler:    sessionHandler,
		transcriptHandler: transcriptHandler,
		storageHandler:    storageHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupSessionRoutes(v1)
	rt.setupTranscriptRoutes(v1)
}

// setupSessionRoutes configures session, processing and chat routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessionGroup := g.Group("/sessions")

	if rt.sessionHandler != nil {
		sessionGroup.POST("", rt.sessionHandler.CreateSession)
		sessionGroup.GET("/:id", rt.sessionHandler.GetSession)
		sessionGroup.DELETE("/:id", rt.sessionHandler.DeleteSession)
		sessionGroup.POST("/:id/process", rt.sessionHandler.ProcessVideo)
		sessionGroup.POST("/:id/ask", rt.sessionHandler.Ask)
		sessionGroup.GET("/:id/history", rt.sessionHandler.History)
		sessionGroup.POST("/:id/reset", rt.sessionHandler.ResetSession)
	} else {
		sessionGroup.Any("*", rt.notImplemented)
	}

	if rt.storageHandler != nil {
		sessionGroup.GET("/:id/audio", rt.storageHandler.AudioURL)
	} else {
		sessionGroup.GET("/:id/audio", rt.notImplemented)
	}
}

// setupTranscriptRoutes configures transcript archive routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	if rt.transcriptHandler != nil {
		g.GET("/transcripts/:id", rt.transcriptHandler.GetTranscript)
		g.GET("/sessions/:id/transcripts", rt.transcriptHandler.ListSessionTranscripts)
	} else {
		g.GET("/transcripts/:id", rt.notImplemented)
		g.GET("/sessions/:id/transcripts", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	resp := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	if rt.cfg != nil {
		resp["environment"] = rt.cfg.Server.Environment
		resp["transcription_backend"] = rt.cfg.Transcription.Backend
		resp["archive"] = rt.cfg.Database.Enabled
		resp["storage"] = rt.cfg.Storage.Enabled
		resp["cache"] = rt.cfg.Redis.Enabled
	}
	return c.JSON(http.StatusOK, resp)
}
