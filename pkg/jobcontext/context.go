package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keySessionID KeyContext = "session_id"
	keySourceURL KeyContext = "source_url"
	keyStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	RunID     uuid.UUID
	SessionID uuid.UUID
	SourceURL string
	StartTime time.Time
}

// Elapsed returns the time since the run started
func (m *RunMetadata) Elapsed() time.Duration {
	if m.StartTime.IsZero() {
		return 0
	}
	return time.Since(m.StartTime)
}

// RunBegin tags ctx with a fresh run id, the session and the source url
func RunBegin(parentCtx context.Context, sessionID uuid.UUID, sourceURL string) context.Context {
	ctx := context.WithValue(parentCtx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keySourceURL, sourceURL)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// Guard runs fn and turns a panic into an error
func Guard(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before execution: %w", ctx.Err())
	}
	return fn(ctx)
}

// GetRunID extracts the run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keySessionID).(uuid.UUID)
	return id, ok
}

// GetStartTime extracts the run start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	sessionID, _ := GetSessionID(ctx)
	sourceURL, _ := ctx.Value(keySourceURL).(string)
	startTime, _ := GetStartTime(ctx)

	return &RunMetadata{
		RunID:     runID,
		SessionID: sessionID,
		SourceURL: sourceURL,
		StartTime: startTime,
	}
}
