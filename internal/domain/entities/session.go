package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the pipeline state of a session
type SessionState string

const (
	SessionStateIdle         SessionState = "idle"
	SessionStateFetching     SessionState = "fetching"
	SessionStateTranscribing SessionState = "transcribing"
	SessionStateIndexing     SessionState = "indexing"
	SessionStateReady        SessionState = "ready"
)

// IsRunning reports whether a pipeline run is in flight
func (s SessionState) IsRunning() bool {
	switch s {
	case SessionStateFetching, SessionStateTranscribing, SessionStateIndexing:
		return true
	}
	return false
}

// Session is one user's pipeline run plus the accumulated chat history.
// Chunks and History belong to the last successfully processed video and are
// replaced only when a new run completes.
type Session struct {
	ID           uuid.UUID      `json:"id"`
	State        SessionState   `json:"state"`
	SourceURL    string         `json:"source_url,omitempty"`
	Chunks       []GroupedChunk `json:"chunks,omitempty"`
	History      []ChatTurn     `json:"history,omitempty"`
	TranscriptID *uuid.UUID     `json:"transcript_id,omitempty"`
	AudioObject  string         `json:"audio_object,omitempty"`
	LastError    *string        `json:"last_error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewSession creates an idle session
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		State:     SessionStateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsReady reports whether questions can be asked
func (s *Session) IsReady() bool {
	return s.State == SessionStateReady
}

// MarkStage moves the session to an in-flight pipeline stage
func (s *Session) MarkStage(state SessionState) {
	s.State = state
	s.UpdatedAt = time.Now().UTC()
}

// MarkFailed returns the session to idle and records the error.
// Previously committed chunks and history are left as they are.
func (s *Session) MarkFailed(errMsg string) {
	s.State = SessionStateIdle
	s.LastError = &errMsg
	s.UpdatedAt = time.Now().UTC()
}

// MarkReady commits the output of a successful run and starts a fresh history
func (s *Session) MarkReady(sourceURL string, chunks []GroupedChunk) {
	s.State = SessionStateReady
	s.SourceURL = sourceURL
	s.Chunks = chunks
	s.History = nil
	s.TranscriptID = nil
	s.AudioObject = ""
	s.LastError = nil
	s.UpdatedAt = time.Now().UTC()
}

// Reset drops everything the session accumulated
func (s *Session) Reset() {
	s.State = SessionStateIdle
	s.SourceURL = ""
	s.Chunks = nil
	s.History = nil
	s.TranscriptID = nil
	s.AudioObject = ""
	s.LastError = nil
	s.UpdatedAt = time.Now().UTC()
}

// AppendTurns adds turns to the end of the history
func (s *Session) AppendTurns(turns ...ChatTurn) {
	s.History = append(s.History, turns...)
	s.UpdatedAt = time.Now().UTC()
}

// Snapshot returns a copy that shares no slices with the session
func (s *Session) Snapshot() *Session {
	cp := *s
	if s.Chunks != nil {
		cp.Chunks = append([]GroupedChunk(nil), s.Chunks...)
	}
	if s.History != nil {
		cp.History = append([]ChatTurn(nil), s.History...)
	}
	if s.TranscriptID != nil {
		id := *s.TranscriptID
		cp.TranscriptID = &id
	}
	if s.LastError != nil {
		msg := *s.LastError
		cp.LastError = &msg
	}
	return &cp
}
