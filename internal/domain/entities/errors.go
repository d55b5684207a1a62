package entities

import (
	"errors"
	"fmt"
)

// Pipeline errors
var (
	ErrFetch          = errors.New("fetch audio failed")
	ErrTranscription  = errors.New("transcription failed")
	ErrIndex          = errors.New("build index failed")
	ErrChatSession    = errors.New("start chat session failed")
	ErrAsk            = errors.New("ask failed")
	ErrInvalidSegment = errors.New("invalid transcript segment")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionNotReady = errors.New("session not ready")
	ErrSessionBusy     = errors.New("session has a run in progress")
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrInvalidURL      = errors.New("invalid video url")
)

// InvalidSegmentError reports the first malformed segment of an input sequence
type InvalidSegmentError struct {
	Index  int
	Reason string
}

func (e *InvalidSegmentError) Error() string {
	return fmt.Sprintf("%s at index %d: %s", ErrInvalidSegment, e.Index, e.Reason)
}

// Is lets errors.Is match ErrInvalidSegment
func (e *InvalidSegmentError) Is(target error) bool {
	return target == ErrInvalidSegment
}
