package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/internal/usecase/chat"
	"github.com/johnquangdev/video-chat/internal/usecase/segment"
	"github.com/johnquangdev/video-chat/pkg/jobcontext"
)

// Config tunes a pipeline run
type Config struct {
	Grouping     segment.Options
	StageTimeout time.Duration // zero means no per-stage deadline
	KeepAudio    bool          // keep the downloaded file on local disk
}

// Service owns the sessions and runs fetch, transcribe, group, index and chat in order.
// Runs on one session are serialised; different sessions are independent.
type Service struct {
	deps   Dependencies
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

type entry struct {
	session *entities.Session
	chat    chat.Session
	busy    bool
}

// NewService creates a pipeline service
func NewService(deps Dependencies, cfg Config, logger *zap.Logger) (*Service, error) {
	if deps.Fetcher == nil || deps.Transcriber == nil || deps.Indexer == nil || deps.Chat == nil {
		return nil, errors.New("pipeline: fetcher, transcriber, indexer and chat are required")
	}
	return &Service{
		deps:     deps,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[uuid.UUID]*entry),
	}, nil
}

// CreateSession registers a new idle session
func (s *Service) CreateSession(_ context.Context) (*entities.Session, error) {
	session := entities.NewSession()

	s.mu.Lock()
	s.sessions[session.ID] = &entry{session: session}
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("session created", zap.String("session_id", session.ID.String()))
	}
	return session.Snapshot(), nil
}

// GetSession returns a copy of the session
func (s *Service) GetSession(_ context.Context, id uuid.UUID) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return e.session.Snapshot(), nil
}

// History returns a copy of the session's chat turns, oldest first
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]entities.ChatTurn, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.History == nil {
		return []entities.ChatTurn{}, nil
	}
	return session.History, nil
}

// ResetSession drops the chunks, chat handle and history of a session
func (s *Service) ResetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, entities.ErrSessionNotFound
	}
	if e.busy {
		s.mu.Unlock()
		return nil, entities.ErrSessionBusy
	}
	object := e.session.AudioObject
	e.session.Reset()
	e.chat = nil
	snapshot := e.session.Snapshot()
	s.mu.Unlock()

	s.dropAudio(ctx, id, object)
	return snapshot, nil
}

// DeleteSession forgets a session
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return entities.ErrSessionNotFound
	}
	if e.busy {
		s.mu.Unlock()
		return entities.ErrSessionBusy
	}
	object := e.session.AudioObject
	delete(s.sessions, id)
	s.mu.Unlock()

	s.dropAudio(ctx, id, object)
	if s.logger != nil {
		s.logger.Info("session deleted", zap.String("session_id", id.String()))
	}
	return nil
}

// dropAudio removes an archived audio object once nothing refers to it.
// Objects referenced by an archived transcript are kept.
func (s *Service) dropAudio(ctx context.Context, id uuid.UUID, object string) {
	if s.deps.Transcripts != nil {
		return
	}
	s.deleteAudio(ctx, id, object)
}

func (s *Service) deleteAudio(ctx context.Context, id uuid.UUID, object string) {
	if object == "" || s.deps.Archiver == nil {
		return
	}
	if err := s.deps.Archiver.DeleteFile(context.WithoutCancel(ctx), object); err != nil && s.logger != nil {
		s.logger.Warn("failed to delete archived audio",
			zap.String("session_id", id.String()),
			zap.String("object", object),
			zap.Error(err),
		)
	}
}

// Process runs the whole pipeline for rawURL on session id. On success the new
// chunks and chat handle replace the old ones and the history starts empty. On
// failure the session goes back to idle with LastError set and the previously
// committed chunks and history are left as they were. Audio archived by a failed
// run, or replaced by a successful one, is removed from the archive.
//
// Stages are not cancelled when the caller goes away; only the configured stage
// timeout bounds them.
func (s *Service) Process(ctx context.Context, id uuid.UUID, rawURL string) (*entities.Session, error) {
	e, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer s.release(e)

	ctx = jobcontext.RunBegin(context.WithoutCancel(ctx), id, rawURL)
	meta := jobcontext.GetRunMetadata(ctx)
	if s.logger != nil {
		s.logger.Info("🎬 Pipeline started",
			zap.String("session_id", id.String()),
			zap.String("run_id", meta.RunID.String()),
			zap.String("url", rawURL),
		)
	}

	res, err := s.run(ctx, e, id, rawURL)
	if err != nil {
		s.mu.Lock()
		e.session.MarkFailed(err.Error())
		s.mu.Unlock()

		// a failed run is never archived as a transcript, so its audio has no owner
		if res != nil {
			s.deleteAudio(ctx, id, res.audioObject)
		}

		if s.logger != nil {
			s.logger.Error("❌ Pipeline failed",
				zap.String("session_id", id.String()),
				zap.String("run_id", meta.RunID.String()),
				zap.Duration("elapsed", meta.Elapsed()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.mu.Lock()
	previous := e.session.AudioObject
	e.session.MarkReady(rawURL, res.chunks)
	e.session.AudioObject = res.audioObject
	e.chat = res.chat
	s.mu.Unlock()

	if previous != res.audioObject {
		s.dropAudio(ctx, id, previous)
	}

	if transcriptID, ok := s.archiveTranscript(ctx, id, rawURL, res); ok {
		s.mu.Lock()
		e.session.TranscriptID = &transcriptID
		s.mu.Unlock()
	}

	if s.logger != nil {
		s.logger.Info("✅ Pipeline ready",
			zap.String("session_id", id.String()),
			zap.Int("segment_count", res.transcript.SegmentCount()),
			zap.Int("chunk_count", len(res.chunks)),
			zap.String("run_id", meta.RunID.String()),
			zap.Duration("elapsed", meta.Elapsed()),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return e.session.Snapshot(), nil
}

// Ask answers question within a ready session and appends the user and assistant turns.
// A failed answer leaves the history as it was.
func (s *Service) Ask(ctx context.Context, id uuid.UUID, question string) ([]entities.ChatTurn, error) {
	ctx = context.WithoutCancel(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, entities.ErrEmptyQuestion
	}

	e, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer s.release(e)

	s.mu.Lock()
	if !e.session.IsReady() || e.chat == nil {
		s.mu.Unlock()
		return nil, entities.ErrSessionNotReady
	}
	history := append([]entities.ChatTurn(nil), e.session.History...)
	session := e.chat
	s.mu.Unlock()

	answer, err := runStage(ctx, s.cfg.StageTimeout, func(ctx context.Context) (string, error) {
		return session.Answer(ctx, history, question)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("ask failed", zap.String("session_id", id.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", entities.ErrAsk, err)
	}

	turns := []entities.ChatTurn{entities.NewUserTurn(question), entities.NewAssistantTurn(answer)}

	s.mu.Lock()
	e.session.AppendTurns(turns...)
	s.mu.Unlock()

	return turns, nil
}

type runResult struct {
	transcript  *entities.Transcript
	chunks      []entities.GroupedChunk
	chat        chat.Session
	audioObject string
}

// run executes the stages in order. Once the audio has been archived, a failing
// run still returns a result carrying the object name so the caller can remove it.
func (s *Service) run(ctx context.Context, e *entry, id uuid.UUID, rawURL string) (*runResult, error) {
	s.setState(e, entities.SessionStateFetching)
	audioPath, err := runStage(ctx, s.cfg.StageTimeout, func(ctx context.Context) (string, error) {
		return s.deps.Fetcher.Fetch(ctx, rawURL)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrFetch, err)
	}

	s.setState(e, entities.SessionStateTranscribing)
	transcript, audioObject, err := s.transcribe(ctx, id, audioPath)
	if err != nil {
		return nil, err
	}

	partial := &runResult{audioObject: audioObject}

	chunks, err := segment.Group(transcript.Segments, s.cfg.Grouping)
	if err != nil {
		return partial, err
	}
	s.logStage(id, "grouped", zap.Int("segment_count", len(transcript.Segments)), zap.Int("chunk_count", len(chunks)))

	s.setState(e, entities.SessionStateIndexing)
	retriever, err := runStage(ctx, s.cfg.StageTimeout, func(ctx context.Context) (chat.Retriever, error) {
		return s.deps.Indexer.Build(ctx, chunks)
	})
	if err != nil {
		return partial, fmt.Errorf("%w: %w", entities.ErrIndex, err)
	}

	session, err := runStage(ctx, s.cfg.StageTimeout, func(ctx context.Context) (chat.Session, error) {
		return s.deps.Chat.Start(ctx, retriever)
	})
	if err != nil {
		return partial, fmt.Errorf("%w: %w", entities.ErrChatSession, err)
	}

	return &runResult{transcript: transcript, chunks: chunks, chat: session, audioObject: audioObject}, nil
}

// transcribe runs the transcription stage and disposes of the local audio file
// whatever the outcome
func (s *Service) transcribe(ctx context.Context, id uuid.UUID, audioPath string) (*entities.Transcript, string, error) {
	defer s.removeAudio(id, audioPath)

	transcript, err := runStage(ctx, s.cfg.StageTimeout, func(ctx context.Context) (*entities.Transcript, error) {
		return s.deps.Transcriber.Transcribe(ctx, audioPath)
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", entities.ErrTranscription, err)
	}
	if transcript == nil {
		return nil, "", fmt.Errorf("%w: no transcript returned", entities.ErrTranscription)
	}
	s.logStage(id, "transcribed", zap.Int("segment_count", transcript.SegmentCount()), zap.String("model", transcript.ModelUsed))

	var object string
	if s.deps.Archiver != nil {
		object, err = runStage(ctx, s.cfg.StageTimeout, func(ctx context.Context) (string, error) {
			return s.deps.Archiver.Archive(ctx, id, audioPath)
		})
		if err != nil {
			object = ""
			if s.logger != nil {
				s.logger.Warn("audio archive failed", zap.String("session_id", id.String()), zap.Error(err))
			}
		}
	}
	return transcript, object, nil
}

func (s *Service) removeAudio(id uuid.UUID, audioPath string) {
	if s.cfg.KeepAudio || audioPath == "" {
		return
	}
	if err := os.Remove(audioPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		if s.logger != nil {
			s.logger.Warn("failed to remove audio file",
				zap.String("session_id", id.String()),
				zap.String("path", audioPath),
				zap.Error(err),
			)
		}
	}
}

// archiveTranscript stores the run in the transcript archive; failures are logged only
func (s *Service) archiveTranscript(ctx context.Context, sessionID uuid.UUID, rawURL string, res *runResult) (uuid.UUID, bool) {
	if s.deps.Transcripts == nil {
		return uuid.Nil, false
	}

	t := res.transcript
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.SessionID = sessionID
	t.SourceURL = rawURL
	t.Chunks = res.chunks
	t.AudioObject = res.audioObject
	if t.Text == "" {
		t.Text = segment.Concat(res.chunks)
	}
	opts := s.cfg.Grouping
	t.RawData = datatypes.NewJSONType(map[string]interface{}{
		"grouping_mode":  string(opts.Mode),
		"window_seconds": opts.Window.Seconds(),
		"chunk_count":    len(res.chunks),
	})

	err := runStageErr(ctx, s.cfg.StageTimeout, func(ctx context.Context) error {
		return s.deps.Transcripts.CreateTranscript(ctx, t)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("transcript archive failed", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
		return uuid.Nil, false
	}
	return t.ID, true
}

func (s *Service) acquire(id uuid.UUID) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	if e.busy {
		return nil, entities.ErrSessionBusy
	}
	e.busy = true
	return e, nil
}

func (s *Service) release(e *entry) {
	s.mu.Lock()
	e.busy = false
	s.mu.Unlock()
}

func (s *Service) setState(e *entry, state entities.SessionState) {
	s.mu.Lock()
	e.session.MarkStage(state)
	id := e.session.ID
	s.mu.Unlock()

	s.logStage(id, string(state))
}

func (s *Service) logStage(id uuid.UUID, stage string, fields ...zap.Field) {
	if s.logger == nil {
		return
	}
	s.logger.Info("pipeline stage",
		append([]zap.Field{zap.String("session_id", id.String()), zap.String("stage", stage)}, fields...)...)
}

func runStage[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var out T
	err := jobcontext.Guard(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

func runStageErr(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	_, err := runStage(ctx, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
