package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/internal/usecase/chat"
	"github.com/johnquangdev/video-chat/internal/usecase/segment"
)

type fakeFetcher struct {
	dir   string
	err   error
	block bool
	paths []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(f.dir, uuid.NewString()+".webm")
	if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
		return "", err
	}
	f.paths = append(f.paths, path)
	return path, nil
}

type fakeTranscriber struct {
	segments []entities.TranscriptSegment
	err      error
	sawFile  bool
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (*entities.Transcript, error) {
	_, statErr := os.Stat(audioPath)
	f.sawFile = statErr == nil
	if f.err != nil {
		return nil, f.err
	}
	return &entities.Transcript{Segments: f.segments, Language: "en", ModelUsed: "fake"}, nil
}

type fakeRetriever struct{}

func (fakeRetriever) Retrieve(context.Context, string, int) ([]entities.Passage, error) {
	return nil, nil
}

type fakeIndexer struct {
	err    error
	chunks []entities.GroupedChunk
}

func (f *fakeIndexer) Build(_ context.Context, chunks []entities.GroupedChunk) (chat.Retriever, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.chunks = chunks
	return fakeRetriever{}, nil
}

type fakeChat struct {
	mu        sync.Mutex
	answer    string
	err       error
	histories [][]entities.ChatTurn
	started   chan struct{}
	release   chan struct{}
}

func (f *fakeChat) Answer(_ context.Context, history []entities.ChatTurn, question string) (string, error) {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories = append(f.histories, history)
	if f.err != nil {
		return "", f.err
	}
	return f.answer + ": " + question, nil
}

type fakeStarter struct {
	chat *fakeChat
	err  error
}

func (f *fakeStarter) Start(context.Context, chat.Retriever) (chat.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chat, nil
}

type fakeArchiver struct {
	err     error
	deleted []string
}

func (f *fakeArchiver) DeleteFile(_ context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeArchiver) Archive(_ context.Context, sessionID uuid.UUID, localPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "audio/" + sessionID.String() + "/" + filepath.Base(localPath), nil
}

type fakeTranscripts struct {
	saved []*entities.Transcript
	err   error
}

func (f *fakeTranscripts) CreateTranscript(_ context.Context, t *entities.Transcript) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, t)
	return nil
}

type harness struct {
	svc         *Service
	fetcher     *fakeFetcher
	transcriber *fakeTranscriber
	indexer     *fakeIndexer
	starter     *fakeStarter
	chat        *fakeChat
	archiver    *fakeArchiver
	transcripts *fakeTranscripts
}

func scenarioSegments() []entities.TranscriptSegment {
	return []entities.TranscriptSegment{
		{Start: 0, Text: " hello"},
		{Start: 10, Text: " world"},
		{Start: 50, Text: " next"},
	}
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		fetcher:     &fakeFetcher{dir: t.TempDir()},
		transcriber: &fakeTranscriber{segments: scenarioSegments()},
		indexer:     &fakeIndexer{},
		chat:        &fakeChat{answer: "answer"},
		archiver:    &fakeArchiver{},
		transcripts: &fakeTranscripts{},
	}
	h.starter = &fakeStarter{chat: h.chat}

	svc, err := NewService(Dependencies{
		Fetcher:     h.fetcher,
		Transcriber: h.transcriber,
		Indexer:     h.indexer,
		Chat:        h.starter,
		Archiver:    h.archiver,
		Transcripts: h.transcripts,
	}, cfg, nil)
	require.NoError(t, err)
	h.svc = svc
	return h
}

func (h *harness) readySession(t *testing.T) uuid.UUID {
	t.Helper()
	s, err := h.svc.CreateSession(t.Context())
	require.NoError(t, err)
	_, err = h.svc.Process(t.Context(), s.ID, "https://youtu.be/abc")
	require.NoError(t, err)
	return s.ID
}

func TestNewService_RequiresCollaborators(t *testing.T) {
	_, err := NewService(Dependencies{}, Config{}, nil)
	assert.Error(t, err)
}

func TestProcess_Success(t *testing.T) {
	h := newHarness(t, Config{Grouping: segment.Options{Window: 30 * time.Second}})
	created, err := h.svc.CreateSession(t.Context())
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateIdle, created.State)

	session, err := h.svc.Process(t.Context(), created.ID, "https://youtu.be/abc")
	require.NoError(t, err)

	assert.Equal(t, entities.SessionStateReady, session.State)
	assert.Equal(t, "https://youtu.be/abc", session.SourceURL)
	require.Len(t, session.Chunks, 2)
	assert.Equal(t, " hello world", session.Chunks[0].Text)
	assert.Equal(t, " next", session.Chunks[1].Text)
	assert.Equal(t, "00:00:50", session.Chunks[1].Tag())
	assert.Empty(t, session.History)
	assert.Nil(t, session.LastError)
	assert.Equal(t, h.indexer.chunks, session.Chunks)

	// audio was on disk while transcribing and is gone afterwards
	assert.True(t, h.transcriber.sawFile)
	require.Len(t, h.fetcher.paths, 1)
	assert.NoFileExists(t, h.fetcher.paths[0])
	assert.Contains(t, session.AudioObject, created.ID.String())

	require.Len(t, h.transcripts.saved, 1)
	saved := h.transcripts.saved[0]
	require.NotNil(t, session.TranscriptID)
	assert.Equal(t, saved.ID, *session.TranscriptID)
	assert.Equal(t, created.ID, saved.SessionID)
	assert.Equal(t, " hello world next", saved.Text)
	assert.Len(t, saved.Chunks, 2)
}

func TestProcess_KeepAudio(t *testing.T) {
	h := newHarness(t, Config{KeepAudio: true})
	h.readySession(t)

	require.Len(t, h.fetcher.paths, 1)
	assert.FileExists(t, h.fetcher.paths[0])
}

func TestProcess_ArchiveFailuresAreNotFatal(t *testing.T) {
	h := newHarness(t, Config{})
	h.archiver.err = errors.New("minio down")
	h.transcripts.err = errors.New("postgres down")

	id := h.readySession(t)
	session, err := h.svc.GetSession(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, session.IsReady())
	assert.Empty(t, session.AudioObject)
	assert.Nil(t, session.TranscriptID)
}

func TestProcess_FetchFailureKeepsHistory(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)
	_, err := h.svc.Ask(t.Context(), id, "what is it about?")
	require.NoError(t, err)

	before, err := h.svc.GetSession(t.Context(), id)
	require.NoError(t, err)

	h.fetcher.err = errors.New("invalid url")
	session, err := h.svc.Process(t.Context(), id, "not-a-url")
	assert.ErrorIs(t, err, entities.ErrFetch)
	assert.Nil(t, session)

	after, err := h.svc.GetSession(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateIdle, after.State)
	assert.Equal(t, before.History, after.History)
	assert.Equal(t, before.Chunks, after.Chunks)
	require.NotNil(t, after.LastError)
	assert.Contains(t, *after.LastError, "invalid url")

	// not ready until a run succeeds again
	_, err = h.svc.Ask(t.Context(), id, "still there?")
	assert.ErrorIs(t, err, entities.ErrSessionNotReady)
}

func TestProcess_StageErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		mutate func(h *harness)
		want   error
	}{
		{"transcription", func(h *harness) { h.transcriber.err = boom }, entities.ErrTranscription},
		{"invalid segment", func(h *harness) {
			h.transcriber.segments = []entities.TranscriptSegment{{Start: -1, Text: "x"}}
		}, entities.ErrInvalidSegment},
		{"index", func(h *harness) { h.indexer.err = boom }, entities.ErrIndex},
		{"chat session", func(h *harness) { h.starter.err = boom }, entities.ErrChatSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Config{})
			tt.mutate(h)
			s, err := h.svc.CreateSession(t.Context())
			require.NoError(t, err)

			_, err = h.svc.Process(t.Context(), s.ID, "https://youtu.be/abc")
			assert.ErrorIs(t, err, tt.want)

			got, err := h.svc.GetSession(t.Context(), s.ID)
			require.NoError(t, err)
			assert.Equal(t, entities.SessionStateIdle, got.State)
			assert.Empty(t, got.Chunks)
			assert.Empty(t, h.transcripts.saved)

			// the downloaded file never outlives the run
			for _, p := range h.fetcher.paths {
				assert.NoFileExists(t, p)
			}
		})
	}
}

func TestProcess_StageTimeout(t *testing.T) {
	h := newHarness(t, Config{StageTimeout: 20 * time.Millisecond})
	h.fetcher.block = true
	s, err := h.svc.CreateSession(t.Context())
	require.NoError(t, err)

	_, err = h.svc.Process(t.Context(), s.ID, "https://youtu.be/abc")
	assert.ErrorIs(t, err, entities.ErrFetch)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProcess_NewVideoClearsHistory(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)
	_, err := h.svc.Ask(t.Context(), id, "q1")
	require.NoError(t, err)

	session, err := h.svc.Process(t.Context(), id, "https://youtu.be/other")
	require.NoError(t, err)
	assert.Empty(t, session.History)
	assert.Equal(t, "https://youtu.be/other", session.SourceURL)
}

func TestAsk_AppendsTurnPairs(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)

	turns, err := h.svc.Ask(t.Context(), id, "  first?  ")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, entities.RoleUser, turns[0].Role)
	assert.Equal(t, "first?", turns[0].Content)
	assert.Equal(t, entities.RoleAssistant, turns[1].Role)
	assert.Equal(t, "answer: first?", turns[1].Content)

	_, err = h.svc.Ask(t.Context(), id, "second?")
	require.NoError(t, err)

	history, err := h.svc.History(t.Context(), id)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "second?", history[2].Content)

	// the chain sees the history as it was before each question
	require.Len(t, h.chat.histories, 2)
	assert.Empty(t, h.chat.histories[0])
	assert.Len(t, h.chat.histories[1], 2)
}

func TestAsk_FailureLeavesHistory(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)
	_, err := h.svc.Ask(t.Context(), id, "ok?")
	require.NoError(t, err)

	h.chat.err = errors.New("timeout")
	_, err = h.svc.Ask(t.Context(), id, "again?")
	assert.ErrorIs(t, err, entities.ErrAsk)

	history, err := h.svc.History(t.Context(), id)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestAsk_Preconditions(t *testing.T) {
	h := newHarness(t, Config{})
	s, err := h.svc.CreateSession(t.Context())
	require.NoError(t, err)

	_, err = h.svc.Ask(t.Context(), s.ID, "q")
	assert.ErrorIs(t, err, entities.ErrSessionNotReady)

	_, err = h.svc.Ask(t.Context(), s.ID, " ")
	assert.ErrorIs(t, err, entities.ErrEmptyQuestion)

	_, err = h.svc.Ask(t.Context(), uuid.New(), "q")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestBusySession(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)

	h.chat.started = make(chan struct{})
	h.chat.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := h.svc.Ask(context.Background(), id, "slow?")
		done <- err
	}()
	<-h.chat.started

	_, err := h.svc.Process(t.Context(), id, "https://youtu.be/abc")
	assert.ErrorIs(t, err, entities.ErrSessionBusy)
	_, err = h.svc.Ask(t.Context(), id, "meanwhile?")
	assert.ErrorIs(t, err, entities.ErrSessionBusy)
	_, err = h.svc.ResetSession(t.Context(), id)
	assert.ErrorIs(t, err, entities.ErrSessionBusy)
	assert.ErrorIs(t, h.svc.DeleteSession(t.Context(), id), entities.ErrSessionBusy)

	// other sessions are unaffected
	other, err := h.svc.CreateSession(t.Context())
	require.NoError(t, err)
	_, err = h.svc.GetSession(t.Context(), other.ID)
	require.NoError(t, err)

	close(h.chat.release)
	require.NoError(t, <-done)

	history, err := h.svc.History(t.Context(), id)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestResetAndDelete(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)
	_, err := h.svc.Ask(t.Context(), id, "q")
	require.NoError(t, err)

	session, err := h.svc.ResetSession(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStateIdle, session.State)
	assert.Empty(t, session.Chunks)
	assert.Empty(t, session.History)

	_, err = h.svc.Ask(t.Context(), id, "q")
	assert.ErrorIs(t, err, entities.ErrSessionNotReady)

	require.NoError(t, h.svc.DeleteSession(t.Context(), id))
	_, err = h.svc.GetSession(t.Context(), id)
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	assert.ErrorIs(t, h.svc.DeleteSession(t.Context(), id), entities.ErrSessionNotFound)
	_, err = h.svc.ResetSession(t.Context(), id)
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestGetSession_ReturnsCopies(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)

	s1, err := h.svc.GetSession(t.Context(), id)
	require.NoError(t, err)
	s1.Chunks[0].Text = "mutated"

	s2, err := h.svc.GetSession(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, " hello world", s2.Chunks[0].Text)
}

func TestDeleteSession_DropsUnreferencedAudio(t *testing.T) {
	fetcher := &fakeFetcher{dir: t.TempDir()}
	archiver := &fakeArchiver{}
	svc, err := NewService(Dependencies{
		Fetcher:     fetcher,
		Transcriber: &fakeTranscriber{segments: scenarioSegments()},
		Indexer:     &fakeIndexer{},
		Chat:        &fakeStarter{chat: &fakeChat{answer: "answer"}},
		Archiver:    archiver,
	}, Config{}, nil)
	require.NoError(t, err)

	created, err := svc.CreateSession(t.Context())
	require.NoError(t, err)
	ready, err := svc.Process(t.Context(), created.ID, "https://youtu.be/abc")
	require.NoError(t, err)
	require.NotEmpty(t, ready.AudioObject)

	require.NoError(t, svc.DeleteSession(t.Context(), created.ID))
	assert.Equal(t, []string{ready.AudioObject}, archiver.deleted)
}

func TestDeleteSession_KeepsAudioReferencedByTranscript(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)

	require.NoError(t, h.svc.DeleteSession(t.Context(), id))
	assert.Empty(t, h.archiver.deleted)
}

func TestProcess_RemovesReplacedAndOrphanedAudio(t *testing.T) {
	indexer := &fakeIndexer{}
	archiver := &fakeArchiver{}
	svc, err := NewService(Dependencies{
		Fetcher:     &fakeFetcher{dir: t.TempDir()},
		Transcriber: &fakeTranscriber{segments: scenarioSegments()},
		Indexer:     indexer,
		Chat:        &fakeStarter{chat: &fakeChat{answer: "answer"}},
		Archiver:    archiver,
	}, Config{}, nil)
	require.NoError(t, err)

	created, err := svc.CreateSession(t.Context())
	require.NoError(t, err)

	first, err := svc.Process(t.Context(), created.ID, "https://youtu.be/abc")
	require.NoError(t, err)
	require.NotEmpty(t, first.AudioObject)
	assert.Empty(t, archiver.deleted)

	indexer.err = errors.New("embedding endpoint down")
	_, err = svc.Process(t.Context(), created.ID, "https://youtu.be/def")
	require.ErrorIs(t, err, entities.ErrIndex)
	require.Len(t, archiver.deleted, 1)
	failedObject := archiver.deleted[0]
	assert.NotEqual(t, first.AudioObject, failedObject)

	after, err := svc.GetSession(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.AudioObject, after.AudioObject)

	indexer.err = nil
	third, err := svc.Process(t.Context(), created.ID, "https://youtu.be/ghi")
	require.NoError(t, err)
	assert.Equal(t, []string{failedObject, first.AudioObject}, archiver.deleted)

	require.NoError(t, svc.DeleteSession(t.Context(), created.ID))
	assert.Equal(t, []string{failedObject, first.AudioObject, third.AudioObject}, archiver.deleted)
}

func TestProcess_KeepsReplacedAudioReferencedByTranscript(t *testing.T) {
	h := newHarness(t, Config{})
	id := h.readySession(t)

	_, err := h.svc.Process(t.Context(), id, "https://youtu.be/def")
	require.NoError(t, err)
	assert.Empty(t, h.archiver.deleted)
	assert.Len(t, h.transcripts.saved, 2)
}
