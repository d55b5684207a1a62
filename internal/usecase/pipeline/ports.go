package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/internal/usecase/chat"
)

// AudioFetcher downloads the audio of a video and returns the local file path
type AudioFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Transcriber turns a local audio file into timestamped segments
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*entities.Transcript, error)
}

// IndexBuilder embeds grouped chunks into a searchable index
type IndexBuilder interface {
	Build(ctx context.Context, chunks []entities.GroupedChunk) (chat.Retriever, error)
}

// ChatStarter opens a conversational session over an index
type ChatStarter interface {
	Start(ctx context.Context, retriever chat.Retriever) (chat.Session, error)
}

// AudioArchiver keeps a copy of the downloaded audio
type AudioArchiver interface {
	Archive(ctx context.Context, sessionID uuid.UUID, localPath string) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// TranscriptArchive persists processed transcripts
type TranscriptArchive interface {
	CreateTranscript(ctx context.Context, transcript *entities.Transcript) error
}

// Dependencies are the collaborators of a Service. Archiver and Transcripts are optional.
type Dependencies struct {
	Fetcher     AudioFetcher
	Transcriber Transcriber
	Indexer     IndexBuilder
	Chat        ChatStarter
	Archiver    AudioArchiver
	Transcripts TranscriptArchive
}

// UseCase is the session API offered to the transport layer
type UseCase interface {
	CreateSession(ctx context.Context) (*entities.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	History(ctx context.Context, id uuid.UUID) ([]entities.ChatTurn, error)
	ResetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	Process(ctx context.Context, id uuid.UUID, rawURL string) (*entities.Session, error)
	Ask(ctx context.Context, id uuid.UUID, question string) ([]entities.ChatTurn, error)
}

var _ UseCase = (*Service)(nil)
