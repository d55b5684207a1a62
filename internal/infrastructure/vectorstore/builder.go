package vectorstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
	"github.com/johnquangdev/video-chat/internal/usecase/chat"
)

// Builder indexes grouped chunks
type Builder struct {
	embedder Embedder
	logger   *zap.Logger
}

// NewBuilder creates a Builder that embeds with embedder
func NewBuilder(embedder Embedder, logger *zap.Logger) *Builder {
	return &Builder{embedder: embedder, logger: logger}
}

// Build embeds every chunk in one batch and returns a searchable index.
// Each document keeps the chunk's HH:MM:SS tag as its source.
func (b *Builder) Build(ctx context.Context, chunks []entities.GroupedChunk) (chat.Retriever, error) {
	index := NewFlatIndex(b.embedder)
	if len(chunks) == 0 {
		return index, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := b.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	docs := make([]Document, len(chunks))
	for i, c := range chunks {
		docs[i] = Document{Text: c.Text, Source: c.Tag(), Vector: vectors[i]}
	}
	if err := index.Add(docs...); err != nil {
		return nil, err
	}

	if b.logger != nil {
		b.logger.Info("index built", zap.Int("chunk_count", index.Len()))
	}
	return index, nil
}
