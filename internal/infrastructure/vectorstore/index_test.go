package vectorstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

// keywordEmbedder maps each text to counts of a fixed vocabulary
type keywordEmbedder struct {
	vocab []string
	calls [][]string
	err   error
}

func (k *keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	k.calls = append(k.calls, append([]string(nil), texts...))
	if k.err != nil {
		return nil, k.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec := make([]float32, len(k.vocab))
		for j, w := range k.vocab {
			vec[j] = float32(strings.Count(strings.ToLower(t), w))
		}
		out[i] = vec
	}
	return out, nil
}

func newEmbedder() *keywordEmbedder {
	return &keywordEmbedder{vocab: []string{"go", "rust", "pizza"}}
}

func TestFlatIndex_OrdersByCosine(t *testing.T) {
	ix := NewFlatIndex(newEmbedder())
	require.NoError(t, ix.Add(
		Document{Text: "pizza", Source: "00:00:00", Vector: []float32{0, 0, 1}},
		Document{Text: "go and rust", Source: "00:00:30", Vector: []float32{1, 1, 0}},
		Document{Text: "go go go", Source: "00:01:00", Vector: []float32{3, 0, 0}},
	))

	hits, err := ix.Search([]float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "00:01:00", hits[0].Source)
	assert.Equal(t, "00:00:30", hits[1].Source)
	assert.Equal(t, "00:00:00", hits[2].Source)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.InDelta(t, 0.0, hits[2].Score, 1e-6)

	hits, err = ix.Search([]float32{1, 0, 0}, 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestFlatIndex_DimensionMismatch(t *testing.T) {
	ix := NewFlatIndex(newEmbedder())
	require.NoError(t, ix.Add(Document{Text: "a", Vector: []float32{1, 0}}))

	assert.Error(t, ix.Add(Document{Text: "b", Vector: []float32{1, 0, 0}}))
	assert.Error(t, ix.Add(Document{Text: "c"}))

	_, err := ix.Search([]float32{1}, 1)
	assert.Error(t, err)
}

func TestFlatIndex_EmptyRetrieve(t *testing.T) {
	emb := newEmbedder()
	ix := NewFlatIndex(emb)

	hits, err := ix.Retrieve(t.Context(), "anything", 4)
	require.NoError(t, err)
	assert.Empty(t, hits)
	// nothing to search, so the query is never embedded
	assert.Empty(t, emb.calls)
}

func TestBuilder_BuildAndRetrieve(t *testing.T) {
	emb := newEmbedder()
	builder := NewBuilder(emb, nil)

	chunks := []entities.GroupedChunk{
		{Text: "we ordered pizza", Anchor: 0},
		{Text: "go is simple, go is fast", Anchor: 50 * time.Second},
		{Text: "rust has a borrow checker", Anchor: 125 * time.Second},
	}
	retriever, err := builder.Build(t.Context(), chunks)
	require.NoError(t, err)
	require.Len(t, emb.calls, 1, "chunks are embedded in one batch")
	assert.Len(t, emb.calls[0], 3)

	hits, err := retriever.Retrieve(t.Context(), "tell me about go", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "00:00:50", hits[0].Source)
	assert.Equal(t, "go is simple, go is fast", hits[0].Text)
}

func TestBuilder_NoChunks(t *testing.T) {
	emb := newEmbedder()
	retriever, err := NewBuilder(emb, nil).Build(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, emb.calls)

	hits, err := retriever.Retrieve(t.Context(), "go", 4)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestBuilder_EmbedFailure(t *testing.T) {
	boom := errors.New("boom")
	emb := newEmbedder()
	emb.err = boom

	_, err := NewBuilder(emb, nil).Build(t.Context(), []entities.GroupedChunk{{Text: "x"}})
	assert.ErrorIs(t, err, boom)
}
