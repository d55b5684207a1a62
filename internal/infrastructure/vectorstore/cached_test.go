package vectorstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/video-chat/internal/infrastructure/cache"
)

func TestCachedEmbedder_OnlyEmbedsMisses(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()

	emb := newEmbedder()
	cached := NewCachedEmbedder(emb, store, "kw", time.Hour, nil)

	first, err := cached.Embed(t.Context(), []string{"go", "pizza"})
	require.NoError(t, err)
	require.Len(t, emb.calls, 1)

	second, err := cached.Embed(t.Context(), []string{"rust", "go", "pizza"})
	require.NoError(t, err)
	require.Len(t, emb.calls, 2)
	assert.Equal(t, []string{"rust"}, emb.calls[1])

	assert.Equal(t, first[0], second[1])
	assert.Equal(t, first[1], second[2])
	assert.Equal(t, []float32{0, 1, 0}, second[0])

	_, err = cached.Embed(t.Context(), []string{"go", "rust"})
	require.NoError(t, err)
	assert.Len(t, emb.calls, 2, "fully cached batch does not reach the backend")
}

func TestCachedEmbedder_KeyIncludesModel(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()

	emb := newEmbedder()
	_, err := NewCachedEmbedder(emb, store, "model-a", time.Hour, nil).Embed(t.Context(), []string{"go"})
	require.NoError(t, err)
	_, err = NewCachedEmbedder(emb, store, "model-b", time.Hour, nil).Embed(t.Context(), []string{"go"})
	require.NoError(t, err)

	assert.Len(t, emb.calls, 2)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}

func TestCachedEmbedder_CacheFailureFallsThrough(t *testing.T) {
	emb := newEmbedder()
	out, err := NewCachedEmbedder(emb, brokenCache{}, "kw", time.Hour, nil).Embed(t.Context(), []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, out[0])
}

func TestCachedEmbedder_BackendFailure(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()

	emb := newEmbedder()
	emb.err = errors.New("boom")
	_, err := NewCachedEmbedder(emb, store, "kw", time.Hour, nil).Embed(t.Context(), []string{"go"})
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}
