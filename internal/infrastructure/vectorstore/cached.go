package vectorstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Cache is the key-value store behind CachedEmbedder
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedEmbedder memoizes vectors per (model, text) and only embeds misses
type CachedEmbedder struct {
	next   Embedder
	cache  Cache
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder wraps next with cache
func NewCachedEmbedder(next Embedder, cache Cache, model string, ttl time.Duration, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{next: next, cache: cache, model: model, ttl: ttl, logger: logger}
}

// Embed returns vectors for texts, calling the wrapped embedder for cache misses only.
// Cache errors are logged and treated as misses.
func (c *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var (
		missTexts []string
		missIdx   []int
	)

	for i, text := range texts {
		raw, ok, err := c.cache.Get(ctx, c.key(text))
		if err != nil {
			c.warn("embedding cache read failed", err)
		}
		if ok {
			var vec []float32
			if err := json.Unmarshal(raw, &vec); err == nil && len(vec) > 0 {
				out[i] = vec
				continue
			}
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vectors, err := c.next.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missTexts))
	}

	for j, vec := range vectors {
		out[missIdx[j]] = vec
		raw, err := json.Marshal(vec)
		if err != nil {
			continue
		}
		if err := c.cache.Set(ctx, c.key(missTexts[j]), raw, c.ttl); err != nil {
			c.warn("embedding cache write failed", err)
		}
	}

	if c.logger != nil {
		c.logger.Debug("embedded texts",
			zap.Int("requested", len(texts)),
			zap.Int("cache_misses", len(missTexts)),
		)
	}
	return out, nil
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) warn(msg string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, zap.Error(err))
	}
}
