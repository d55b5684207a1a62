package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/johnquangdev/video-chat/internal/domain/entities"
)

// Embedder turns texts into vectors, one per text, in input order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Document is an indexed chunk
type Document struct {
	Text   string
	Source string
	Vector []float32
}

// FlatIndex is an in-memory exhaustive cosine-similarity index
type FlatIndex struct {
	embedder Embedder

	mu   sync.RWMutex
	docs []Document
	dim  int
}

// NewFlatIndex creates an empty index; queries are embedded with embedder
func NewFlatIndex(embedder Embedder) *FlatIndex {
	return &FlatIndex{embedder: embedder}
}

// Add appends documents. All vectors must share one dimension.
func (ix *FlatIndex) Add(docs ...Document) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for i, d := range docs {
		if len(d.Vector) == 0 {
			return fmt.Errorf("document %d has no vector", i)
		}
		if ix.dim == 0 {
			ix.dim = len(d.Vector)
		}
		if len(d.Vector) != ix.dim {
			return fmt.Errorf("document %d has dimension %d, index has %d", i, len(d.Vector), ix.dim)
		}
	}
	for _, d := range docs {
		d.Vector = normalize(d.Vector)
		ix.docs = append(ix.docs, d)
	}
	return nil
}

// Len returns the number of indexed documents
func (ix *FlatIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Retrieve embeds query and returns the k most similar documents, best first
func (ix *FlatIndex) Retrieve(ctx context.Context, query string, k int) ([]entities.Passage, error) {
	if k <= 0 || ix.Len() == 0 {
		return []entities.Passage{}, nil
	}

	vecs, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, errors.New("embed query: no vector returned")
	}
	return ix.Search(vecs[0], k)
}

// Search returns the k documents most similar to vector, best first
func (ix *FlatIndex) Search(vector []float32, k int) ([]entities.Passage, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.docs) == 0 || k <= 0 {
		return []entities.Passage{}, nil
	}
	if len(vector) != ix.dim {
		return nil, fmt.Errorf("query has dimension %d, index has %d", len(vector), ix.dim)
	}

	q := normalize(vector)
	hits := make([]entities.Passage, 0, len(ix.docs))
	for _, d := range ix.docs {
		hits = append(hits, entities.Passage{Text: d.Text, Source: d.Source, Score: dot(q, d.Vector)})
	}
	// stable keeps insertion order among ties
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
