package vectordb

import (
	"context"
	"sort"
	"sync"

	"github.com/karakusoft/faqbot/internal/domain/entities"
)

// InMemoryStore is a map-backed vector index, safe for concurrent use.
// Used in tests and local development where persistence is unnecessary.
type InMemoryStore struct {
	mu     sync.RWMutex
	chunks map[string]entities.Chunk
}

// NewInMemoryStore creates an empty in-memory vector index.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{chunks: make(map[string]entities.Chunk)}
}

// Store saves chunks keyed by their content-hash IDs; storing the same
// chunk twice overwrites in place.
func (s *InMemoryStore) Store(ctx context.Context, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// Search returns the topK most similar chunks as retrieved documents.
func (s *InMemoryStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		chunk entities.Chunk
		score float64
	}

	results := make([]scored, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		results = append(results, scored{chunk: chunk, score: cosineSimilarity(embedding, chunk.Embedding)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > topK {
		results = results[:topK]
	}

	docs := make([]entities.RetrievedDocument, len(results))
	for i, r := range results {
		docs[i] = entities.RetrievedDocument{
			Content:  r.chunk.Content,
			Metadata: r.chunk.Metadata,
		}
	}
	return docs, nil
}

// Count reports the number of stored chunks.
func (s *InMemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}
