package vectordb

import (
	"context"
	"fmt"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/domain/ports"
)

// Retriever implements ports.Retriever over a local vector store: the
// query is embedded first, then searched by similarity. This is the
// deployment variant where the search backend wants a precomputed vector
// rather than raw text.
type Retriever struct {
	embedder ports.Embedder
	store    ports.VectorStore
	topK     int
}

// NewRetriever creates the retriever. topK <= 0 falls back to 5.
func NewRetriever(embedder ports.Embedder, store ports.VectorStore, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve embeds the query and returns the most similar stored chunks.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]entities.RetrievedDocument, error) {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	docs, err := r.store.Search(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("searching vectors: %w", err)
	}
	return docs, nil
}
