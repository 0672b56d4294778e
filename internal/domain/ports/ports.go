// Package ports defines the interfaces to external capabilities.
// Usecases depend on these abstractions; adapters implement them. All
// collaborator handles are injected at construction time so tests can
// substitute fakes without touching global state.
package ports

import (
	"context"

	"github.com/karakusoft/faqbot/internal/domain/entities"
)

// Embedder maps text to a fixed-length numeric vector.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever maps query text to a ranked list of candidate documents.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]entities.RetrievedDocument, error)
}

// Generator sends a composed prompt to a hosted LLM and returns the
// generated text. Single-turn completion, no streaming.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VectorStore persists and queries embedded document chunks.
type VectorStore interface {
	// Store saves chunks with their embeddings. Writes are keyed by chunk
	// ID so repeated ingestion of identical content is idempotent.
	Store(ctx context.Context, chunks []entities.Chunk) error

	// Search finds the chunks most similar to a query embedding.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.RetrievedDocument, error)

	// Count reports the number of stored chunks.
	Count(ctx context.Context) (int, error)
}

// DocumentParser extracts text from binary document formats.
type DocumentParser interface {
	// Parse extracts text content from document bytes, one string per page.
	Parse(ctx context.Context, data []byte) ([]string, error)
}

// ObjectStore lists and fetches source documents for ingestion.
type ObjectStore interface {
	// List returns the keys of objects under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Get fetches the raw bytes of one object.
	Get(ctx context.Context, key string) ([]byte, error)
}

// FileWatcher monitors a directory for document changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events until ctx ends.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent is a single file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
