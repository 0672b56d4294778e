// Package vectordb provides vector index adapters implementing
// ports.VectorStore, plus a retriever that searches them.
package vectordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/karakusoft/faqbot/internal/domain/entities"
)

// SQLiteStore is a persistent vector index backed by SQLite. Similarity
// search is brute-force cosine over all stored chunks, which is fine for
// an internal FAQ corpus.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the vector index under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataPath, "vectors.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		embedding BLOB NOT NULL,
		title TEXT,
		source TEXT,
		page TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store saves chunks with their embeddings. Chunk IDs are content hashes,
// so INSERT OR REPLACE makes repeated ingestion idempotent.
func (s *SQLiteStore) Store(ctx context.Context, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, content, embedding, title, source, page)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingJSON, err := json.Marshal(chunk.Embedding)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			chunk.ID,
			chunk.Content,
			embeddingJSON,
			chunk.Metadata.Title,
			chunk.Metadata.Source,
			chunk.Metadata.Page,
		)
		if err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	return tx.Commit()
}

// Search returns the topK most similar stored chunks as retrieved
// documents, best first.
func (s *SQLiteStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT content, embedding, title, source, page FROM chunks
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	type scored struct {
		doc   entities.RetrievedDocument
		score float64
	}

	var results []scored
	for rows.Next() {
		var doc entities.RetrievedDocument
		var embeddingJSON []byte
		if err := rows.Scan(&doc.Content, &embeddingJSON, &doc.Metadata.Title, &doc.Metadata.Source, &doc.Metadata.Page); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var stored []float32
		if err := json.Unmarshal(embeddingJSON, &stored); err != nil {
			continue // skip corrupted embeddings
		}
		results = append(results, scored{doc: doc, score: cosineSimilarity(embedding, stored)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > topK {
		results = results[:topK]
	}

	docs := make([]entities.RetrievedDocument, len(results))
	for i, r := range results {
		docs[i] = r.doc
	}
	return docs, nil
}

// Count reports the number of stored chunks.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
