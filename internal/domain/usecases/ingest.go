package usecases

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/domain/ports"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
	"github.com/karakusoft/faqbot/internal/textsplit"
)

// IngestSummary is the result of one ingestion run.
type IngestSummary struct {
	Status          string `json:"status"`
	ChunksProcessed int    `json:"chunks_processed"`
}

// IngestUseCase processes PDF documents from the document store into the
// vector index: extract text per page, chunk, dedupe by content hash,
// embed, store. A document that fails extraction is logged and skipped;
// the batch continues.
type IngestUseCase struct {
	store    ports.ObjectStore
	parser   ports.DocumentParser
	embedder ports.Embedder
	vectors  ports.VectorStore
	splitter *textsplit.Splitter
	log      *logger.Logger
}

// NewIngestUseCase creates an IngestUseCase with injected collaborators.
func NewIngestUseCase(
	store ports.ObjectStore,
	parser ports.DocumentParser,
	embedder ports.Embedder,
	vectors ports.VectorStore,
	splitter *textsplit.Splitter,
	log *logger.Logger,
) *IngestUseCase {
	if splitter == nil {
		splitter = textsplit.New()
	}
	return &IngestUseCase{
		store:    store,
		parser:   parser,
		embedder: embedder,
		vectors:  vectors,
		splitter: splitter,
		log:      log,
	}
}

// Run ingests every PDF object under prefix and reports how many unique
// chunks were stored. Chunk IDs are the md5 of their content, so
// re-ingesting an unchanged document set writes the same keys again and
// adds nothing.
func (uc *IngestUseCase) Run(ctx context.Context, prefix string) (*IngestSummary, error) {
	keys, err := uc.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var all []entities.Chunk
	for _, key := range keys {
		if !strings.HasSuffix(strings.ToLower(key), ".pdf") {
			continue
		}
		chunks, err := uc.chunkObject(ctx, key)
		if err != nil {
			uc.log.Warn("ドキュメントの処理に失敗しました", "key", key, "error", err)
			continue
		}
		all = append(all, chunks...)
	}

	unique := dedupeByContent(all)
	if len(unique) == 0 {
		return &IngestSummary{Status: "success", ChunksProcessed: 0}, nil
	}

	texts := make([]string, len(unique))
	for i, c := range unique {
		texts[i] = c.Content
	}
	embeddings, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	for i := range unique {
		unique[i].Embedding = embeddings[i]
	}

	if err := uc.vectors.Store(ctx, unique); err != nil {
		return nil, fmt.Errorf("storing chunks: %w", err)
	}

	uc.log.Info("インジェスト完了", "chunks_processed", len(unique))
	return &IngestSummary{Status: "success", ChunksProcessed: len(unique)}, nil
}

// IngestObject processes a single object, used by the file watcher to pick
// up new or changed documents without re-running the whole batch.
func (uc *IngestUseCase) IngestObject(ctx context.Context, key string) (int, error) {
	chunks, err := uc.chunkObject(ctx, key)
	if err != nil {
		return 0, err
	}
	unique := dedupeByContent(chunks)
	if len(unique) == 0 {
		return 0, nil
	}

	texts := make([]string, len(unique))
	for i, c := range unique {
		texts[i] = c.Content
	}
	embeddings, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding chunks: %w", err)
	}
	for i := range unique {
		unique[i].Embedding = embeddings[i]
	}
	if err := uc.vectors.Store(ctx, unique); err != nil {
		return 0, fmt.Errorf("storing chunks: %w", err)
	}
	return len(unique), nil
}

// chunkObject fetches one PDF, extracts its text, and splits it into
// chunks tagged with source metadata.
func (uc *IngestUseCase) chunkObject(ctx context.Context, key string) ([]entities.Chunk, error) {
	data, err := uc.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", key, err)
	}

	pages, err := uc.parser.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}

	var text strings.Builder
	for _, page := range pages {
		if page == "" {
			continue
		}
		text.WriteString(page)
		text.WriteString("\n")
	}

	meta := entities.DocumentMetadata{
		Source: key,
		Title:  strings.TrimSuffix(path.Base(key), path.Ext(key)),
		Page:   "all",
	}

	pieces := uc.splitter.Split(text.String())
	chunks := make([]entities.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, entities.Chunk{
			ID:       contentHash(piece),
			Content:  piece,
			Metadata: meta,
		})
	}
	return chunks, nil
}

// dedupeByContent keeps the first chunk for each distinct content hash.
func dedupeByContent(chunks []entities.Chunk) []entities.Chunk {
	seen := make(map[string]struct{}, len(chunks))
	unique := make([]entities.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

func contentHash(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}
