// The ingest command runs the offline PDF ingestion pipeline: extract,
// chunk, dedupe, embed, store. With -watch it keeps running and ingests
// documents as they appear.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/karakusoft/faqbot/internal/adapters/embedding"
	"github.com/karakusoft/faqbot/internal/adapters/filewatcher"
	"github.com/karakusoft/faqbot/internal/adapters/objectstore"
	"github.com/karakusoft/faqbot/internal/adapters/parser"
	"github.com/karakusoft/faqbot/internal/adapters/vectordb"
	"github.com/karakusoft/faqbot/internal/config"
	"github.com/karakusoft/faqbot/internal/domain/ports"
	"github.com/karakusoft/faqbot/internal/domain/usecases"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
	"github.com/karakusoft/faqbot/internal/textsplit"
)

func main() {
	watch := flag.Bool("watch", false, "keep watching the documents directory after the initial run")
	flag.Parse()

	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logg.Sync()

	store := objectstore.NewFilesystemStore(cfg.DocumentsDir)
	vectors, err := vectordb.NewSQLiteStore(cfg.VectorStorePath)
	if err != nil {
		logg.Fatal("ベクトルストアの初期化に失敗しました", "error", err)
	}
	defer vectors.Close()

	embedder := embedding.NewOpenAIAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel)
	splitter := textsplit.New(
		textsplit.WithChunkSize(cfg.ChunkSize),
		textsplit.WithOverlap(cfg.ChunkOverlap),
	)

	ingest := usecases.NewIngestUseCase(store, parser.NewPDFParser(), embedder, vectors, splitter, logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := ingest.Run(ctx, cfg.DocumentsPrefix)
	if err != nil {
		logg.Fatal("インジェストに失敗しました", "error", err)
	}
	out, _ := json.Marshal(summary)
	fmt.Println(string(out))

	if !*watch {
		return
	}

	if err := watchLoop(ctx, cfg, store, ingest, logg); err != nil && ctx.Err() == nil {
		logg.Fatal("監視中にエラーが発生しました", "error", err)
	}
}

// watchLoop re-ingests documents as the watcher reports changes.
func watchLoop(ctx context.Context, cfg config.Config, store *objectstore.FilesystemStore, ingest *usecases.IngestUseCase, logg *logger.Logger) error {
	watcher, err := filewatcher.NewFSNotifyWatcher([]string{".pdf"})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, cfg.DocumentsDir)
	if err != nil {
		return err
	}

	logg.Info("ドキュメントディレクトリを監視します", "dir", cfg.DocumentsDir)
	for event := range events {
		if event.Operation == ports.FileDeleted {
			continue
		}
		key, ok := store.Key(event.Path)
		if !ok {
			continue
		}
		count, err := ingest.IngestObject(ctx, key)
		if err != nil {
			logg.Warn("ドキュメントの再インジェストに失敗しました", "key", key, "error", err)
			continue
		}
		logg.Info("ドキュメントを取り込みました", "key", key, "chunks", count)
	}
	return nil
}
