// The server command runs the FAQ chatbot HTTP service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/karakusoft/faqbot/internal/adapters/embedding"
	"github.com/karakusoft/faqbot/internal/adapters/knowledgebase"
	"github.com/karakusoft/faqbot/internal/adapters/llm"
	"github.com/karakusoft/faqbot/internal/adapters/vectordb"
	"github.com/karakusoft/faqbot/internal/config"
	"github.com/karakusoft/faqbot/internal/domain/ports"
	"github.com/karakusoft/faqbot/internal/domain/usecases"
	"github.com/karakusoft/faqbot/internal/infrastructure/httpserver"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
	"github.com/karakusoft/faqbot/internal/textsplit"
)

func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logg.Sync()

	retriever, err := buildRetriever(cfg)
	if err != nil {
		logg.Fatal("リトリーバーの初期化に失敗しました", "error", err)
	}

	generator := llm.NewOpenAIAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.GenerationModel)

	var pre *usecases.Preprocessor
	if usecases.ChunkSelection(cfg.ChunkSelection) == usecases.SelectFirstChunk {
		splitter := textsplit.New(
			textsplit.WithChunkSize(cfg.QueryChunkSize),
			textsplit.WithOverlap(cfg.QueryChunkOverlap),
		)
		pre = usecases.NewPreprocessor(usecases.SelectFirstChunk, splitter)
	} else {
		pre = usecases.NewPreprocessor(usecases.SelectNone, nil)
	}

	chat := usecases.NewChatUseCase(pre, retriever, generator, cfg.MaxHistoryMessages)
	server := httpserver.NewServer(chat, logg, cfg.ListenAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logg.Fatal("サーバーが異常終了しました", "error", err)
	}
}

func buildRetriever(cfg config.Config) (ports.Retriever, error) {
	switch cfg.RetrieverKind {
	case config.RetrieverVectorDB:
		store, err := vectordb.NewSQLiteStore(cfg.VectorStorePath)
		if err != nil {
			return nil, err
		}
		embedder := embedding.NewOpenAIAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel)
		return vectordb.NewRetriever(embedder, store, cfg.RetrievalTopK), nil
	default:
		return knowledgebase.NewHTTPRetriever(cfg.KnowledgeBaseURL, cfg.KnowledgeBaseIndexID, cfg.RetrievalTopK), nil
	}
}
