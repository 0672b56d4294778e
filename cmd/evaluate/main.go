// The evaluate command drives a running chat endpoint with a question set
// and records every answer for offline scoring.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karakusoft/faqbot/internal/config"
	"github.com/karakusoft/faqbot/internal/evaluation"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
	"github.com/karakusoft/faqbot/internal/pkg/retry"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8000/chat", "chat endpoint URL")
	questionsPath := flag.String("questions", "test_questions.json", "JSON file with the question set")
	outPath := flag.String("out", "evaluation_results.jsonl", "output file (JSON lines)")
	interval := flag.Duration("interval", 30*time.Second, "pacing delay between requests")
	attempts := flag.Int("attempts", retry.Default.MaxAttempts, "attempts per question")
	backoff := flag.Duration("backoff", retry.Default.Backoff, "base backoff between attempts")
	flag.Parse()

	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logg.Sync()

	questions, err := evaluation.LoadQuestions(*questionsPath)
	if err != nil {
		logg.Fatal("質問セットの読み込みに失敗しました", "error", err)
	}

	policy := retry.Policy{MaxAttempts: *attempts, Backoff: *backoff}
	client := evaluation.NewClient(*endpoint, policy, *interval)
	runner := evaluation.NewRunner(client, logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := runner.Run(ctx, questions)
	if err := evaluation.WriteResults(*outPath, results); err != nil {
		logg.Fatal("結果の書き込みに失敗しました", "error", err)
	}
	logg.Info("評価実行が完了しました", "questions", len(questions), "out", *outPath)
}
