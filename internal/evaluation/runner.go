package evaluation

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
)

// FailureMarker is recorded as the answer for a question whose request
// exhausted its retries. The batch continues to the next question.
const FailureMarker = "評価エラー"

// Question is one test item: the question to send and the model answer it
// will be scored against.
type Question struct {
	Question  string `json:"question"`
	Reference string `json:"reference,omitempty"`
}

// Result is the recorded outcome for one question.
type Result struct {
	Question         string              `json:"question"`
	Reference        string              `json:"reference,omitempty"`
	Response         string              `json:"response"`
	RelatedDocuments []entities.Citation `json:"related_documents"`
	Error            string              `json:"error,omitempty"`
}

// Runner drives the endpoint through a question set.
type Runner struct {
	client *Client
	log    *logger.Logger
}

// NewRunner creates a Runner.
func NewRunner(client *Client, log *logger.Logger) *Runner {
	return &Runner{client: client, log: log}
}

// Run asks every question in order and returns one result per question.
// A failed question records the failure marker and the run continues.
func (r *Runner) Run(ctx context.Context, questions []Question) []Result {
	results := make([]Result, 0, len(questions))
	for i, q := range questions {
		r.log.Info("質問を送信します", "index", i+1, "total", len(questions))

		result := Result{
			Question:         q.Question,
			Reference:        q.Reference,
			RelatedDocuments: []entities.Citation{},
		}
		resp, err := r.client.Ask(ctx, q.Question)
		if err != nil {
			r.log.Warn("回答の取得に失敗しました", "question", q.Question, "error", err)
			result.Response = FailureMarker
			result.Error = err.Error()
		} else {
			result.Response = resp.Response
			result.RelatedDocuments = resp.RelatedDocuments
		}
		results = append(results, result)
	}
	return results
}

// LoadQuestions reads a JSON array of questions from path.
func LoadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return questions, nil
}

// WriteResults writes results as JSON lines to path.
func WriteResults(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
	return w.Flush()
}
