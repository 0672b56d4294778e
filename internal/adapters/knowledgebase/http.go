// Package knowledgebase provides the retriever adapter for the managed
// knowledge-base search service, implementing ports.Retriever.
package knowledgebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/karakusoft/faqbot/internal/domain/entities"
)

// HTTPRetriever calls the knowledge base's retrieve endpoint over HTTP.
// The service embeds the query itself; callers send text only.
type HTTPRetriever struct {
	baseURL string
	indexID string
	topK    int
	client  *http.Client
}

// NewHTTPRetriever creates the adapter. topK <= 0 falls back to 5.
func NewHTTPRetriever(baseURL, indexID string, topK int) *HTTPRetriever {
	if topK <= 0 {
		topK = 5
	}
	return &HTTPRetriever{
		baseURL: baseURL,
		indexID: indexID,
		topK:    topK,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// retrieveRequest is the knowledge base retrieve API request.
type retrieveRequest struct {
	IndexID string `json:"index_id"`
	Query   string `json:"query"`
	TopK    int    `json:"top_k"`
}

// retrieveResponse is the knowledge base retrieve API response.
type retrieveResponse struct {
	Results []retrieveResult `json:"results"`
}

type retrieveResult struct {
	Content struct {
		Text string `json:"text"`
	} `json:"content"`
	Metadata struct {
		Title  string `json:"title"`
		Source string `json:"source"`
		Page   string `json:"page"`
	} `json:"metadata"`
	Score float64 `json:"score"`
}

// Retrieve returns the ranked candidate documents for the query. Results
// with missing fields come back as documents with empty content or title;
// defaulting is the domain's concern, not the wire adapter's.
func (r *HTTPRetriever) Retrieve(ctx context.Context, query string) ([]entities.RetrievedDocument, error) {
	body, err := json.Marshal(retrieveRequest{
		IndexID: r.indexID,
		Query:   query,
		TopK:    r.topK,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/retrieve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling knowledge base: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge base returned status %d", resp.StatusCode)
	}

	var payload retrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	docs := make([]entities.RetrievedDocument, len(payload.Results))
	for i, result := range payload.Results {
		docs[i] = entities.RetrievedDocument{
			Content: result.Content.Text,
			Metadata: entities.DocumentMetadata{
				Title:  result.Metadata.Title,
				Source: result.Metadata.Source,
				Page:   result.Metadata.Page,
			},
		}
	}
	return docs, nil
}
