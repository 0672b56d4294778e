// Package evaluation drives a live chat endpoint with test questions and
// records the answers for offline scoring. Metric computation itself is
// external; this package only collects the data.
package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/pkg/retry"
)

// Client posts questions to the chat endpoint with caller-side courtesy
// throttling: a fixed pacing delay between requests plus a bounded retry
// schedule per question. This is throttle avoidance, not a correctness
// requirement of the pipeline.
type Client struct {
	endpoint string
	http     *http.Client
	policy   retry.Policy
	limiter  *rate.Limiter
}

// NewClient creates a client for the given chat endpoint URL. interval is
// the minimum spacing between requests; zero disables pacing.
func NewClient(endpoint string, policy retry.Policy, interval time.Duration) *Client {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 200 * time.Second},
		policy:   policy,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Ask sends one question and returns the chat response, retrying per the
// configured policy.
func (c *Client) Ask(ctx context.Context, question string) (*entities.ChatResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp *entities.ChatResponse
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		var postErr error
		resp, postErr = c.post(ctx, question)
		return postErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, question string) (*entities.ChatResponse, error) {
	body, err := json.Marshal(entities.ChatRequest{Message: question})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling endpoint: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("endpoint returned status %d", httpResp.StatusCode)
	}

	var chatResp entities.ChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &chatResp, nil
}
