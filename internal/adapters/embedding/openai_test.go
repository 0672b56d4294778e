package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

// fakeEmbeddingsServer answers each input with a one-element vector equal
// to its length, so tests can verify order is preserved.
func fakeEmbeddingsServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		calls.Add(1)

		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type datum struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]datum, len(req.Input))
		for i, input := range req.Input {
			data[i] = datum{Object: "embedding", Embedding: []float32{float32(len(input))}, Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
		})
	}))
}

func TestEmbed(t *testing.T) {
	var calls atomic.Int32
	ts := fakeEmbeddingsServer(t, &calls)
	defer ts.Close()

	a := NewOpenAIAdapter(ts.URL+"/v1", "test-key", "text-embedding-3-small")
	vector, err := a.Embed(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, []float32{3}, vector)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEmbedBatch_OrderPreservedAcrossBatches(t *testing.T) {
	var calls atomic.Int32
	ts := fakeEmbeddingsServer(t, &calls)
	defer ts.Close()

	texts := make([]string, 40)
	for i := range texts {
		texts[i] = fmt.Sprintf("%0*d", i+1, 0) // length i+1
	}

	a := NewOpenAIAdapter(ts.URL+"/v1", "test-key", "text-embedding-3-small")
	vectors, err := a.EmbedBatch(context.Background(), texts)

	require.NoError(t, err)
	require.Len(t, vectors, 40)
	for i, v := range vectors {
		assert.Equal(t, []float32{float32(i + 1)}, v, "vector %d out of order", i)
	}
	// 40 inputs at 16 per call is 3 calls.
	assert.Equal(t, int32(3), calls.Load())
}

func TestEmbedBatch_Empty(t *testing.T) {
	a := NewOpenAIAdapter("http://unused.invalid/v1", "test-key", "")
	vectors, err := a.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbed_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	a := NewOpenAIAdapter(ts.URL+"/v1", "test-key", "text-embedding-3-small")
	_, err := a.Embed(context.Background(), "abc")

	assert.Error(t, err)
}
