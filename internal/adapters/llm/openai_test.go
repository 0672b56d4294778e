package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestGenerate(t *testing.T) {
	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [
				{"message": {"role": "assistant", "content": "勤務時間は9時から18時です。"}}
			]
		}`))
	}))
	defer ts.Close()

	a := NewOpenAIAdapter(ts.URL+"/v1", "test-key", "gpt-4o-mini")
	answer, err := a.Generate(context.Background(), "勤務時間を教えてください")

	require.NoError(t, err)
	assert.Equal(t, "勤務時間は9時から18時です。", answer)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "勤務時間を教えてください", gotReq.Messages[0].Content)
}

func TestGenerate_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	a := NewOpenAIAdapter(ts.URL+"/v1", "test-key", "gpt-4o-mini")
	_, err := a.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	a := NewOpenAIAdapter(ts.URL+"/v1", "test-key", "gpt-4o-mini")
	_, err := a.Generate(context.Background(), "prompt")

	assert.Error(t, err)
}
