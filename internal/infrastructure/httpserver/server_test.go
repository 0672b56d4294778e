package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/domain/usecases"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
)

type stubRetriever struct {
	docs []entities.RetrievedDocument
	err  error
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string) ([]entities.RetrievedDocument, error) {
	return s.docs, s.err
}

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func newTestServer(retriever *stubRetriever, generator *stubGenerator) *Server {
	gin.SetMode(gin.TestMode)
	chat := usecases.NewChatUseCase(
		usecases.NewPreprocessor(usecases.SelectNone, nil),
		retriever, generator, 60,
	)
	return NewServer(chat, logger.NewNop(), ":0")
}

func postChat(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint_Success(t *testing.T) {
	retriever := &stubRetriever{docs: []entities.RetrievedDocument{
		{
			Content:  "本社は東京都千代田区にあります。",
			Metadata: entities.DocumentMetadata{Title: "会社概要"},
		},
	}}
	server := newTestServer(retriever, &stubGenerator{response: "本社は東京都千代田区にあります。"})

	rec := postChat(t, server, `{"message":"本社の所在地を教えてください。"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "本社は東京都千代田区にあります。", resp.Response)
	require.Len(t, resp.RelatedDocuments, 1)
	assert.Equal(t, "会社概要", resp.RelatedDocuments[0].Title)
	assert.NotEmpty(t, resp.SessionID)
}

func TestChatEndpoint_EmptyMessageIsClientError(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{})

	rec := postChat(t, server, `{"message":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "メッセージが送信されていません", body["error"])
}

func TestChatEndpoint_MissingMessageIsClientError(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{})

	rec := postChat(t, server, `{"session_id":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint_MalformedJSONIsClientError(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{})

	rec := postChat(t, server, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "無効なJSON形式です", body["error"])
}

func TestChatEndpoint_RetrievalFailureIsGenericServerError(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("knowledge base timeout: connection reset")}
	server := newTestServer(retriever, &stubGenerator{})

	rec := postChat(t, server, `{"message":"質問"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "サーバーエラーが発生しました", body["error"])
	// Internal details must not leak into the response.
	assert.NotContains(t, rec.Body.String(), "timeout")
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestChatEndpoint_GenerationFailureIsGenericServerError(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{err: errors.New("model overloaded")})

	rec := postChat(t, server, `{"message":"質問"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "overloaded")
}

func TestChatEndpoint_HistoryAccepted(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{response: "ok"})

	rec := postChat(t, server, `{
		"message": "続きを教えてください。",
		"session_id": "s1",
		"messages_history": [
			{"role": "user", "content": "本社はどこですか？"},
			{"role": "assistant", "content": "東京都千代田区です。"}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.SessionID)
}

func TestChatEndpoint_EmptyRetrievalGivesEmptyCitationArray(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{response: "関連ドキュメントに回答がありませんでした。"})

	rec := postChat(t, server, `{"message":"社歌はありますか？"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	// related_documents must be [] in JSON, not null.
	assert.Contains(t, rec.Body.String(), `"related_documents":[]`)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(&stubRetriever{}, &stubGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
