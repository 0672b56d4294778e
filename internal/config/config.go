// Package config loads service configuration from the environment with
// documented defaults. No parsing logic beyond defaulting.
package config

import (
	"os"
	"strconv"
)

// Retriever backends.
const (
	RetrieverKnowledgeBase = "knowledgebase"
	RetrieverVectorDB      = "vectordb"
)

// Config is the full environment-driven configuration.
type Config struct {
	// Serving
	ListenAddr string
	LogMode    string

	// OpenAI-compatible LLM/embedding endpoint
	LLMBaseURL     string
	LLMAPIKey      string
	GenerationModel string
	EmbeddingModel  string

	// Retrieval
	RetrieverKind        string
	KnowledgeBaseURL     string
	KnowledgeBaseIndexID string
	RetrievalTopK        int

	// Query preprocessing
	ChunkSelection    string
	QueryChunkSize    int
	QueryChunkOverlap int

	// Conversation history
	MaxHistoryMessages int

	// Ingestion
	DocumentsDir    string
	DocumentsPrefix string
	ChunkSize       int
	ChunkOverlap    int
	VectorStorePath string
}

// Load reads every setting from the environment, applying defaults.
func Load() Config {
	return Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8000"),
		LogMode:    getEnv("LOG_MODE", "dev"),

		LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:       getEnv("LLM_API_KEY", ""),
		GenerationModel: getEnv("GENERATION_MODEL_ID", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL_ID", "text-embedding-3-small"),

		RetrieverKind:        getEnv("RETRIEVER_KIND", RetrieverKnowledgeBase),
		KnowledgeBaseURL:     getEnv("KNOWLEDGE_BASE_URL", "http://localhost:9200"),
		KnowledgeBaseIndexID: getEnv("KNOWLEDGE_BASE_INDEX_ID", "pdf_documents"),
		RetrievalTopK:        getEnvAsInt("RETRIEVAL_TOP_K", 5),

		ChunkSelection:    getEnv("CHUNK_SELECTION", "none"),
		QueryChunkSize:    getEnvAsInt("QUERY_CHUNK_SIZE", 100),
		QueryChunkOverlap: getEnvAsInt("QUERY_CHUNK_OVERLAP", 20),

		MaxHistoryMessages: getEnvAsInt("MAX_HISTORY_MESSAGES", 60),

		DocumentsDir:    getEnv("DOCUMENTS_DIR", "./documents"),
		DocumentsPrefix: getEnv("DOCUMENTS_PREFIX", ""),
		ChunkSize:       getEnvAsInt("CHUNK_SIZE", 800),
		ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 200),
		VectorStorePath: getEnv("VECTOR_STORE_PATH", "./data"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
