// Package entities contains the core business entities of the FAQ chatbot.
// Pure domain objects with no knowledge of transports or external services.
package entities

// DefaultDocumentTitle is the sentinel title used when a retrieved document
// carries no title metadata.
const DefaultDocumentTitle = "不明なドキュメント"

// Turn is a single prior message in a conversation. Role is "user" or
// "assistant"; order of turns is chronological.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is one incoming question with optional session context.
// Message must be non-empty; an empty message is a client error.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	History   []Turn `json:"messages_history,omitempty"`
}

// RetrievedDocument is one candidate document returned by a retriever,
// in rank order. Content may be empty; Title may be missing.
type RetrievedDocument struct {
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata carries whatever the retrieval backend knows about the
// document's origin.
type DocumentMetadata struct {
	Title  string
	Source string
	Page   string
}

// Title returns the document title, falling back to the sentinel when the
// backend supplied none. All title defaulting goes through here.
func (d RetrievedDocument) Title() string {
	if d.Metadata.Title == "" {
		return DefaultDocumentTitle
	}
	return d.Metadata.Title
}

// Citation is a deduplicated reference to a source document shown alongside
// the generated answer. At most one citation per distinct title per response.
type Citation struct {
	Title string `json:"title"`
}

// ChatResponse is the final answer for one request. Constructed once,
// returned, never persisted server-side.
type ChatResponse struct {
	Response         string     `json:"response"`
	RelatedDocuments []Citation `json:"related_documents"`
	SessionID        string     `json:"session_id,omitempty"`
}

// Document is a source document pulled from the document store during
// ingestion, before chunking.
type Document struct {
	Source  string // origin locator, e.g. file path or object key
	Title   string // derived from the object name
	Content string
}

// Chunk is a bounded-size piece of a document, the unit of embedding and
// storage in the vector index.
type Chunk struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  DocumentMetadata
}
