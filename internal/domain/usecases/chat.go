// Package usecases contains the application business rules: the chat
// request pipeline and the ingestion pipeline. Usecases orchestrate
// entities and depend only on port interfaces.
package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/domain/ports"
)

// ChatUseCase runs one chat request through the full pipeline:
// validate → preprocess → retrieve → build context → generate → respond.
// Each step is strictly sequential; a failure at any step surfaces as a
// PipelineError tagged with the stage. The usecase never retries —
// transient-failure policy belongs to the collaborator clients or the
// caller, not here.
type ChatUseCase struct {
	pre        *Preprocessor
	retriever  ports.Retriever
	generator  ports.Generator
	maxHistory int
}

// NewChatUseCase creates a ChatUseCase with injected collaborators.
func NewChatUseCase(pre *Preprocessor, retriever ports.Retriever, generator ports.Generator, maxHistory int) *ChatUseCase {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistoryMessages
	}
	return &ChatUseCase{
		pre:        pre,
		retriever:  retriever,
		generator:  generator,
		maxHistory: maxHistory,
	}
}

// Chat answers one request. An empty message fails validation before any
// collaborator is invoked. Documents with missing fields never fail the
// pipeline; they are defaulted during context building.
func (uc *ChatUseCase) Chat(ctx context.Context, req *entities.ChatRequest) (*entities.ChatResponse, error) {
	if req == nil || req.Message == "" {
		return nil, failed(StageValidation, ErrEmptyMessage)
	}

	query := uc.pre.Process(req.Message)

	docs, err := uc.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, failed(StageRetrieval, err)
	}

	contexts, citations := Collect(docs)
	historyText := FormatHistory(req.History, uc.maxHistory)
	prompt := ComposePrompt(query, contexts, historyText)

	answer, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, failed(StageGeneration, err)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return &entities.ChatResponse{
		Response:         answer,
		RelatedDocuments: citations,
		SessionID:        sessionID,
	}, nil
}
