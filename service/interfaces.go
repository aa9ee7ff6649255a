package service

import (
	"context"

	"github.com/proposalops/docchat-be/types"
)

// EmbeddingService turns text into a fixed-dimension vector. Callers must
// treat failure as recoverable: the retrieval cascade falls through to
// text search when embedding is unavailable.
type EmbeddingService interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// CompletionService generates a text completion from a system and user
// prompt. Answer synthesis treats failure as fatal for the request; the
// query analyzer treats it as recoverable.
type CompletionService interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ChatAssistant is the single operation the chat API exposes.
type ChatAssistant interface {
	AnswerQuery(ctx context.Context, userID, query, conversationID string) (*types.ChatAnswer, error)
}
