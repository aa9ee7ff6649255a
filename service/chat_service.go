package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/types"
)

const conversationTitleLimit = 60

// ChatService orchestrates one answerQuery invocation: query analysis,
// cascading retrieval, answer synthesis, then conversation persistence.
// Analysis and retrieval degrade silently; synthesis and persistence
// failures abort the request. Nothing is persisted until the full
// pipeline has succeeded.
type ChatService struct {
	analyzer      *QueryAnalyzer
	retrieval     *RetrievalService
	answers       *AnswerService
	conversations repository.ConversationRepo
	logger        zerolog.Logger
}

func NewChatService(
	analyzer *QueryAnalyzer,
	retrieval *RetrievalService,
	answers *AnswerService,
	conversations repository.ConversationRepo,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		analyzer:      analyzer,
		retrieval:     retrieval,
		answers:       answers,
		conversations: conversations,
		logger:        logger.With().Str("component", "chat").Logger(),
	}
}

func (s *ChatService) AnswerQuery(ctx context.Context, userID, query, conversationID string) (*types.ChatAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	// An existing conversation must belong to the caller before any
	// expensive work happens.
	if conversationID != "" {
		if _, err := s.conversations.GetConversation(ctx, userID, conversationID); err != nil {
			return nil, ErrConversationNotFound
		}
	}

	analysis := s.analyzer.Analyze(ctx, query)

	result := s.retrieval.Retrieve(ctx, userID, query, analysis)
	s.logger.Debug().
		Str("method", result.Method).
		Int("documents", len(result.Documents)).
		Float64("confidence", result.Confidence).
		Msg("retrieval complete")

	response, err := s.answers.Synthesize(ctx, query, result, analysis)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	if conversationID == "" {
		conv := &types.Conversation{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     conversationTitle(query),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.conversations.CreateConversation(ctx, conv); err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
		conversationID = conv.ID
	}

	sources := result.SourceTitles()
	userMessage := &types.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           types.RoleUser,
		Content:        query,
		CreatedAt:      now,
	}
	botMessage := &types.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           types.RoleBot,
		Content:        response,
		Sources:        sources,
		Confidence:     result.Confidence,
		CreatedAt:      now,
	}
	if err := s.conversations.AppendMessages(ctx, userMessage, botMessage); err != nil {
		return nil, fmt.Errorf("failed to persist messages: %w", err)
	}
	if err := s.conversations.TouchConversation(ctx, conversationID, now); err != nil {
		s.logger.Warn().Err(err).Msg("failed to touch conversation timestamp")
	}

	return &types.ChatAnswer{
		Response:       response,
		Sources:        sources,
		ConversationID: conversationID,
		Confidence:     result.Confidence,
		SearchMethod:   result.Method,
		Analysis:       analysis,
	}, nil
}

func conversationTitle(query string) string {
	if len(query) <= conversationTitleLimit {
		return query
	}
	return query[:conversationTitleLimit] + "..."
}
