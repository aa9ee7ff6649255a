package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalops/docchat-be/types"
)

func newTestAnalyzer(completion CompletionService) *QueryAnalyzer {
	return NewQueryAnalyzer(completion, NewNLPService(), time.Second, zerolog.Nop())
}

func TestAnalyzeParsesLLMResponse(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return `{
				"intent": "comparison",
				"confidence": 0.9,
				"keywords": ["azure", "aws"],
				"entities": ["Azure", "AWS"],
				"technologies": ["Azure", "AWS"],
				"timeframe": "2024"
			}`, nil
		},
	}

	analysis := newTestAnalyzer(completion).Analyze(context.Background(), "compare azure and aws work in 2024")

	require.NotNil(t, analysis)
	assert.Equal(t, types.IntentComparison, analysis.Intent)
	assert.InDelta(t, 0.9, analysis.Confidence, 1e-9)
	assert.Equal(t, []string{"azure", "aws"}, analysis.Keywords)
	assert.Equal(t, []string{"Azure", "AWS"}, analysis.Filters.Technologies)
	assert.Equal(t, "2024", analysis.Filters.Timeframe)
	assert.Equal(t, "compare azure and aws work in 2024", completion.lastUser)
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "```json\n{\"intent\": \"summarization\", \"confidence\": 0.8}\n```", nil
		},
	}

	analysis := newTestAnalyzer(completion).Analyze(context.Background(), "summarize the engagement")

	require.NotNil(t, analysis)
	assert.Equal(t, types.IntentSummarization, analysis.Intent)
	assert.InDelta(t, 0.8, analysis.Confidence, 1e-9)
}

func TestAnalyzeDefaultsMissingFields(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return `{"intent": "made_up_intent"}`, nil
		},
	}

	analysis := newTestAnalyzer(completion).Analyze(context.Background(), "anything")

	require.NotNil(t, analysis)
	assert.Equal(t, types.IntentGeneralQuestion, analysis.Intent)
	assert.InDelta(t, 0.7, analysis.Confidence, 1e-9)
	assert.NotNil(t, analysis.Keywords)
	assert.Empty(t, analysis.Keywords)
	assert.NotNil(t, analysis.Entities)
	assert.True(t, analysis.Filters.Empty())
}

func TestAnalyzeClampsConfidence(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return `{"intent": "comparison", "confidence": 3.5}`, nil
		},
	}

	analysis := newTestAnalyzer(completion).Analyze(context.Background(), "compare things")
	assert.InDelta(t, 1.0, analysis.Confidence, 1e-9)
}

func TestAnalyzeFallsBackOnLLMError(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	analysis := newTestAnalyzer(completion).Analyze(context.Background(), "tell me about healthcare work")

	require.NotNil(t, analysis)
	// Heuristic result, not an error.
	assert.Equal(t, types.IntentInformationRetrieval, analysis.Intent)
	assert.Contains(t, analysis.Keywords, "healthcare")
}

func TestAnalyzeFallsBackOnUnparseableResponse(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "Sure! Here is my analysis of your query:", nil
		},
	}

	analysis := newTestAnalyzer(completion).Analyze(context.Background(), "summarize our retail wins")

	require.NotNil(t, analysis)
	assert.Equal(t, types.IntentSummarization, analysis.Intent)
	assert.Contains(t, analysis.Entities, "Retail")
}

func TestAnalyzeWithoutCompletionService(t *testing.T) {
	analyzer := newTestAnalyzer(nil)

	analysis := analyzer.Analyze(context.Background(), "compare our proposals")
	require.NotNil(t, analysis)
	assert.Equal(t, types.IntentComparison, analysis.Intent)
}
