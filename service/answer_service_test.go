package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalops/docchat-be/types"
)

func TestBuildPromptWithDocuments(t *testing.T) {
	service := NewAnswerService(nil, 15000, time.Second)

	result := &types.RetrievalResult{
		Documents: []types.ScoredDocument{
			{
				Document: types.Document{
					Title:      "Acme Cloud Migration",
					DocType:    types.DocTypeCaseStudy,
					ClientName: "Acme",
					Industry:   "Healthcare",
					Year:       2023,
					Summary:    "Moved Acme to the cloud.",
					Content:    "Full engagement write-up.",
				},
				Score: 0.8,
			},
		},
		Method:     types.MethodVector,
		Confidence: 0.8,
	}

	system, user := service.BuildPrompt("what did we do for Acme?", result, nil)

	assert.Contains(t, system, "Ground every answer in the source documents")
	assert.Contains(t, user, "Question: what did we do for Acme?")
	assert.Contains(t, user, "--- Document 1: Acme Cloud Migration")
	assert.Contains(t, user, "client: Acme")
	assert.Contains(t, user, "industry: Healthcare")
	assert.Contains(t, user, "year: 2023")
	assert.Contains(t, user, "Summary: Moved Acme to the cloud.")
	assert.Contains(t, user, "Full engagement write-up.")
}

func TestBuildPromptWithoutDocuments(t *testing.T) {
	service := NewAnswerService(nil, 15000, time.Second)

	_, user := service.BuildPrompt("anything about quantum?", &types.RetrievalResult{Method: types.MethodNone}, nil)

	assert.Contains(t, user, "No matching documents were found")
	assert.Contains(t, user, "general knowledge")
	assert.Contains(t, user, "more specific")
}

func TestBuildPromptTruncatesContent(t *testing.T) {
	service := NewAnswerService(nil, 100, time.Second)

	result := &types.RetrievalResult{
		Documents: []types.ScoredDocument{
			{Document: types.Document{
				Title:   "Long Document",
				Content: strings.Repeat("x", 500),
			}},
		},
	}

	_, user := service.BuildPrompt("query", result, nil)

	assert.Contains(t, user, "[content truncated]")
	assert.NotContains(t, user, strings.Repeat("x", 101))
}

func TestBuildPromptComparisonInstruction(t *testing.T) {
	service := NewAnswerService(nil, 15000, time.Second)

	analysis := &types.QueryAnalysis{Intent: types.IntentComparison}
	system, _ := service.BuildPrompt("compare A and B", &types.RetrievalResult{}, analysis)
	assert.Contains(t, system, "point-by-point comparison")

	analysis.Intent = types.IntentSummarization
	system, _ = service.BuildPrompt("summarize", &types.RetrievalResult{}, analysis)
	assert.Contains(t, system, "bullet points")

	analysis.Intent = types.IntentGeneralQuestion
	system, _ = service.BuildPrompt("why", &types.RetrievalResult{}, analysis)
	assert.NotContains(t, system, "point-by-point")
}

func TestSynthesizeDelegatesToCompletion(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			assert.Contains(t, userPrompt, "Question: the query")
			return "the answer", nil
		},
	}
	service := NewAnswerService(completion, 15000, time.Second)

	answer, err := service.Synthesize(context.Background(), "the query", &types.RetrievalResult{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)
	assert.Equal(t, 1, completion.completeCalls)
}

func TestSynthesizeCompletionFailureIsFatal(t *testing.T) {
	completion := &mockCompletion{
		completeFunc: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", errors.New("model overloaded")
		},
	}
	service := NewAnswerService(completion, 15000, time.Second)

	_, err := service.Synthesize(context.Background(), "query", &types.RetrievalResult{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer generation failed")
}
