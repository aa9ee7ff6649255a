package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/proposalops/docchat-be/types"
)

const classificationSystemPrompt = `You classify search queries for a private repository of RFPs, case studies, proposals and win/loss analyses.
Respond with a single JSON object and nothing else:
{
  "intent": one of "information_retrieval", "comparison", "summarization", "specific_search", "general_question",
  "confidence": number between 0 and 1,
  "keywords": [significant search terms from the query],
  "entities": [named things: companies, industries, technologies, document types],
  "industries": [industries mentioned, if any],
  "technologies": [technologies mentioned, if any],
  "documentTypes": [document types mentioned, if any],
  "timeframe": a year or phrase like "recent", if mentioned
}`

// llmAnalysis mirrors the JSON shape requested from the classifier.
// Pointer confidence distinguishes "absent" from zero.
type llmAnalysis struct {
	Intent        string   `json:"intent"`
	Confidence    *float64 `json:"confidence"`
	Keywords      []string `json:"keywords"`
	Entities      []string `json:"entities"`
	Industries    []string `json:"industries"`
	Technologies  []string `json:"technologies"`
	DocumentTypes []string `json:"documentTypes"`
	Timeframe     string   `json:"timeframe"`
}

// QueryAnalyzer produces a QueryAnalysis for a raw query. The primary path
// asks the completion model for a structured classification; any failure
// there falls back to the heuristic NLP pipeline. It never errors past its
// boundary.
type QueryAnalyzer struct {
	completion CompletionService
	nlp        *NLPService
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewQueryAnalyzer creates an analyzer. A nil completion service disables
// the LLM path and the heuristic pipeline is used directly.
func NewQueryAnalyzer(completion CompletionService, nlp *NLPService, timeout time.Duration, logger zerolog.Logger) *QueryAnalyzer {
	return &QueryAnalyzer{
		completion: completion,
		nlp:        nlp,
		timeout:    timeout,
		logger:     logger.With().Str("component", "query_analyzer").Logger(),
	}
}

func (a *QueryAnalyzer) Analyze(ctx context.Context, query string) *types.QueryAnalysis {
	if a.completion == nil {
		return a.nlp.Analyze(query)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	response, err := a.completion.Complete(callCtx, classificationSystemPrompt, query)
	if err != nil {
		a.logger.Warn().Err(err).Msg("LLM classification failed, using heuristic analysis")
		return a.nlp.Analyze(query)
	}

	analysis, err := parseAnalysisResponse(response)
	if err != nil {
		a.logger.Warn().Err(err).Str("response", response).Msg("unparseable classification, using heuristic analysis")
		return a.nlp.Analyze(query)
	}
	return analysis
}

func parseAnalysisResponse(response string) (*types.QueryAnalysis, error) {
	// Models wrap JSON in markdown fences often enough to strip them here.
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var parsed llmAnalysis
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, err
	}

	analysis := &types.QueryAnalysis{
		Intent:     parsed.Intent,
		Confidence: 0.7,
		Keywords:   parsed.Keywords,
		Entities:   parsed.Entities,
	}
	if !validIntent(parsed.Intent) {
		analysis.Intent = types.IntentGeneralQuestion
	}
	if parsed.Confidence != nil {
		analysis.Confidence = clamp01(*parsed.Confidence)
	}
	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}
	if analysis.Entities == nil {
		analysis.Entities = []string{}
	}

	if len(parsed.Industries) > 0 {
		analysis.Filters.Industries = parsed.Industries
	}
	if len(parsed.Technologies) > 0 {
		analysis.Filters.Technologies = parsed.Technologies
	}
	if len(parsed.DocumentTypes) > 0 {
		analysis.Filters.DocumentTypes = parsed.DocumentTypes
	}
	analysis.Filters.Timeframe = parsed.Timeframe

	return analysis, nil
}

func validIntent(intent string) bool {
	switch intent {
	case types.IntentInformationRetrieval, types.IntentComparison,
		types.IntentSummarization, types.IntentSpecificSearch,
		types.IntentGeneralQuestion:
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
