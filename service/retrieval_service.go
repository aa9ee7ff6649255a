package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/proposalops/docchat-be/config"
	"github.com/proposalops/docchat-be/database"
	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/types"
)

const (
	maxEmbedKeywords    = 5
	maxEnhancedKeywords = 3
	maxEnhancedEntities = 2
	minTermLength       = 3
	noResultConfidence  = 0.3
	maxConfidence       = 0.95
)

// RetrievalService runs the cascading document search: vector similarity,
// then NLP-enhanced keyword search, then basic keyword search. The first
// strategy that yields at least one document wins. It degrades instead of
// failing: embedding or store errors drop through to the next strategy and
// an all-miss pass returns an empty result with method "none".
type RetrievalService struct {
	docs     repository.DocumentRepo
	index    database.VectorIndex
	embedder EmbeddingService
	cfg      config.RetrievalConfig
	logger   zerolog.Logger
}

func NewRetrievalService(
	docs repository.DocumentRepo,
	index database.VectorIndex,
	embedder EmbeddingService,
	cfg config.RetrievalConfig,
	logger zerolog.Logger,
) *RetrievalService {
	return &RetrievalService{
		docs:     docs,
		index:    index,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.With().Str("component", "retrieval").Logger(),
	}
}

// Retrieve answers a query for one owner. The analysis is optional; when
// absent the cascade goes straight from vector search to basic keyword
// search.
func (s *RetrievalService) Retrieve(ctx context.Context, ownerID, query string, analysis *types.QueryAnalysis) *types.RetrievalResult {
	if result := s.searchVector(ctx, ownerID, query, analysis); result != nil {
		return result
	}

	if analysis.HasSearchTerms() {
		if result := s.searchEnhanced(ctx, ownerID, analysis); result != nil {
			return result
		}
	}

	if result := s.searchBasic(ctx, ownerID, query); result != nil {
		return result
	}

	return &types.RetrievalResult{
		Documents:  nil,
		Method:     types.MethodNone,
		Confidence: noResultConfidence,
	}
}

// searchVector embeds the query (augmented with the analysis' top
// keywords) and asks the vector index for nearest neighbors above the
// similarity threshold. Returns nil on miss or any collaborator failure.
func (s *RetrievalService) searchVector(ctx context.Context, ownerID, query string, analysis *types.QueryAnalysis) *types.RetrievalResult {
	embedText := query
	if analysis != nil && len(analysis.Keywords) > 0 {
		keywords := analysis.Keywords
		if len(keywords) > maxEmbedKeywords {
			keywords = keywords[:maxEmbedKeywords]
		}
		embedText = query + " " + strings.Join(keywords, " ")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	vector, err := s.embedder.EmbedText(callCtx, embedText)
	if err != nil {
		s.logger.Warn().Err(err).Msg("embedding failed, falling through to text search")
		return nil
	}

	hits, err := s.index.SearchNearest(callCtx, ownerID, vector, s.cfg.SimilarityThreshold, s.cfg.VectorLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("vector search failed, falling through to text search")
		return nil
	}
	if len(hits) == 0 {
		return nil
	}

	ids := make([]string, 0, len(hits))
	similarity := make(map[string]float64, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.DocumentID)
		similarity[hit.DocumentID] = hit.Similarity
	}

	docs, err := s.docs.GetByIDs(ctx, ownerID, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("hydrating vector hits failed, falling through to text search")
		return nil
	}
	if len(docs) == 0 {
		return nil
	}

	byID := make(map[string]types.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	// Keep the index's ranking: best similarity first.
	scored := make([]types.ScoredDocument, 0, len(hits))
	var sum float64
	for _, hit := range hits {
		doc, ok := byID[hit.DocumentID]
		if !ok {
			continue
		}
		scored = append(scored, types.ScoredDocument{Document: doc, Score: hit.Similarity})
		sum += hit.Similarity
	}
	if len(scored) == 0 {
		return nil
	}

	avgSimilarity := sum / float64(len(scored))
	return &types.RetrievalResult{
		Documents:  scored,
		Method:     types.MethodVector,
		Confidence: math.Min(maxConfidence, 0.4+avgSimilarity*0.6),
	}
}

// searchEnhanced builds a disjunctive substring query from the analysis'
// top keywords and entities, restricted by the derived industry and
// document-type filters.
func (s *RetrievalService) searchEnhanced(ctx context.Context, ownerID string, analysis *types.QueryAnalysis) *types.RetrievalResult {
	terms := collectSearchTerms(analysis)
	if len(terms) == 0 {
		return nil
	}

	var docTypes []string
	if analysis.Filters.DocumentTypes != nil {
		docTypes = MapDocumentTypes(analysis.Filters.DocumentTypes)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	docs, err := s.docs.SearchTerms(callCtx, ownerID, terms, analysis.Filters.Industries, docTypes, int64(s.cfg.EnhancedLimit))
	if err != nil {
		s.logger.Warn().Err(err).Msg("enhanced text search failed, falling through to basic search")
		return nil
	}
	if len(docs) == 0 {
		return nil
	}

	scored := make([]types.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		scored = append(scored, types.ScoredDocument{
			Document: doc,
			Score:    termMatchRatio(&doc, terms),
		})
	}

	found := len(scored)
	countTerm := float64(found)
	if countTerm > 5 {
		countTerm = 5
	}
	confidence := 0.7 + countTerm*0.03 + analysis.Confidence*0.15
	return &types.RetrievalResult{
		Documents:  scored,
		Method:     types.MethodEnhancedText,
		Confidence: math.Min(maxConfidence, confidence),
	}
}

// searchBasic matches the whole raw query string against title, summary
// and content. Last resort before giving up.
func (s *RetrievalService) searchBasic(ctx context.Context, ownerID, query string) *types.RetrievalResult {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	docs, err := s.docs.SearchSubstring(callCtx, ownerID, trimmed, int64(s.cfg.BasicLimit))
	if err != nil {
		s.logger.Warn().Err(err).Msg("basic text search failed")
		return nil
	}
	if len(docs) == 0 {
		return nil
	}

	scored := make([]types.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		scored = append(scored, types.ScoredDocument{Document: doc, Score: 0.5})
	}

	return &types.RetrievalResult{
		Documents:  scored,
		Method:     types.MethodBasicText,
		Confidence: 0.5 + float64(len(scored))*0.05,
	}
}

// collectSearchTerms takes the top 3 keywords and top 2 entities, dropping
// terms shorter than 3 characters.
func collectSearchTerms(analysis *types.QueryAnalysis) []string {
	var terms []string
	taken := 0
	for _, keyword := range analysis.Keywords {
		if taken == maxEnhancedKeywords {
			break
		}
		if len(keyword) < minTermLength {
			continue
		}
		terms = append(terms, keyword)
		taken++
	}
	taken = 0
	for _, entity := range analysis.Entities {
		if taken == maxEnhancedEntities {
			break
		}
		if len(entity) < minTermLength {
			continue
		}
		terms = append(terms, entity)
		taken++
	}
	return terms
}

// termMatchRatio scores a document by the fraction of search terms found
// in its text or metadata.
func termMatchRatio(doc *types.Document, terms []string) float64 {
	haystack := strings.ToLower(strings.Join([]string{
		doc.Title, doc.Summary, doc.Content, strings.Join(doc.Tags, " "),
	}, " "))

	matched := 0
	for _, term := range terms {
		if strings.Contains(haystack, strings.ToLower(term)) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}
