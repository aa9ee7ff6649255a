package service

import (
	"regexp"
	"strings"

	"github.com/proposalops/docchat-be/types"
)

// NLPService is the heuristic query-analysis pipeline: keyword filtering,
// vocabulary and proper-noun entity extraction, pattern-based intent
// classification and search-filter derivation. Pure and deterministic; it
// never fails and serves as the fallback when the LLM classifier is
// unavailable.
type NLPService struct{}

func NewNLPService() *NLPService {
	return &NLPService{}
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "they": {}, "will": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "their": {}, "would": {},
	"there": {}, "about": {}, "into": {}, "than": {}, "them": {},
	"these": {}, "some": {}, "were": {}, "been": {}, "more": {},
	"your": {}, "how": {}, "who": {}, "did": {}, "does": {}, "any": {},
}

// Closed domain vocabularies. Terms are canonical display forms; matching
// is case-insensitive substring.
var (
	industryVocabulary = []string{
		"Healthcare", "Finance", "Banking", "Insurance", "Retail",
		"Manufacturing", "Education", "Government", "Technology",
		"Telecommunications", "Energy", "Logistics",
	}
	technologyVocabulary = []string{
		"Cloud Migration", "Cloud", "AWS", "Azure", "GCP", "Kubernetes",
		"DevOps", "Machine Learning", "Data Analytics", "Cybersecurity",
		"Salesforce", "SAP", "ERP",
	}
	documentTypeVocabulary = []string{
		types.DocTypeRFP, types.DocTypeProposal, types.DocTypeCaseStudy,
		types.DocTypeWinLoss,
	}
)

// docTypeSynonyms maps loose document-type mentions to the stored enum.
var docTypeSynonyms = map[string]string{
	"rfp":               types.DocTypeRFP,
	"proposal":          types.DocTypeProposal,
	"case study":        types.DocTypeCaseStudy,
	"win loss":          types.DocTypeWinLoss,
	"win/loss":          types.DocTypeWinLoss,
	"win/loss analysis": types.DocTypeWinLoss,
}

// Capitalized sentence-starters the proper-noun heuristic must not treat
// as entities.
var capitalizedCommonWords = map[string]struct{}{
	"The": {}, "And": {}, "But": {}, "For": {}, "With": {},
}

var (
	punctuationPattern = regexp.MustCompile(`[^a-z0-9\s]+`)
	properNounPattern  = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z][a-z]+)*`)
	yearPattern        = regexp.MustCompile(`\b(201\d|202\d)\b`)
)

// ExtractKeywords lower-cases, strips punctuation, tokenizes and drops
// short tokens and stop words. Order is preserved and duplicates are kept.
func (s *NLPService) ExtractKeywords(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := punctuationPattern.ReplaceAllString(lowered, " ")

	keywords := []string{}
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// ExtractEntities unions two passes: case-insensitive substring matches
// against the domain vocabularies, and runs of capitalized words. The
// result is deduplicated, insertion-ordered.
func (s *NLPService) ExtractEntities(text string) []string {
	lowered := strings.ToLower(text)

	entities := []string{}
	seen := map[string]struct{}{}
	add := func(entity string) {
		if _, dup := seen[entity]; dup {
			return
		}
		seen[entity] = struct{}{}
		entities = append(entities, entity)
	}

	for _, vocabulary := range [][]string{industryVocabulary, technologyVocabulary, documentTypeVocabulary} {
		for _, term := range vocabulary {
			if strings.Contains(lowered, strings.ToLower(term)) {
				add(term)
			}
		}
	}

	for _, candidate := range properNounPattern.FindAllString(text, -1) {
		if len(candidate) <= 2 {
			continue
		}
		if _, common := capitalizedCommonWords[candidate]; common {
			continue
		}
		add(candidate)
	}

	return entities
}

// intentTriggers is evaluated in declaration order; on an exact confidence
// tie the earlier intent wins.
var intentTriggers = []struct {
	Intent  string
	Phrases []string
}{
	{types.IntentInformationRetrieval, []string{"tell me about", "what do we know", "show me"}},
	{types.IntentComparison, []string{"compare", "versus", "difference between"}},
	{types.IntentSummarization, []string{"summarize", "summary", "overview"}},
	{types.IntentSpecificSearch, []string{"case study", "rfp", "proposal"}},
	{types.IntentGeneralQuestion, []string{"how do", "why do", "can you"}},
}

const intentConfidenceFloor = 0.3

// ClassifyIntent scores each intent by the fraction of its trigger
// phrases present in the query. Anything at or below the floor resolves
// to general_question at the floor confidence.
func (s *NLPService) ClassifyIntent(text string) (string, float64) {
	lowered := strings.ToLower(text)

	best := types.IntentGeneralQuestion
	bestConfidence := 0.0
	for _, entry := range intentTriggers {
		matched := 0
		for _, phrase := range entry.Phrases {
			if strings.Contains(lowered, phrase) {
				matched++
			}
		}
		confidence := float64(matched) / float64(len(entry.Phrases))
		if confidence > bestConfidence {
			best = entry.Intent
			bestConfidence = confidence
		}
	}

	if bestConfidence <= intentConfidenceFloor {
		return types.IntentGeneralQuestion, intentConfidenceFloor
	}
	return best, bestConfidence
}

// DeriveFilters projects the entity set onto the domain vocabularies and
// scans the raw text for a timeframe. Fields stay nil/empty when nothing
// matched; absence means "no constraint".
func (s *NLPService) DeriveFilters(entities []string, text string) types.SearchFilters {
	var filters types.SearchFilters

	for _, entity := range entities {
		switch {
		case containsFold(industryVocabulary, entity):
			filters.Industries = append(filters.Industries, canonicalTerm(industryVocabulary, entity))
		case containsFold(technologyVocabulary, entity):
			filters.Technologies = append(filters.Technologies, canonicalTerm(technologyVocabulary, entity))
		case containsFold(documentTypeVocabulary, entity):
			filters.DocumentTypes = append(filters.DocumentTypes, canonicalTerm(documentTypeVocabulary, entity))
		}
	}

	if year := yearPattern.FindString(text); year != "" {
		filters.Timeframe = year
	} else {
		lowered := strings.ToLower(text)
		for _, phrase := range []string{"last year", "recent", "latest"} {
			if strings.Contains(lowered, phrase) {
				filters.Timeframe = phrase
				break
			}
		}
	}

	return filters
}

// Analyze runs the full heuristic pipeline and assembles a QueryAnalysis.
func (s *NLPService) Analyze(text string) *types.QueryAnalysis {
	keywords := s.ExtractKeywords(text)
	entities := s.ExtractEntities(text)
	intent, confidence := s.ClassifyIntent(text)

	return &types.QueryAnalysis{
		Intent:     intent,
		Confidence: confidence,
		Keywords:   keywords,
		Entities:   entities,
		Filters:    s.DeriveFilters(entities, text),
	}
}

// MapDocumentTypes resolves loose document-type mentions to the stored
// enum values. Unrecognized mentions are dropped.
func MapDocumentTypes(mentions []string) []string {
	var mapped []string
	seen := map[string]struct{}{}
	for _, mention := range mentions {
		canonical, ok := docTypeSynonyms[strings.ToLower(strings.TrimSpace(mention))]
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		mapped = append(mapped, canonical)
	}
	return mapped
}

func containsFold(vocabulary []string, term string) bool {
	for _, v := range vocabulary {
		if strings.EqualFold(v, term) {
			return true
		}
	}
	return false
}

func canonicalTerm(vocabulary []string, term string) string {
	for _, v := range vocabulary {
		if strings.EqualFold(v, term) {
			return v
		}
	}
	return term
}
