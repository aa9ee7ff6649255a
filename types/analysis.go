package types

// Query intents recognized by the classifier.
const (
	IntentInformationRetrieval = "information_retrieval"
	IntentComparison           = "comparison"
	IntentSummarization        = "summarization"
	IntentSpecificSearch       = "specific_search"
	IntentGeneralQuestion      = "general_question"
)

// Search methods a retrieval pass can settle on.
const (
	MethodVector       = "vector"
	MethodEnhancedText = "enhanced_text"
	MethodBasicText    = "basic_text"
	MethodNone         = "none"
)

// SearchFilters are constraints derived from a query. A nil slice or empty
// timeframe means "no constraint", which is distinct from an empty list.
type SearchFilters struct {
	Industries    []string `json:"industries,omitempty"`
	Technologies  []string `json:"technologies,omitempty"`
	DocumentTypes []string `json:"documentTypes,omitempty"`
	Timeframe     string   `json:"timeframe,omitempty"`
}

// Empty reports whether no filter is set at all.
func (f SearchFilters) Empty() bool {
	return f.Industries == nil && f.Technologies == nil && f.DocumentTypes == nil && f.Timeframe == ""
}

// QueryAnalysis is the per-query NLP result. Keywords keep their original
// order and may repeat; Entities are deduplicated.
type QueryAnalysis struct {
	Intent     string        `json:"intent"`
	Confidence float64       `json:"confidence"`
	Keywords   []string      `json:"keywords"`
	Entities   []string      `json:"entities"`
	Filters    SearchFilters `json:"filters"`
}

// HasSearchTerms reports whether the analysis carries anything the
// enhanced text strategy could search with.
func (a *QueryAnalysis) HasSearchTerms() bool {
	return a != nil && (len(a.Keywords) > 0 || len(a.Entities) > 0)
}

// ScoredDocument pairs a document with its relevance score.
type ScoredDocument struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// RetrievalResult is the outcome of one cascading retrieval pass.
type RetrievalResult struct {
	Documents  []ScoredDocument `json:"documents"`
	Method     string           `json:"method"`
	Confidence float64          `json:"confidence"`
}

// SourceTitles lists the titles of the retrieved documents in rank order.
func (r *RetrievalResult) SourceTitles() []string {
	titles := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		titles = append(titles, d.Document.Title)
	}
	return titles
}
