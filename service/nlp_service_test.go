package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalops/docchat-be/types"
)

func TestExtractKeywords(t *testing.T) {
	nlp := NewNLPService()

	t.Run("drops stop words and short tokens", func(t *testing.T) {
		keywords := nlp.ExtractKeywords("What do we know about the healthcare RFP?")
		assert.Equal(t, []string{"know", "healthcare", "rfp"}, keywords)
	})

	t.Run("preserves order and duplicates", func(t *testing.T) {
		keywords := nlp.ExtractKeywords("cloud migration cloud strategy")
		assert.Equal(t, []string{"cloud", "migration", "cloud", "strategy"}, keywords)
	})

	t.Run("strips punctuation", func(t *testing.T) {
		keywords := nlp.ExtractKeywords("win/loss analysis, 100% complete!")
		assert.Equal(t, []string{"win", "loss", "analysis", "100", "complete"}, keywords)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, nlp.ExtractKeywords(""))
		assert.Empty(t, nlp.ExtractKeywords("the and for"))
	})

	t.Run("idempotent", func(t *testing.T) {
		first := nlp.ExtractKeywords("Compare Azure and AWS proposals")
		second := nlp.ExtractKeywords("compare azure and aws proposals")
		assert.Equal(t, first, second)
	})
}

func TestExtractEntities(t *testing.T) {
	nlp := NewNLPService()

	t.Run("matches domain vocabularies case-insensitively", func(t *testing.T) {
		entities := nlp.ExtractEntities("any healthcare cloud migration work?")
		assert.Contains(t, entities, "Healthcare")
		assert.Contains(t, entities, "Cloud Migration")
		assert.Contains(t, entities, "Cloud")
	})

	t.Run("picks up capitalized runs", func(t *testing.T) {
		entities := nlp.ExtractEntities("what did we deliver for Acme Corp last year")
		assert.Contains(t, entities, "Acme Corp")
	})

	t.Run("skips capitalized sentence starters", func(t *testing.T) {
		entities := nlp.ExtractEntities("The results were strong")
		assert.NotContains(t, entities, "The")
	})

	t.Run("deduplicates in insertion order", func(t *testing.T) {
		entities := nlp.ExtractEntities("healthcare and more healthcare")
		count := 0
		for _, e := range entities {
			if e == "Healthcare" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestClassifyIntent(t *testing.T) {
	nlp := NewNLPService()

	tests := []struct {
		name   string
		query  string
		intent string
	}{
		{"information retrieval", "tell me about our healthcare work", types.IntentInformationRetrieval},
		{"comparison", "compare our Azure and AWS proposals", types.IntentComparison},
		{"summarization", "summarize the Acme engagement", types.IntentSummarization},
		{"specific search", "find the case study on cloud migration", types.IntentSpecificSearch},
		{"no trigger falls back", "pricing details for enterprise deals", types.IntentGeneralQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, confidence := nlp.ClassifyIntent(tt.query)
			assert.Equal(t, tt.intent, intent)
			assert.GreaterOrEqual(t, confidence, 0.3)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}

	t.Run("floor confidence when nothing matches", func(t *testing.T) {
		intent, confidence := nlp.ClassifyIntent("pricing details")
		assert.Equal(t, types.IntentGeneralQuestion, intent)
		assert.InDelta(t, 0.3, confidence, 1e-9)
	})

	t.Run("single phrase match beats the floor", func(t *testing.T) {
		_, confidence := nlp.ClassifyIntent("compare these two")
		assert.Greater(t, confidence, 0.3)
	})
}

func TestDeriveFilters(t *testing.T) {
	nlp := NewNLPService()

	t.Run("projects entities onto vocabularies", func(t *testing.T) {
		entities := nlp.ExtractEntities("healthcare case study on kubernetes")
		filters := nlp.DeriveFilters(entities, "healthcare case study on kubernetes")
		assert.Equal(t, []string{"Healthcare"}, filters.Industries)
		assert.Equal(t, []string{"Kubernetes"}, filters.Technologies)
		assert.Equal(t, []string{types.DocTypeCaseStudy}, filters.DocumentTypes)
	})

	t.Run("absent filters stay nil", func(t *testing.T) {
		filters := nlp.DeriveFilters(nil, "anything relevant")
		assert.Nil(t, filters.Industries)
		assert.Nil(t, filters.Technologies)
		assert.Nil(t, filters.DocumentTypes)
		assert.Empty(t, filters.Timeframe)
		assert.True(t, filters.Empty())
	})

	t.Run("explicit year wins over phrases", func(t *testing.T) {
		filters := nlp.DeriveFilters(nil, "recent wins from 2023")
		assert.Equal(t, "2023", filters.Timeframe)
	})

	t.Run("timeframe phrases", func(t *testing.T) {
		filters := nlp.DeriveFilters(nil, "our most recent proposals")
		assert.Equal(t, "recent", filters.Timeframe)
	})
}

func TestNLPAnalyze(t *testing.T) {
	nlp := NewNLPService()

	analysis := nlp.Analyze("tell me about healthcare cloud migration case studies from 2023")
	require.NotNil(t, analysis)
	assert.Equal(t, types.IntentInformationRetrieval, analysis.Intent)
	assert.Contains(t, analysis.Keywords, "healthcare")
	assert.Contains(t, analysis.Entities, "Healthcare")
	assert.Equal(t, []string{"Healthcare"}, analysis.Filters.Industries)
	assert.Equal(t, "2023", analysis.Filters.Timeframe)
	assert.True(t, analysis.HasSearchTerms())
}

func TestMapDocumentTypes(t *testing.T) {
	t.Run("maps synonyms to stored values", func(t *testing.T) {
		mapped := MapDocumentTypes([]string{"rfp", "Case Study", "win/loss"})
		assert.Equal(t, []string{types.DocTypeRFP, types.DocTypeCaseStudy, types.DocTypeWinLoss}, mapped)
	})

	t.Run("drops unknown mentions and duplicates", func(t *testing.T) {
		mapped := MapDocumentTypes([]string{"contract", "rfp", "RFP"})
		assert.Equal(t, []string{types.DocTypeRFP}, mapped)
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, MapDocumentTypes(nil))
	})
}
