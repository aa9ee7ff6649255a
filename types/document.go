package types

import "strings"

// Document types stored in the knowledge base.
const (
	DocTypeRFP       = "RFP"
	DocTypeCaseStudy = "Case Study"
	DocTypeProposal  = "Proposal"
	DocTypeWinLoss   = "Win/Loss Analysis"
)

// Document represents a knowledge base document owned by a single user.
// Content is the extracted full text; it may be empty when extraction
// failed, in which case search falls back to the metadata text.
type Document struct {
	ID           string   `bson:"_id" json:"id"`
	OwnerID      string   `bson:"owner_id" json:"owner_id"`
	Title        string   `bson:"title" json:"title"`
	DocType      string   `bson:"doc_type" json:"doc_type"`
	ClientName   string   `bson:"client_name" json:"client_name"`
	Industry     string   `bson:"industry" json:"industry"`
	Geography    string   `bson:"geography" json:"geography"`
	Year         int      `bson:"year" json:"year"`
	Summary      string   `bson:"summary" json:"summary"`
	Content      string   `bson:"content" json:"content"`
	Tags         []string `bson:"tags" json:"tags"`
	HasEmbedding bool     `bson:"has_embedding" json:"has_embedding"`
	CreatedAt    int64    `bson:"created_at" json:"created_at"`
}

// SearchableText returns the text used for embedding and grounding. A
// document without extracted content falls back to its metadata.
func (d *Document) SearchableText() string {
	if strings.TrimSpace(d.Content) != "" {
		return d.Content
	}
	parts := []string{d.Title, d.DocType, d.ClientName, d.Industry, d.Geography, d.Summary}
	parts = append(parts, d.Tags...)
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p)
	}
	return b.String()
}
