package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/proposalops/docchat-be/config"
	"github.com/proposalops/docchat-be/types"
)

const DocumentClass = "Document"

var documentClassObject = &models.Class{
	Class: DocumentClass,
	Properties: []*models.Property{
		{Name: "ownerId", DataType: []string{"text"}},
		{Name: "title", DataType: []string{"text"}},
		{Name: "docType", DataType: []string{"text"}},
		{Name: "industry", DataType: []string{"text"}},
		{Name: "tags", DataType: []string{"text[]"}},
		{Name: "createdAt", DataType: []string{"int"}},
	},
	// Vectors are computed by the embedding service, not server-side.
	Vectorizer:      "none",
	VectorIndexType: "hnsw",
}

// WeaviateIndex implements VectorIndex on a Weaviate instance. Object IDs
// mirror the Mongo document IDs, so a hit hydrates straight from the
// document repository.
type WeaviateIndex struct {
	client *weaviate.Client
}

func NewWeaviateIndex(cfg config.WeaviateConfig) (*WeaviateIndex, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}

	hasDocumentClass := false
	for _, class := range schema.Classes {
		if class.Class == DocumentClass {
			hasDocumentClass = true
			break
		}
	}
	if !hasDocumentClass {
		err = client.Schema().ClassCreator().WithClass(documentClassObject).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create Document class: %w", err)
		}
	}
	return &WeaviateIndex{client: client}, nil
}

// ReInit drops and recreates the Document class. Used by the seeding CLI.
func (s *WeaviateIndex) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(DocumentClass).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete Document class: %w", err)
	}
	err = s.client.Schema().ClassCreator().WithClass(documentClassObject).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create Document class: %w", err)
	}
	return nil
}

func (s *WeaviateIndex) UpsertEmbedding(ctx context.Context, doc *types.Document, vector []float32) error {
	properties := map[string]interface{}{
		"ownerId":   doc.OwnerID,
		"title":     doc.Title,
		"docType":   doc.DocType,
		"industry":  doc.Industry,
		"tags":      doc.Tags,
		"createdAt": doc.CreatedAt,
	}

	_, err := s.client.Data().Creator().
		WithClassName(DocumentClass).
		WithID(doc.ID).
		WithProperties(properties).
		WithVector(vector).
		Do(ctx)
	return err
}

func (s *WeaviateIndex) DeleteEmbedding(ctx context.Context, documentID string) error {
	return s.client.Data().Deleter().
		WithClassName(DocumentClass).
		WithID(documentID).
		Do(ctx)
}

func (s *WeaviateIndex) SearchNearest(ctx context.Context, ownerID string, vector []float32, threshold float64, limit int) ([]VectorHit, error) {
	fields := []graphql.Field{
		{Name: "title"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector).
		WithDistance(float32(1 - threshold))

	// Ownership restriction is part of the query, not post-filtering.
	where := filters.Where().
		WithPath([]string{"ownerId"}).
		WithOperator(filters.Equal).
		WithValueString(ownerID)

	result, err := s.client.GraphQL().Get().
		WithClassName(DocumentClass).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithWhere(where).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("vector search failed: %v", result.Errors[0].Message)
	}

	var hits []VectorHit
	if data, ok := result.Data["Get"].(map[string]interface{})[DocumentClass].([]interface{}); ok {
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			additional, ok := obj["_additional"].(map[string]interface{})
			if !ok {
				continue
			}
			id, _ := additional["id"].(string)
			distance, _ := additional["distance"].(float64)
			similarity := 1 - distance
			if id == "" || similarity <= threshold {
				continue
			}
			hits = append(hits, VectorHit{
				DocumentID: id,
				Similarity: similarity,
			})
		}
	}
	return hits, nil
}
