package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/proposalops/docchat-be/types"
)

// DocumentRepo is the system of record for documents. Every query is
// scoped to an owner; callers cannot reach another user's rows.
type DocumentRepo interface {
	Create(ctx context.Context, doc *types.Document) error
	GetByID(ctx context.Context, ownerID, id string) (*types.Document, error)
	GetByIDs(ctx context.Context, ownerID string, ids []string) ([]types.Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit int64) ([]types.Document, error)

	// SearchTerms matches any of the terms as a case-insensitive substring
	// of title, summary, content or tags, optionally restricted to the
	// given industries and document types.
	SearchTerms(ctx context.Context, ownerID string, terms, industries, docTypes []string, limit int64) ([]types.Document, error)

	// SearchSubstring matches the whole query string against title,
	// summary and content.
	SearchSubstring(ctx context.Context, ownerID, query string, limit int64) ([]types.Document, error)

	ListMissingEmbeddings(ctx context.Context, ownerID string, limit int64) ([]types.Document, error)
	SetEmbeddingStored(ctx context.Context, id string, stored bool) error
}

type documentRepo struct {
	collection *mongo.Collection
}

func NewDocumentRepo(collection *mongo.Collection) DocumentRepo {
	return &documentRepo{collection: collection}
}

func (r *documentRepo) Create(ctx context.Context, doc *types.Document) error {
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, ownerID, id string) (*types.Document, error) {
	var doc types.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) GetByIDs(ctx context.Context, ownerID string, ids []string) ([]types.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{
		"_id":      bson.M{"$in": ids},
		"owner_id": ownerID,
	})
	if err != nil {
		return nil, err
	}
	return decodeDocuments(ctx, cursor)
}

func (r *documentRepo) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]types.Document, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	return decodeDocuments(ctx, cursor)
}

func (r *documentRepo) SearchTerms(ctx context.Context, ownerID string, terms, industries, docTypes []string, limit int64) ([]types.Document, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	var or []bson.M
	for _, term := range terms {
		pattern := regexp.QuoteMeta(term)
		for _, field := range []string{"title", "summary", "content", "tags"} {
			or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
	}

	filter := bson.M{
		"owner_id": ownerID,
		"$or":      or,
	}
	if industries != nil {
		filter["industry"] = bson.M{"$in": industries}
	}
	if docTypes != nil {
		filter["doc_type"] = bson.M{"$in": docTypes}
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return decodeDocuments(ctx, cursor)
}

func (r *documentRepo) SearchSubstring(ctx context.Context, ownerID, query string, limit int64) ([]types.Document, error) {
	pattern := regexp.QuoteMeta(query)
	filter := bson.M{
		"owner_id": ownerID,
		"$or": []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"summary": bson.M{"$regex": pattern, "$options": "i"}},
			{"content": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return decodeDocuments(ctx, cursor)
}

func (r *documentRepo) ListMissingEmbeddings(ctx context.Context, ownerID string, limit int64) ([]types.Document, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"owner_id":      ownerID,
		"has_embedding": false,
	}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return decodeDocuments(ctx, cursor)
}

func (r *documentRepo) SetEmbeddingStored(ctx context.Context, id string, stored bool) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"has_embedding": stored}})
	return err
}

func decodeDocuments(ctx context.Context, cursor *mongo.Cursor) ([]types.Document, error) {
	defer cursor.Close(ctx)
	var docs []types.Document
	for cursor.Next(ctx) {
		var doc types.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}
