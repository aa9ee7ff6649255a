package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/proposalops/docchat-be/types"
)

// ConversationRepo persists conversations and their messages.
type ConversationRepo interface {
	CreateConversation(ctx context.Context, conv *types.Conversation) error
	GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]types.Conversation, error)
	TouchConversation(ctx context.Context, id string, updatedAt int64) error

	AppendMessages(ctx context.Context, messages ...*types.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]types.Message, error)
}

type conversationRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewConversationRepo(conversations, messages *mongo.Collection) ConversationRepo {
	return &conversationRepo{
		conversations: conversations,
		messages:      messages,
	}
}

func (r *conversationRepo) CreateConversation(ctx context.Context, conv *types.Conversation) error {
	_, err := r.conversations.InsertOne(ctx, conv)
	return err
}

func (r *conversationRepo) GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error) {
	var conv types.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&conv)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) ListConversations(ctx context.Context, userID string) ([]types.Conversation, error) {
	cursor, err := r.conversations.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"updated_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []types.Conversation
	for cursor.Next(ctx) {
		var conv types.Conversation
		if err := cursor.Decode(&conv); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, cursor.Err()
}

func (r *conversationRepo) TouchConversation(ctx context.Context, id string, updatedAt int64) error {
	_, err := r.conversations.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"updated_at": updatedAt}})
	return err
}

func (r *conversationRepo) AppendMessages(ctx context.Context, messages ...*types.Message) error {
	if len(messages) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		docs = append(docs, m)
	}
	_, err := r.messages.InsertMany(ctx, docs)
	return err
}

func (r *conversationRepo) ListMessages(ctx context.Context, conversationID string) ([]types.Message, error) {
	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": conversationID},
		options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []types.Message
	for cursor.Next(ctx) {
		var msg types.Message
		if err := cursor.Decode(&msg); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, cursor.Err()
}
