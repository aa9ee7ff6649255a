package service

import (
	"context"
	"errors"

	"github.com/proposalops/docchat-be/database"
	"github.com/proposalops/docchat-be/types"
)

// Function-field mocks. A nil field means the call is unexpected and
// returns an error, so tests only wire what they use.

type mockEmbedder struct {
	embedFunc  func(ctx context.Context, text string) ([]float32, error)
	embedCalls int
}

func (m *mockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedFunc == nil {
		return nil, errors.New("unexpected EmbedText call")
	}
	return m.embedFunc(ctx, text)
}

type mockCompletion struct {
	completeFunc  func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	completeCalls int
	lastSystem    string
	lastUser      string
}

func (m *mockCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.completeCalls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.completeFunc == nil {
		return "", errors.New("unexpected Complete call")
	}
	return m.completeFunc(ctx, systemPrompt, userPrompt)
}

type mockVectorIndex struct {
	searchFunc  func(ctx context.Context, ownerID string, vector []float32, threshold float64, limit int) ([]database.VectorHit, error)
	searchCalls int
}

func (m *mockVectorIndex) UpsertEmbedding(ctx context.Context, doc *types.Document, vector []float32) error {
	return nil
}

func (m *mockVectorIndex) DeleteEmbedding(ctx context.Context, documentID string) error {
	return nil
}

func (m *mockVectorIndex) SearchNearest(ctx context.Context, ownerID string, vector []float32, threshold float64, limit int) ([]database.VectorHit, error) {
	m.searchCalls++
	if m.searchFunc == nil {
		return nil, errors.New("unexpected SearchNearest call")
	}
	return m.searchFunc(ctx, ownerID, vector, threshold, limit)
}

type mockDocumentRepo struct {
	getByIDsFunc        func(ctx context.Context, ownerID string, ids []string) ([]types.Document, error)
	searchTermsFunc     func(ctx context.Context, ownerID string, terms, industries, docTypes []string, limit int64) ([]types.Document, error)
	searchSubstringFunc func(ctx context.Context, ownerID, query string, limit int64) ([]types.Document, error)

	searchTermsCalls     int
	searchSubstringCalls int
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *types.Document) error {
	return errors.New("unexpected Create call")
}

func (m *mockDocumentRepo) GetByID(ctx context.Context, ownerID, id string) (*types.Document, error) {
	return nil, errors.New("unexpected GetByID call")
}

func (m *mockDocumentRepo) GetByIDs(ctx context.Context, ownerID string, ids []string) ([]types.Document, error) {
	if m.getByIDsFunc == nil {
		return nil, errors.New("unexpected GetByIDs call")
	}
	return m.getByIDsFunc(ctx, ownerID, ids)
}

func (m *mockDocumentRepo) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]types.Document, error) {
	return nil, errors.New("unexpected ListByOwner call")
}

func (m *mockDocumentRepo) SearchTerms(ctx context.Context, ownerID string, terms, industries, docTypes []string, limit int64) ([]types.Document, error) {
	m.searchTermsCalls++
	if m.searchTermsFunc == nil {
		return nil, errors.New("unexpected SearchTerms call")
	}
	return m.searchTermsFunc(ctx, ownerID, terms, industries, docTypes, limit)
}

func (m *mockDocumentRepo) SearchSubstring(ctx context.Context, ownerID, query string, limit int64) ([]types.Document, error) {
	m.searchSubstringCalls++
	if m.searchSubstringFunc == nil {
		return nil, errors.New("unexpected SearchSubstring call")
	}
	return m.searchSubstringFunc(ctx, ownerID, query, limit)
}

func (m *mockDocumentRepo) ListMissingEmbeddings(ctx context.Context, ownerID string, limit int64) ([]types.Document, error) {
	return nil, errors.New("unexpected ListMissingEmbeddings call")
}

func (m *mockDocumentRepo) SetEmbeddingStored(ctx context.Context, id string, stored bool) error {
	return errors.New("unexpected SetEmbeddingStored call")
}

type mockConversationRepo struct {
	getFunc    func(ctx context.Context, userID, id string) (*types.Conversation, error)
	createFunc func(ctx context.Context, conv *types.Conversation) error
	appendFunc func(ctx context.Context, messages ...*types.Message) error

	created  []*types.Conversation
	appended []*types.Message
	touched  []string
}

func (m *mockConversationRepo) CreateConversation(ctx context.Context, conv *types.Conversation) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, conv); err != nil {
			return err
		}
	}
	m.created = append(m.created, conv)
	return nil
}

func (m *mockConversationRepo) GetConversation(ctx context.Context, userID, id string) (*types.Conversation, error) {
	if m.getFunc == nil {
		return nil, errors.New("unexpected GetConversation call")
	}
	return m.getFunc(ctx, userID, id)
}

func (m *mockConversationRepo) ListConversations(ctx context.Context, userID string) ([]types.Conversation, error) {
	return nil, errors.New("unexpected ListConversations call")
}

func (m *mockConversationRepo) TouchConversation(ctx context.Context, id string, updatedAt int64) error {
	m.touched = append(m.touched, id)
	return nil
}

func (m *mockConversationRepo) AppendMessages(ctx context.Context, messages ...*types.Message) error {
	if m.appendFunc != nil {
		if err := m.appendFunc(ctx, messages...); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, messages...)
	return nil
}

func (m *mockConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]types.Message, error) {
	return nil, errors.New("unexpected ListMessages call")
}
