package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalops/docchat-be/database"
	"github.com/proposalops/docchat-be/types"
)

// chatFixture wires a full pipeline over mocks: heuristic analysis,
// mocked retrieval collaborators and a scripted completion model.
type chatFixture struct {
	docs       *mockDocumentRepo
	index      *mockVectorIndex
	embedder   *mockEmbedder
	completion *mockCompletion
	convs      *mockConversationRepo
	service    *ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		docs:       &mockDocumentRepo{},
		index:      &mockVectorIndex{},
		embedder:   &mockEmbedder{},
		completion: &mockCompletion{},
		convs:      &mockConversationRepo{},
	}
	analyzer := NewQueryAnalyzer(nil, NewNLPService(), time.Second, zerolog.Nop())
	retrieval := NewRetrievalService(f.docs, f.index, f.embedder, retrievalConfig(), zerolog.Nop())
	answers := NewAnswerService(f.completion, 15000, time.Second)
	f.service = NewChatService(analyzer, retrieval, answers, f.convs, zerolog.Nop())
	return f
}

func (f *chatFixture) stubVectorHit(doc types.Document, similarity float64) {
	f.embedder.embedFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1}, nil
	}
	f.index.searchFunc = func(ctx context.Context, ownerID string, vector []float32, threshold float64, limit int) ([]database.VectorHit, error) {
		return []database.VectorHit{{DocumentID: doc.ID, Similarity: similarity}}, nil
	}
	f.docs.getByIDsFunc = func(ctx context.Context, ownerID string, ids []string) ([]types.Document, error) {
		return []types.Document{doc}, nil
	}
}

func (f *chatFixture) stubAnswer(answer string) {
	f.completion.completeFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return answer, nil
	}
}

func TestAnswerQueryVectorPath(t *testing.T) {
	f := newChatFixture()
	f.stubVectorHit(types.Document{ID: "doc-1", Title: "Acme Healthcare Case Study"}, 0.8)
	f.stubAnswer("We migrated Acme's claims platform.")

	answer, err := f.service.AnswerQuery(context.Background(), "user-1", "tell me about the Acme healthcare work", "")
	require.NoError(t, err)

	assert.Equal(t, "We migrated Acme's claims platform.", answer.Response)
	assert.Equal(t, types.MethodVector, answer.SearchMethod)
	assert.Equal(t, []string{"Acme Healthcare Case Study"}, answer.Sources)
	assert.NotEmpty(t, answer.ConversationID)
	require.NotNil(t, answer.Analysis)
	assert.Equal(t, types.IntentInformationRetrieval, answer.Analysis.Intent)

	// A conversation was created and both turns persisted.
	require.Len(t, f.convs.created, 1)
	require.Len(t, f.convs.appended, 2)
	assert.Equal(t, types.RoleUser, f.convs.appended[0].Role)
	assert.Equal(t, types.RoleBot, f.convs.appended[1].Role)
	assert.Equal(t, []string{"Acme Healthcare Case Study"}, f.convs.appended[1].Sources)
	assert.InDelta(t, answer.Confidence, f.convs.appended[1].Confidence, 1e-9)
}

func TestAnswerQueryNoDocumentsStillAnswers(t *testing.T) {
	f := newChatFixture()
	f.embedder.embedFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1}, nil
	}
	f.index.searchFunc = func(ctx context.Context, ownerID string, vector []float32, threshold float64, limit int) ([]database.VectorHit, error) {
		return nil, nil
	}
	f.docs.searchTermsFunc = func(ctx context.Context, ownerID string, terms, industries, docTypes []string, limit int64) ([]types.Document, error) {
		return nil, nil
	}
	f.docs.searchSubstringFunc = func(ctx context.Context, ownerID, query string, limit int64) ([]types.Document, error) {
		return nil, nil
	}
	f.completion.completeFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		assert.Contains(t, userPrompt, "No matching documents were found")
		return "Nothing matched, but generally speaking...", nil
	}

	answer, err := f.service.AnswerQuery(context.Background(), "user-1", "tell me about quantum computing deals", "")
	require.NoError(t, err)

	assert.Equal(t, types.MethodNone, answer.SearchMethod)
	assert.Empty(t, answer.Sources)
	assert.InDelta(t, 0.3, answer.Confidence, 1e-9)
}

func TestAnswerQueryEmptyQuery(t *testing.T) {
	f := newChatFixture()

	_, err := f.service.AnswerQuery(context.Background(), "user-1", "   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Empty(t, f.convs.created)
	assert.Empty(t, f.convs.appended)
}

func TestAnswerQueryConversationOwnership(t *testing.T) {
	f := newChatFixture()
	f.convs.getFunc = func(ctx context.Context, userID, id string) (*types.Conversation, error) {
		return nil, errors.New("not found")
	}

	_, err := f.service.AnswerQuery(context.Background(), "user-1", "follow-up question", "conv-owned-by-someone-else")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	// Ownership is checked before any model call.
	assert.Zero(t, f.embedder.embedCalls)
	assert.Zero(t, f.completion.completeCalls)
}

func TestAnswerQueryContinuesConversation(t *testing.T) {
	f := newChatFixture()
	f.convs.getFunc = func(ctx context.Context, userID, id string) (*types.Conversation, error) {
		return &types.Conversation{ID: id, UserID: userID}, nil
	}
	f.stubVectorHit(types.Document{ID: "doc-1", Title: "Acme RFP"}, 0.7)
	f.stubAnswer("More detail on the RFP.")

	answer, err := f.service.AnswerQuery(context.Background(), "user-1", "what about the timeline?", "conv-1")
	require.NoError(t, err)

	assert.Equal(t, "conv-1", answer.ConversationID)
	assert.Empty(t, f.convs.created)
	require.Len(t, f.convs.appended, 2)
	assert.Equal(t, "conv-1", f.convs.appended[0].ConversationID)
	assert.Contains(t, f.convs.touched, "conv-1")
}

func TestAnswerQuerySynthesisFailureAbortsPersistence(t *testing.T) {
	f := newChatFixture()
	f.stubVectorHit(types.Document{ID: "doc-1", Title: "Doc"}, 0.7)
	f.completion.completeFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return "", errors.New("model overloaded")
	}

	_, err := f.service.AnswerQuery(context.Background(), "user-1", "a valid question", "")
	require.Error(t, err)
	// Nothing was written.
	assert.Empty(t, f.convs.created)
	assert.Empty(t, f.convs.appended)
}

func TestAnswerQueryPersistenceFailureIsFatal(t *testing.T) {
	f := newChatFixture()
	f.stubVectorHit(types.Document{ID: "doc-1", Title: "Doc"}, 0.7)
	f.stubAnswer("fine answer")
	f.convs.appendFunc = func(ctx context.Context, messages ...*types.Message) error {
		return errors.New("mongo down")
	}

	_, err := f.service.AnswerQuery(context.Background(), "user-1", "a valid question", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist messages")
}

func TestConversationTitleTruncation(t *testing.T) {
	short := "short question"
	assert.Equal(t, short, conversationTitle(short))

	long := strings.Repeat("q", 80)
	title := conversationTitle(long)
	assert.Equal(t, 63, len(title))
	assert.True(t, strings.HasSuffix(title, "..."))
}
