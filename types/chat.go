package types

// Conversation groups the messages of one user.
type Conversation struct {
	ID        string `bson:"_id" json:"id"`
	UserID    string `bson:"user_id" json:"user_id"`
	Title     string `bson:"title" json:"title"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
	UpdatedAt int64  `bson:"updated_at" json:"updated_at"`
}

// Message is a single user or bot turn. Bot messages carry the titles of
// the documents the answer was grounded in and the retrieval confidence.
type Message struct {
	ID             string   `bson:"_id" json:"id"`
	ConversationID string   `bson:"conversation_id" json:"conversation_id"`
	Role           string   `bson:"role" json:"role"`
	Content        string   `bson:"content" json:"content"`
	Sources        []string `bson:"sources,omitempty" json:"sources,omitempty"`
	Confidence     float64  `bson:"confidence,omitempty" json:"confidence,omitempty"`
	CreatedAt      int64    `bson:"created_at" json:"created_at"`
}

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatAnswer is the result of one answerQuery invocation.
type ChatAnswer struct {
	Response       string         `json:"response"`
	Sources        []string       `json:"sources"`
	ConversationID string         `json:"conversation_id"`
	Confidence     float64        `json:"confidence"`
	SearchMethod   string         `json:"search_method"`
	Analysis       *QueryAnalysis `json:"analysis,omitempty"`
}
