package types

// DataResponse is the JSON envelope every endpoint answers with.
type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UploadResponse struct {
	DocumentID   string `json:"document_id"`
	Title        string `json:"title"`
	HasContent   bool   `json:"has_content"`
	HasEmbedding bool   `json:"has_embedding"`
}

type SearchResponse struct {
	Documents  []ScoredDocument `json:"documents"`
	Method     string           `json:"method"`
	Confidence float64          `json:"confidence"`
}

type PaginateResponse struct {
	Total    int64       `json:"total"`
	Elements interface{} `json:"elements"`
	Page     int64       `json:"page"`
	Limit    int64       `json:"limit"`
}
