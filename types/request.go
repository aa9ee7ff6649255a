package types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UploadRequest is the metadata form field of a document upload.
type UploadRequest struct {
	Title      string   `json:"title"`
	DocType    string   `json:"doc_type"`
	ClientName string   `json:"client_name"`
	Industry   string   `json:"industry"`
	Geography  string   `json:"geography"`
	Year       int      `json:"year"`
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
}

// SearchRequest is the body of the direct retrieval endpoint.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
