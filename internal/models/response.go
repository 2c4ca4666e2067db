package models

// JSON is a free-form detail map for error responses
type JSON map[string]interface{}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details *JSON  `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// PreviewResponse is returned by the preview endpoint
type PreviewResponse struct {
	Success     bool           `json:"success"`
	Data        *PreviewResult `json:"data"`
	UploadToken string         `json:"uploadToken,omitempty"`
	JobID       string         `json:"jobId,omitempty"`
}

// CommitResponse is returned by the commit endpoint
type CommitResponse struct {
	Success bool          `json:"success"`
	Data    *ImportResult `json:"data"`
	JobID   string        `json:"jobId,omitempty"`
}
