package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// ItemsResponse wraps collection payloads under an items key
type ItemsResponse struct {
	Items interface{} `json:"items"`
}
