package dto

// CreateFacultyRequest represents faculty creation data
type CreateFacultyRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// UpdateFacultyRequest represents partial faculty update data
type UpdateFacultyRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}
