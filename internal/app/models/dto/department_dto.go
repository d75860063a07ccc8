package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	FacultyID int64  `json:"faculty_id"`
}

// UpdateDepartmentRequest represents partial department update data
type UpdateDepartmentRequest struct {
	Name      *string `json:"name"`
	Code      *string `json:"code"`
	FacultyID *int64  `json:"faculty_id"`
}
