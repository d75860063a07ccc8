package dto

// CreateAcademicYearRequest represents academic year creation data
type CreateAcademicYearRequest struct {
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
}
