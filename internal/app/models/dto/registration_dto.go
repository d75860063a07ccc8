package dto

// CreateRegistrationRequest represents registration creation data
type CreateRegistrationRequest struct {
	AcademicYearID int64 `json:"academic_year_id"`
}

// AddRegistrationItemRequest represents adding a course to a registration
type AddRegistrationItemRequest struct {
	CourseID int64 `json:"course_id"`
}

// SubmitRegistrationRequest represents a submit or un-submit action.
// A missing body or missing field counts as submitted=true.
type SubmitRegistrationRequest struct {
	Submitted *bool `json:"submitted"`
}
