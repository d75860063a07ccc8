package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	Level        *int   `json:"level"`
	FacultyID    *int64 `json:"faculty_id"`
	DepartmentID *int64 `json:"department_id"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateCourseRequest represents partial course update data
type UpdateCourseRequest struct {
	CourseName   *string `json:"course_name"`
	Level        *int    `json:"level"`
	FacultyID    *int64  `json:"faculty_id"`
	DepartmentID *int64  `json:"department_id"`
	IsActive     *bool   `json:"is_active"`
}

// CourseFilters represents course listing query parameters. String-typed so
// empty values can be told apart from supplied ones before parsing.
type CourseFilters struct {
	FacultyID       string
	DepartmentID    string
	Level           string
	IsActive        string
	IncludeInactive string
}
