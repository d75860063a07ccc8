package dto

// CreateStudentProfileRequest represents student profile creation data.
// Numeric fields are pointers so the service can tell "absent" from zero and
// report the field-specific validation message.
type CreateStudentProfileRequest struct {
	MatricNo     string `json:"matric_no"`
	YearOfEntry  *int   `json:"year_of_entry"`
	FacultyID    *int64 `json:"faculty_id"`
	DepartmentID *int64 `json:"department_id"`
	Level        *int   `json:"level"`
}
