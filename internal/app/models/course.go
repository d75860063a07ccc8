package models

import "time"

// AllowedLevels are the study levels a course or student profile may carry.
var AllowedLevels = map[int]bool{
	100: true,
	200: true,
	300: true,
	400: true,
	500: true,
	600: true,
}

// Course is a registrable unit of study owned by the lecturer or admin who
// created it. Codes are stored uppercase and are unique; faculty and
// department must be consistent (service-enforced).
type Course struct {
	ID           int64     `json:"id"`
	CourseCode   string    `json:"course_code"`
	CourseName   string    `json:"course_name"`
	Level        int       `json:"level"`
	FacultyID    int64     `json:"faculty_id"`
	DepartmentID int64     `json:"department_id"`
	CreatedBy    *int64    `json:"created_by"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
