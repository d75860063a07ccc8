package models

import "time"

// Registration item statuses.
const (
	RegistrationItemStatusActive  = "active"
	RegistrationItemStatusRemoved = "removed"
)

// CourseRegistration is a student's per-session course form. One per student
// per academic year; mutable while unsubmitted, and un-submission is allowed.
type CourseRegistration struct {
	ID             int64               `json:"id"`
	StudentID      int64               `json:"student_id"`
	AcademicYearID int64               `json:"academic_year_id"`
	Submitted      bool                `json:"submitted"`
	SubmittedAt    *time.Time          `json:"submitted_at"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []*RegistrationItem `json:"items"`
}

// RegistrationItem is a course line on a registration. Course code and name
// are snapshotted at add time so later course edits never rewrite submitted
// forms. Removal is a soft delete; course_id goes NULL if the course is
// hard-deleted.
type RegistrationItem struct {
	ID                 int64      `json:"id"`
	RegistrationID     int64      `json:"registration_id"`
	CourseID           *int64     `json:"course_id"`
	CourseCodeSnapshot string     `json:"course_code_snapshot"`
	CourseNameSnapshot string     `json:"course_name_snapshot"`
	Status             string     `json:"status"`
	RemovedAt          *time.Time `json:"removed_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ActiveItems filters the loaded items down to the active ones.
func (r *CourseRegistration) ActiveItems() []*RegistrationItem {
	out := make([]*RegistrationItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Status == RegistrationItemStatusActive {
			out = append(out, item)
		}
	}
	return out
}

// SubmittedRegistration is the admin review listing row.
type SubmittedRegistration struct {
	RegistrationID   int64      `json:"registration_id"`
	AcademicYearID   int64      `json:"academic_year_id"`
	AcademicYearName *string    `json:"academic_year_name"`
	SubmittedAt      *time.Time `json:"submitted_at"`
	StudentID        int64      `json:"student_id"`
	StudentFullName  string     `json:"student_full_name"`
	StudentEmail     string     `json:"student_email"`
	MatricNo         *string    `json:"matric_no"`
	Level            *int       `json:"level"`
	CourseCount      int        `json:"course_count"`
}
