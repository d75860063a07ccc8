package models

import "time"

// Department belongs to exactly one faculty.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	FacultyID int64     `json:"faculty_id"`
	CreatedAt time.Time `json:"created_at"`
}
