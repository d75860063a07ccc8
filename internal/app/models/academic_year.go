package models

import "time"

// AcademicYear is a named session such as "2024/2025". At most one row is
// flagged current.
type AcademicYear struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsCurrent bool      `json:"is_current"`
	CreatedAt time.Time `json:"created_at"`
}
