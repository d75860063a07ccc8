package models

import (
	"time"
)

// Role is the access role assigned to a user account.
type Role string

const (
	// RoleUser is the default role for freshly signed-up accounts.
	RoleUser Role = "user"
	// RoleStudent is assigned exactly once, when a student profile is created.
	RoleStudent Role = "student"
	// RoleLecturer can create and manage their own courses.
	RoleLecturer Role = "lecturer"
	// RoleAdmin can manage everything.
	RoleAdmin Role = "admin"
)

// AllowedRoles is the set of roles an admin may assign.
var AllowedRoles = map[Role]bool{
	RoleUser:     true,
	RoleStudent:  true,
	RoleLecturer: true,
	RoleAdmin:    true,
}

// User defines a portal account backed by the 'users' table.
type User struct {
	ID             int64           `json:"id"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name"`
	HashedPassword string          `json:"-"`
	Role           Role            `json:"role"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	StudentProfile *StudentProfile `json:"student_profile"` // Relation, null unless loaded
}

// StudentProfile is the one-to-one student record attached to a user.
// Creating it promotes the owning user to the student role.
type StudentProfile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	MatricNo     string    `json:"matric_no"`
	YearOfEntry  int       `json:"year_of_entry"`
	FacultyID    int64     `json:"faculty_id"`
	DepartmentID int64     `json:"department_id"`
	Level        int       `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
}

// StudentRecord is the joined admin listing row for a student.
type StudentRecord struct {
	StudentProfile *StudentProfile `json:"student_profile"`
	User           *User           `json:"user"`
	Faculty        *Faculty        `json:"faculty"`
	Department     *Department     `json:"department"`
}
