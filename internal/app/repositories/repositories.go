package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	StudentProfileRepository *StudentProfileRepository
	FacultyRepository        *FacultyRepository
	DepartmentRepository     *DepartmentRepository
	AcademicYearRepository   *AcademicYearRepository
	CourseRepository         *CourseRepository
	RegistrationRepository   *RegistrationRepository
	SchoolFeeRepository      *SchoolFeeRepository
	AuditLogRepository       *AuditLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		StudentProfileRepository: NewStudentProfileRepository(db),
		FacultyRepository:        NewFacultyRepository(db),
		DepartmentRepository:     NewDepartmentRepository(db),
		AcademicYearRepository:   NewAcademicYearRepository(db),
		CourseRepository:         NewCourseRepository(db),
		RegistrationRepository:   NewRegistrationRepository(db),
		SchoolFeeRepository:      NewSchoolFeeRepository(db),
		AuditLogRepository:       NewAuditLogRepository(db),
	}
}
