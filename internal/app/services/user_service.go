package services

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/db"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/csvutil"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

type userStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateRole(ctx context.Context, userID int64, role models.Role) error
	UpdateRoleTx(ctx context.Context, tx pgx.Tx, userID int64, role models.Role) error
}

type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	MatricNoExists(ctx context.Context, matricNo string) (bool, error)
	CreateTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error
	ListStudents(ctx context.Context, filters *repositories.StudentQuery) ([]*models.StudentRecord, error)
}

type facultyGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
}

type departmentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

type studentRegistrationReader interface {
	LatestForStudent(ctx context.Context, studentID int64) (*models.CourseRegistration, error)
	CountActiveItems(ctx context.Context, registrationID int64) (int, error)
}

type academicYearGetter interface {
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
}

type auditRecorder interface {
	Record(ctx context.Context, actorID int64, actionType string, actionData interface{}) error
}

// transactor runs a function inside a database transaction.
type transactor interface {
	WithinTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserService defines the interface for user and student profile operations
type UserService interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserWithProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateRole(ctx context.Context, actor *models.User, userID int64, role string) (*models.User, error)
	CreateStudentProfile(ctx context.Context, user *models.User, req *dto.CreateStudentProfileRequest) (*models.StudentProfile, error)
	ListStudents(ctx context.Context, filters *repositories.StudentQuery) ([]*models.StudentRecord, error)
	ExportStudentsCSV(ctx context.Context) ([]byte, error)
}

type userServiceImpl struct {
	userRepo         userStore
	profileRepo      profileStore
	facultyRepo      facultyGetter
	departmentRepo   departmentGetter
	registrationRepo studentRegistrationReader
	academicYearRepo academicYearGetter
	auditRepo        auditRecorder
	tx               transactor
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo userStore,
	profileRepo profileStore,
	facultyRepo facultyGetter,
	departmentRepo departmentGetter,
	registrationRepo studentRegistrationReader,
	academicYearRepo academicYearGetter,
	auditRepo auditRecorder,
	tx transactor,
) UserService {
	return &userServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		facultyRepo:      facultyRepo,
		departmentRepo:   departmentRepo,
		registrationRepo: registrationRepo,
		academicYearRepo: academicYearRepo,
		auditRepo:        auditRepo,
		tx:               tx,
	}
}

// GetByID retrieves a user by ID.
func (s *userServiceImpl) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

// GetUserWithProfile retrieves a user with their student profile attached,
// which stays nil when no profile exists.
func (s *userServiceImpl) GetUserWithProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	user.StudentProfile = profile
	return user, nil
}

// UpdateRole sets a user's role and records the change.
func (s *userServiceImpl) UpdateRole(ctx context.Context, actor *models.User, userID int64, role string) (*models.User, error) {
	newRole := models.Role(role)
	if !models.AllowedRoles[newRole] {
		return nil, apperrors.NewBadRequestError("Invalid role supplied")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, newRole); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}

	if actor != nil {
		auditErr := s.auditRepo.Record(ctx, actor.ID, models.AuditActionRoleUpdated, map[string]interface{}{
			"target_user_id": userID,
			"role":           string(newRole),
		})
		if auditErr != nil {
			logger.Warn().Err(auditErr).Int64("userID", userID).Msg("Failed to record role change audit entry")
		}
	}

	return s.GetByID(ctx, userID)
}

// CreateStudentProfile validates and inserts a student profile, promoting the
// owning user to the student role in the same transaction.
func (s *userServiceImpl) CreateStudentProfile(ctx context.Context, user *models.User, req *dto.CreateStudentProfileRequest) (*models.StudentProfile, error) {
	matricNo := strings.TrimSpace(req.MatricNo)
	if matricNo == "" {
		return nil, apperrors.NewBadRequestError("matric_no is required")
	}
	if req.YearOfEntry == nil {
		return nil, apperrors.NewBadRequestError("year_of_entry must be an integer")
	}
	if req.FacultyID == nil || *req.FacultyID <= 0 {
		return nil, apperrors.NewBadRequestError("faculty_id must be a positive integer")
	}
	if req.DepartmentID == nil || *req.DepartmentID <= 0 {
		return nil, apperrors.NewBadRequestError("department_id must be a positive integer")
	}
	if req.Level == nil || !models.AllowedLevels[*req.Level] {
		return nil, apperrors.NewBadRequestError("level must be one of 100, 200, 300, 400, 500, 600")
	}

	if _, err := s.profileRepo.GetByUserID(ctx, user.ID); err == nil {
		return nil, apperrors.NewBadRequestError("Profile already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	taken, err := s.profileRepo.MatricNoExists(ctx, matricNo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewBadRequestError("Matriculation number already in use")
	}

	faculty, err := s.facultyRepo.GetByID(ctx, *req.FacultyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Faculty not found")
		}
		return nil, err
	}
	department, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Department not found")
		}
		return nil, err
	}
	if department.FacultyID != faculty.ID {
		return nil, apperrors.NewBadRequestError("Department does not belong to the supplied faculty")
	}

	profile := &models.StudentProfile{
		UserID:       user.ID,
		MatricNo:     matricNo,
		YearOfEntry:  *req.YearOfEntry,
		FacultyID:    *req.FacultyID,
		DepartmentID: *req.DepartmentID,
		Level:        *req.Level,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.profileRepo.CreateTx(ctx, tx, profile); err != nil {
			return err
		}
		return s.userRepo.UpdateRoleTx(ctx, tx, user.ID, models.RoleStudent)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewBadRequestError("Matriculation number already in use")
		}
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Str("matricNo", profile.MatricNo).Msg("Student profile created")
	return profile, nil
}

// ListStudents retrieves joined student records for the admin listing.
func (s *userServiceImpl) ListStudents(ctx context.Context, filters *repositories.StudentQuery) ([]*models.StudentRecord, error) {
	return s.profileRepo.ListStudents(ctx, filters)
}

// ExportStudentsCSV renders every student as a CSV row with the academic
// year and active course count of their latest registration.
func (s *userServiceImpl) ExportStudentsCSV(ctx context.Context) ([]byte, error) {
	records, err := s.profileRepo.ListStudents(ctx, nil)
	if err != nil {
		return nil, err
	}

	header := []string{"Matric No", "Full Name", "Faculty", "Department", "Academic Year", "Total Courses"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		academicYearName := "-"
		totalCourses := 0

		registration, err := s.registrationRepo.LatestForStudent(ctx, record.User.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if registration != nil {
			year, err := s.academicYearRepo.GetByID(ctx, registration.AcademicYearID)
			if err == nil {
				academicYearName = year.Name
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
			totalCourses, err = s.registrationRepo.CountActiveItems(ctx, registration.ID)
			if err != nil {
				return nil, err
			}
		}

		rows = append(rows, []string{
			record.StudentProfile.MatricNo,
			record.User.FullName,
			record.Faculty.Name,
			record.Department.Name,
			academicYearName,
			strconv.Itoa(totalCourses),
		})
	}

	var buf bytes.Buffer
	if err := csvutil.WriteRows(&buf, header, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
