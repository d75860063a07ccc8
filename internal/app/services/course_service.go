package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query *repositories.CourseQuery) ([]*models.Course, error)
}

type courseProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, creator *models.User, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, actor *models.User, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64, actor *models.User) error
	ListCourses(ctx context.Context, actor *models.User, filters *dto.CourseFilters) ([]*models.Course, error)
}

type courseServiceImpl struct {
	courseRepo     courseStore
	facultyRepo    facultyGetter
	departmentRepo departmentGetter
	profileRepo    courseProfileReader
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo courseStore, facultyRepo facultyGetter, departmentRepo departmentGetter, profileRepo courseProfileReader) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		facultyRepo:    facultyRepo,
		departmentRepo: departmentRepo,
		profileRepo:    profileRepo,
	}
}

// ensureFacultyAndDepartment checks that both exist and belong together.
func (s *courseServiceImpl) ensureFacultyAndDepartment(ctx context.Context, facultyID, departmentID int64) error {
	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Faculty not found")
		}
		return err
	}
	department, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Department not found")
		}
		return err
	}
	if department.FacultyID != faculty.ID {
		return apperrors.NewBadRequestError("Department does not belong to faculty")
	}
	return nil
}

// CreateCourse creates a new course owned by the creator.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, creator *models.User, req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.CourseCode) == "" || strings.TrimSpace(req.CourseName) == "" {
		return nil, apperrors.NewBadRequestError("course_code and course_name are required")
	}
	code := strings.ToUpper(strings.TrimSpace(req.CourseCode))
	if req.Level == nil || !models.AllowedLevels[*req.Level] {
		return nil, apperrors.NewBadRequestError("level must be one of 100, 200, 300, 400, 500, 600")
	}
	if req.FacultyID == nil || *req.FacultyID <= 0 || req.DepartmentID == nil || *req.DepartmentID <= 0 {
		return nil, apperrors.NewBadRequestError("faculty_id and department_id must be positive integers")
	}

	if exists, err := s.courseRepo.CodeExists(ctx, code); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewBadRequestError("Course code already exists")
	}
	if err := s.ensureFacultyAndDepartment(ctx, *req.FacultyID, *req.DepartmentID); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	course := &models.Course{
		CourseCode:   code,
		CourseName:   req.CourseName,
		Level:        *req.Level,
		FacultyID:    *req.FacultyID,
		DepartmentID: *req.DepartmentID,
		IsActive:     isActive,
	}
	if creator != nil {
		course.CreatedBy = &creator.ID
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewBadRequestError("Course code already exists")
		}
		return nil, err
	}
	return course, nil
}

// GetCourse retrieves a course by ID.
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Course not found")
		}
		return nil, err
	}
	return course, nil
}

// UpdateCourse applies a partial update. Lecturers may only touch courses
// they created.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, actor *models.User, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if actor == nil || (actor.Role != models.RoleAdmin && actor.Role != models.RoleLecturer) {
		return nil, apperrors.NewForbiddenError("Insufficient permissions")
	}
	current, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleLecturer && (current.CreatedBy == nil || *current.CreatedBy != actor.ID) {
		return nil, apperrors.NewForbiddenError("Lecturers can only modify their courses")
	}

	updates := map[string]interface{}{}
	if req.CourseName != nil {
		updates["course_name"] = *req.CourseName
	}
	if req.Level != nil {
		if !models.AllowedLevels[*req.Level] {
			return nil, apperrors.NewBadRequestError("level must be one of 100, 200, 300, 400, 500, 600")
		}
		updates["level"] = *req.Level
	}

	newFacultyID := current.FacultyID
	newDepartmentID := current.DepartmentID
	if req.FacultyID != nil {
		if *req.FacultyID <= 0 {
			return nil, apperrors.NewBadRequestError("faculty_id must be a positive integer")
		}
		newFacultyID = *req.FacultyID
		updates["faculty_id"] = *req.FacultyID
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID <= 0 {
			return nil, apperrors.NewBadRequestError("department_id must be a positive integer")
		}
		newDepartmentID = *req.DepartmentID
		updates["department_id"] = *req.DepartmentID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if newFacultyID != current.FacultyID || newDepartmentID != current.DepartmentID {
		if err := s.ensureFacultyAndDepartment(ctx, newFacultyID, newDepartmentID); err != nil {
			return nil, err
		}
	}

	if len(updates) == 0 {
		return current, nil
	}

	if err := s.courseRepo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Course not found")
		}
		return nil, err
	}
	return s.GetCourse(ctx, id)
}

// DeleteCourse removes a course. Lecturers may only delete their own.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64, actor *models.User) error {
	if actor == nil || (actor.Role != models.RoleAdmin && actor.Role != models.RoleLecturer) {
		return apperrors.NewForbiddenError("Cannot delete this course")
	}
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role == models.RoleLecturer && (course.CreatedBy == nil || *course.CreatedBy != actor.ID) {
		return apperrors.NewForbiddenError("Cannot delete this course")
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Course not found")
		}
		return err
	}
	return nil
}

func parsePositiveInt64(value, fieldName string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, apperrors.NewBadRequestError(fieldName + " must be a positive integer")
	}
	return parsed, nil
}

// ListCourses retrieves courses for the actor. Students are scoped to their
// own faculty and level and see active courses only; staff get optional
// filters and default to active-only.
func (s *courseServiceImpl) ListCourses(ctx context.Context, actor *models.User, filters *dto.CourseFilters) ([]*models.Course, error) {
	if filters == nil {
		filters = &dto.CourseFilters{}
	}
	query := &repositories.CourseQuery{}

	if actor != nil && actor.Role == models.RoleStudent {
		profile, err := s.profileRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return []*models.Course{}, nil
			}
			return nil, err
		}

		requestedLevel := profile.Level
		if filters.Level != "" {
			parsedLevel, err := strconv.Atoi(filters.Level)
			if err != nil || !models.AllowedLevels[parsedLevel] {
				return nil, apperrors.NewBadRequestError("Invalid course level filter supplied")
			}
			requestedLevel = parsedLevel
		}
		if !models.AllowedLevels[requestedLevel] {
			return nil, apperrors.NewBadRequestError("Student profile has an unsupported level value")
		}

		if filters.FacultyID != "" {
			requestedFaculty, err := parsePositiveInt64(filters.FacultyID, "faculty_id")
			if err != nil {
				return nil, err
			}
			if requestedFaculty != profile.FacultyID {
				return nil, apperrors.NewForbiddenError("Students can only view courses from their faculty")
			}
		}

		query.FacultyID = &profile.FacultyID
		query.Level = &requestedLevel
		active := true
		query.IsActive = &active

		if filters.DepartmentID != "" {
			departmentID, err := parsePositiveInt64(filters.DepartmentID, "department_id")
			if err != nil {
				return nil, err
			}
			query.DepartmentID = &departmentID
		}

		return s.courseRepo.List(ctx, query)
	}

	includeInactive := filters.IncludeInactive == "true" || filters.IncludeInactive == "1"
	switch filters.IsActive {
	case "true", "1":
		active := true
		query.IsActive = &active
	case "false", "0":
		active := false
		query.IsActive = &active
	default:
		if !includeInactive {
			active := true
			query.IsActive = &active
		}
	}

	if filters.FacultyID != "" {
		facultyID, err := parsePositiveInt64(filters.FacultyID, "faculty_id")
		if err != nil {
			return nil, err
		}
		query.FacultyID = &facultyID
	}
	if filters.DepartmentID != "" {
		departmentID, err := parsePositiveInt64(filters.DepartmentID, "department_id")
		if err != nil {
			return nil, err
		}
		query.DepartmentID = &departmentID
	}
	if filters.Level != "" {
		level, err := strconv.Atoi(filters.Level)
		if err != nil || !models.AllowedLevels[level] {
			return nil, apperrors.NewBadRequestError("Invalid course level filter supplied")
		}
		query.Level = &level
	}

	return s.courseRepo.List(ctx, query)
}
