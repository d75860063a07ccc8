package services

import (
	"context"
	"errors"
	"strings"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

type facultyStore interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	List(ctx context.Context) ([]*models.Faculty, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
}

type departmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context, facultyID *int64) ([]*models.Department, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
}

// FacultyService defines the interface for faculty and department operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error)
	ListFaculties(ctx context.Context) ([]*models.Faculty, error)
	GetFaculty(ctx context.Context, id int64) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error

	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error)
	ListDepartments(ctx context.Context, facultyID *int64) ([]*models.Department, error)
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

type facultyServiceImpl struct {
	facultyRepo    facultyStore
	departmentRepo departmentStore
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo facultyStore, departmentRepo departmentStore) FacultyService {
	return &facultyServiceImpl{
		facultyRepo:    facultyRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateFaculty creates a new faculty with an uppercase code.
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if name == "" || code == "" {
		return nil, apperrors.NewBadRequestError("name and code are required")
	}

	if exists, err := s.facultyRepo.CodeExists(ctx, code, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewBadRequestError("Faculty code already exists")
	}
	if exists, err := s.facultyRepo.NameExists(ctx, name, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewBadRequestError("Faculty name already exists")
	}

	faculty := &models.Faculty{Name: name, Code: code}
	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewBadRequestError("Faculty code already exists")
		}
		return nil, err
	}
	return faculty, nil
}

// ListFaculties retrieves all faculties.
func (s *facultyServiceImpl) ListFaculties(ctx context.Context) ([]*models.Faculty, error) {
	return s.facultyRepo.List(ctx)
}

// GetFaculty retrieves a faculty by ID.
func (s *facultyServiceImpl) GetFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Faculty not found")
		}
		return nil, err
	}
	return faculty, nil
}

// UpdateFaculty applies a partial update. An empty update returns the
// current row unchanged.
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.Faculty, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewBadRequestError("name cannot be empty")
		}
		if exists, err := s.facultyRepo.NameExists(ctx, name, id); err != nil {
			return nil, err
		} else if exists {
			return nil, apperrors.NewBadRequestError("Faculty name already exists")
		}
		updates["name"] = name
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code == "" {
			return nil, apperrors.NewBadRequestError("code cannot be empty")
		}
		if exists, err := s.facultyRepo.CodeExists(ctx, code, id); err != nil {
			return nil, err
		} else if exists {
			return nil, apperrors.NewBadRequestError("Faculty code already exists")
		}
		updates["code"] = code
	}

	if len(updates) == 0 {
		return s.GetFaculty(ctx, id)
	}

	if err := s.facultyRepo.Update(ctx, id, updates); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError("Faculty not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.NewBadRequestError("Faculty name already exists")
		}
		return nil, err
	}
	return s.GetFaculty(ctx, id)
}

// DeleteFaculty removes a faculty.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Faculty not found")
		}
		return err
	}
	return nil
}

// CreateDepartment creates a new department under an existing faculty.
func (s *facultyServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if name == "" || code == "" || req.FacultyID == 0 {
		return nil, apperrors.NewBadRequestError("name, code and faculty_id are required")
	}

	if _, err := s.GetFaculty(ctx, req.FacultyID); err != nil {
		return nil, err
	}

	if exists, err := s.departmentRepo.CodeExists(ctx, code, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewBadRequestError("Department code already exists")
	}
	if exists, err := s.departmentRepo.NameExists(ctx, name, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewBadRequestError("Department name already exists")
	}

	department := &models.Department{Name: name, Code: code, FacultyID: req.FacultyID}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewBadRequestError("Department code already exists")
		}
		return nil, err
	}
	return department, nil
}

// ListDepartments retrieves departments, optionally scoped to a faculty.
func (s *facultyServiceImpl) ListDepartments(ctx context.Context, facultyID *int64) ([]*models.Department, error) {
	return s.departmentRepo.List(ctx, facultyID)
}

// GetDepartment retrieves a department by ID.
func (s *facultyServiceImpl) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Department not found")
		}
		return nil, err
	}
	return department, nil
}

// UpdateDepartment applies a partial update, including moving the department
// to another existing faculty.
func (s *facultyServiceImpl) UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewBadRequestError("name cannot be empty")
		}
		if exists, err := s.departmentRepo.NameExists(ctx, name, id); err != nil {
			return nil, err
		} else if exists {
			return nil, apperrors.NewBadRequestError("Department name already exists")
		}
		updates["name"] = name
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code == "" {
			return nil, apperrors.NewBadRequestError("code cannot be empty")
		}
		if exists, err := s.departmentRepo.CodeExists(ctx, code, id); err != nil {
			return nil, err
		} else if exists {
			return nil, apperrors.NewBadRequestError("Department code already exists")
		}
		updates["code"] = code
	}
	if req.FacultyID != nil {
		if _, err := s.GetFaculty(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
		updates["faculty_id"] = *req.FacultyID
	}

	if len(updates) == 0 {
		return s.GetDepartment(ctx, id)
	}

	if err := s.departmentRepo.Update(ctx, id, updates); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError("Department not found")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.NewBadRequestError("Department name already exists")
		}
		return nil, err
	}
	return s.GetDepartment(ctx, id)
}

// DeleteDepartment removes a department.
func (s *facultyServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Department not found")
		}
		return err
	}
	return nil
}
