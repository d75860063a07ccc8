package services

import (
	"context"
	"strings"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

type academicYearStore interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	List(ctx context.Context) ([]*models.AcademicYear, error)
	NameExists(ctx context.Context, name string) (bool, error)
	ClearCurrentExcept(ctx context.Context, id int64) error
}

// AcademicYearService defines the interface for academic year operations
type AcademicYearService interface {
	ListAcademicYears(ctx context.Context) ([]*models.AcademicYear, error)
	CreateAcademicYear(ctx context.Context, actor *models.User, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error)
}

type academicYearServiceImpl struct {
	yearRepo academicYearStore
}

// NewAcademicYearService creates a new academic year service instance
func NewAcademicYearService(yearRepo academicYearStore) AcademicYearService {
	return &academicYearServiceImpl{yearRepo: yearRepo}
}

// ListAcademicYears retrieves all academic years, newest first.
func (s *academicYearServiceImpl) ListAcademicYears(ctx context.Context) ([]*models.AcademicYear, error) {
	return s.yearRepo.List(ctx)
}

// CreateAcademicYear creates a session. When flagged current, the flag is
// cleared on every other row afterwards; the two statements are not atomic,
// so a crash in between can briefly leave two current years.
func (s *academicYearServiceImpl) CreateAcademicYear(ctx context.Context, actor *models.User, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Only administrators can manage academic years")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Academic year name is required")
	}

	if exists, err := s.yearRepo.NameExists(ctx, name); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewBadRequestError("An academic year with this name already exists")
	}

	year := &models.AcademicYear{Name: name, IsCurrent: req.IsCurrent}
	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}

	if year.IsCurrent {
		if err := s.yearRepo.ClearCurrentExcept(ctx, year.ID); err != nil {
			logger.Error().Err(err).Int64("academicYearID", year.ID).Msg("Failed to clear previous current academic year")
			return nil, err
		}
	}
	return year, nil
}
