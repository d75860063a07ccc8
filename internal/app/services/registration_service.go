package services

import (
	"context"
	"errors"
	"time"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// feeGateMessage is the student-facing precondition failure for every
// registration mutation.
const feeGateMessage = "Please pay your school fees for this academic year and wait for admin approval before registering courses."

type registrationStore interface {
	Create(ctx context.Context, registration *models.CourseRegistration) error
	GetByID(ctx context.Context, id int64) (*models.CourseRegistration, error)
	ExistsForStudentYear(ctx context.Context, studentID, academicYearID int64) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.CourseRegistration, error)
	SetSubmitted(ctx context.Context, id int64, submitted bool, submittedAt *time.Time) error
	ListItems(ctx context.Context, registrationID int64) ([]*models.RegistrationItem, error)
	GetItemByID(ctx context.Context, itemID int64) (*models.RegistrationItem, error)
	HasActiveItem(ctx context.Context, registrationID, courseID int64) (bool, error)
	CreateItem(ctx context.Context, item *models.RegistrationItem) error
	MarkItemRemoved(ctx context.Context, itemID int64, removedAt time.Time) (*models.RegistrationItem, error)
	ListSubmitted(ctx context.Context, academicYearID *int64) ([]*models.SubmittedRegistration, error)
}

type paymentStatusReader interface {
	GetPaymentStatus(ctx context.Context, studentID, academicYearID int64) (string, error)
}

type courseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// RegistrationService defines the interface for the registration workflow
type RegistrationService interface {
	CreateRegistration(ctx context.Context, student *models.User, academicYearID int64) (*models.CourseRegistration, error)
	GetRegistrationWithItems(ctx context.Context, registrationID int64) (*models.CourseRegistration, error)
	ListRegistrationsForStudent(ctx context.Context, student *models.User) ([]*models.CourseRegistration, error)
	AddItem(ctx context.Context, actor *models.User, registrationID, courseID int64) (*models.RegistrationItem, error)
	RemoveItem(ctx context.Context, actor *models.User, itemID int64) (*models.RegistrationItem, error)
	SubmitRegistration(ctx context.Context, actor *models.User, registrationID int64, submitted bool) (*models.CourseRegistration, error)
	ListSubmittedRegistrations(ctx context.Context, academicYearID *int64) ([]*models.SubmittedRegistration, error)
}

type registrationServiceImpl struct {
	registrationRepo registrationStore
	feeRepo          paymentStatusReader
	courseRepo       courseGetter
	profileRepo      courseProfileReader
	academicYearRepo academicYearGetter
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	registrationRepo registrationStore,
	feeRepo paymentStatusReader,
	courseRepo courseGetter,
	profileRepo courseProfileReader,
	academicYearRepo academicYearGetter,
) RegistrationService {
	return &registrationServiceImpl{
		registrationRepo: registrationRepo,
		feeRepo:          feeRepo,
		courseRepo:       courseRepo,
		profileRepo:      profileRepo,
		academicYearRepo: academicYearRepo,
	}
}

// ensureApprovedSchoolFees rejects any registration mutation unless the
// student holds an approved fee payment for the academic year. Re-checked on
// every mutation, never cached.
func (s *registrationServiceImpl) ensureApprovedSchoolFees(ctx context.Context, studentID, academicYearID int64) error {
	status, err := s.feeRepo.GetPaymentStatus(ctx, studentID, academicYearID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewBadRequestError(feeGateMessage)
		}
		return err
	}
	if status != models.PaymentStatusApproved {
		return apperrors.NewBadRequestError(feeGateMessage)
	}
	return nil
}

// CreateRegistration opens an unsubmitted registration for the student.
func (s *registrationServiceImpl) CreateRegistration(ctx context.Context, student *models.User, academicYearID int64) (*models.CourseRegistration, error) {
	if academicYearID <= 0 {
		return nil, apperrors.NewBadRequestError("academic_year_id must be a positive integer")
	}
	if _, err := s.academicYearRepo.GetByID(ctx, academicYearID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Academic year not found")
		}
		return nil, err
	}
	exists, err := s.registrationRepo.ExistsForStudentYear(ctx, student.ID, academicYearID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBadRequestError("Registration already exists for this academic year")
	}

	if err := s.ensureApprovedSchoolFees(ctx, student.ID, academicYearID); err != nil {
		return nil, err
	}

	registration := &models.CourseRegistration{
		StudentID:      student.ID,
		AcademicYearID: academicYearID,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewBadRequestError("Registration already exists for this academic year")
		}
		return nil, err
	}

	logger.Info().Int64("registrationID", registration.ID).Int64("studentID", student.ID).Msg("Registration created")
	return s.GetRegistrationWithItems(ctx, registration.ID)
}

// GetRegistrationWithItems retrieves a registration with its full item
// history, removed items included.
func (s *registrationServiceImpl) GetRegistrationWithItems(ctx context.Context, registrationID int64) (*models.CourseRegistration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Registration not found")
		}
		return nil, err
	}
	items, err := s.registrationRepo.ListItems(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	registration.Items = items
	return registration, nil
}

// ListRegistrationsForStudent retrieves the student's registrations with
// nested items.
func (s *registrationServiceImpl) ListRegistrationsForStudent(ctx context.Context, student *models.User) ([]*models.CourseRegistration, error) {
	registrations, err := s.registrationRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	for _, registration := range registrations {
		items, err := s.registrationRepo.ListItems(ctx, registration.ID)
		if err != nil {
			return nil, err
		}
		registration.Items = items
	}
	return registrations, nil
}

// AddItem snapshots a course onto a registration as an active item.
func (s *registrationServiceImpl) AddItem(ctx context.Context, actor *models.User, registrationID, courseID int64) (*models.RegistrationItem, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Registration not found")
		}
		return nil, err
	}
	if registration.StudentID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Not allowed to modify this registration")
	}

	// Gate against the owning student, not the actor; an admin editing on a
	// student's behalf still needs the student's fees approved.
	if err := s.ensureApprovedSchoolFees(ctx, registration.StudentID, registration.AcademicYearID); err != nil {
		return nil, err
	}

	if courseID <= 0 {
		return nil, apperrors.NewBadRequestError("course_id must be a positive integer")
	}
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Course not available")
		}
		return nil, err
	}
	if !course.IsActive {
		return nil, apperrors.NewNotFoundError("Course not available")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, registration.StudentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("Student profile must be completed before registering courses")
		}
		return nil, err
	}
	if profile.Level == 0 {
		return nil, apperrors.NewBadRequestError("Student level information is missing")
	}
	if profile.Level != course.Level {
		return nil, apperrors.NewBadRequestError("Selected course does not match the student's level")
	}

	alreadyAdded, err := s.registrationRepo.HasActiveItem(ctx, registration.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if alreadyAdded {
		return nil, apperrors.NewBadRequestError("Course already added")
	}

	item := &models.RegistrationItem{
		RegistrationID:     registration.ID,
		CourseID:           &course.ID,
		CourseCodeSnapshot: course.CourseCode,
		CourseNameSnapshot: course.CourseName,
	}
	if err := s.registrationRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem soft-deletes a registration item. Removing an item that is
// already removed returns it unchanged without re-stamping removed_at.
func (s *registrationServiceImpl) RemoveItem(ctx context.Context, actor *models.User, itemID int64) (*models.RegistrationItem, error) {
	item, err := s.registrationRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Item not found")
		}
		return nil, err
	}
	registration, err := s.registrationRepo.GetByID(ctx, item.RegistrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Registration not found")
		}
		return nil, err
	}
	if registration.StudentID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Not allowed to modify this registration")
	}

	if item.Status == models.RegistrationItemStatusRemoved {
		return item, nil
	}
	return s.registrationRepo.MarkItemRemoved(ctx, itemID, time.Now().UTC())
}

// SubmitRegistration sets or clears the submitted flag; clearing allows the
// student to keep editing.
func (s *registrationServiceImpl) SubmitRegistration(ctx context.Context, actor *models.User, registrationID int64, submitted bool) (*models.CourseRegistration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Registration not found")
		}
		return nil, err
	}
	if registration.StudentID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Not allowed to submit this registration")
	}

	if err := s.ensureApprovedSchoolFees(ctx, registration.StudentID, registration.AcademicYearID); err != nil {
		return nil, err
	}

	var submittedAt *time.Time
	if submitted {
		now := time.Now().UTC()
		submittedAt = &now
	}
	if err := s.registrationRepo.SetSubmitted(ctx, registrationID, submitted, submittedAt); err != nil {
		return nil, err
	}
	return s.GetRegistrationWithItems(ctx, registrationID)
}

// ListSubmittedRegistrations retrieves the admin review rows.
func (s *registrationServiceImpl) ListSubmittedRegistrations(ctx context.Context, academicYearID *int64) ([]*models.SubmittedRegistration, error) {
	return s.registrationRepo.ListSubmitted(ctx, academicYearID)
}
