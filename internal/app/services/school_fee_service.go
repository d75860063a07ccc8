package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

type schoolFeeStore interface {
	ListPolicies(ctx context.Context) ([]*models.SchoolFeePolicy, error)
	GetPolicyByID(ctx context.Context, id int64) (*models.SchoolFeePolicy, error)
	GetPolicyByYear(ctx context.Context, academicYearID int64) (*models.SchoolFeePolicy, error)
	CreatePolicy(ctx context.Context, policy *models.SchoolFeePolicy) error
	UpdatePolicyAmount(ctx context.Context, id, amount int64, updatedBy *int64) error

	GetPaymentByID(ctx context.Context, id int64) (*models.SchoolFeePayment, error)
	GetPaymentByStudentYear(ctx context.Context, studentID, academicYearID int64) (*models.SchoolFeePayment, error)
	ListPayments(ctx context.Context, query *repositories.PaymentQuery) ([]*models.SchoolFeePayment, error)
	CreatePayment(ctx context.Context, payment *models.SchoolFeePayment) error
	ResetDeclinedPayment(ctx context.Context, id, amount int64, reference *string, notes *string) error
	ApprovePayment(ctx context.Context, id, adminID int64, decidedAt time.Time) error
	DeclinePayment(ctx context.Context, id, adminID int64, reason string, decidedAt time.Time) error
}

// SchoolFeeService defines the interface for fee policy and payment operations
type SchoolFeeService interface {
	ListPolicies(ctx context.Context) ([]*models.SchoolFeePolicy, error)
	UpsertPolicy(ctx context.Context, actor *models.User, req *dto.UpsertPolicyRequest) (*models.SchoolFeePolicy, error)
	ListPayments(ctx context.Context, actor *models.User, filters *dto.PaymentFilters) ([]*models.SchoolFeePayment, error)
	CreatePayment(ctx context.Context, actor *models.User, req *dto.CreatePaymentRequest) (*models.SchoolFeePayment, error)
	ApprovePayment(ctx context.Context, actor *models.User, paymentID int64) (*models.SchoolFeePayment, error)
	DeclinePayment(ctx context.Context, actor *models.User, paymentID int64, req *dto.DeclinePaymentRequest) (*models.SchoolFeePayment, error)
}

type schoolFeeServiceImpl struct {
	feeRepo          schoolFeeStore
	academicYearRepo academicYearGetter
	profileRepo      courseProfileReader
	auditRepo        auditRecorder
}

// NewSchoolFeeService creates a new school fee service instance
func NewSchoolFeeService(
	feeRepo schoolFeeStore,
	academicYearRepo academicYearGetter,
	profileRepo courseProfileReader,
	auditRepo auditRecorder,
) SchoolFeeService {
	return &schoolFeeServiceImpl{
		feeRepo:          feeRepo,
		academicYearRepo: academicYearRepo,
		profileRepo:      profileRepo,
		auditRepo:        auditRepo,
	}
}

// ListPolicies retrieves all fee policies with their year names.
func (s *schoolFeeServiceImpl) ListPolicies(ctx context.Context) ([]*models.SchoolFeePolicy, error) {
	return s.feeRepo.ListPolicies(ctx)
}

// UpsertPolicy creates the fee policy for an academic year, or updates its
// amount when one already exists.
func (s *schoolFeeServiceImpl) UpsertPolicy(ctx context.Context, actor *models.User, req *dto.UpsertPolicyRequest) (*models.SchoolFeePolicy, error) {
	if req.AcademicYearID <= 0 {
		return nil, apperrors.NewBadRequestError("academic_year_id must be a positive integer")
	}
	if req.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("amount must be a positive number")
	}
	if _, err := s.academicYearRepo.GetByID(ctx, req.AcademicYearID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Academic year not found")
		}
		return nil, err
	}

	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}

	existing, err := s.feeRepo.GetPolicyByYear(ctx, req.AcademicYearID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.feeRepo.UpdatePolicyAmount(ctx, existing.ID, req.Amount, actorID); err != nil {
			return nil, err
		}
		return s.feeRepo.GetPolicyByID(ctx, existing.ID)
	}

	policy := &models.SchoolFeePolicy{
		AcademicYearID: req.AcademicYearID,
		Amount:         req.Amount,
		CreatedBy:      actorID,
		UpdatedBy:      actorID,
	}
	if err := s.feeRepo.CreatePolicy(ctx, policy); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race against a concurrent upsert for the same year.
			raced, getErr := s.feeRepo.GetPolicyByYear(ctx, req.AcademicYearID)
			if getErr != nil {
				return nil, getErr
			}
			if err := s.feeRepo.UpdatePolicyAmount(ctx, raced.ID, req.Amount, actorID); err != nil {
				return nil, err
			}
			return s.feeRepo.GetPolicyByID(ctx, raced.ID)
		}
		return nil, err
	}
	return s.feeRepo.GetPolicyByID(ctx, policy.ID)
}

// ListPayments retrieves payments scoped to the actor. Students only ever see
// their own; admins may filter by status, year and student.
func (s *schoolFeeServiceImpl) ListPayments(ctx context.Context, actor *models.User, filters *dto.PaymentFilters) ([]*models.SchoolFeePayment, error) {
	if filters == nil {
		filters = &dto.PaymentFilters{}
	}
	query := &repositories.PaymentQuery{}

	switch {
	case actor != nil && actor.Role == models.RoleStudent:
		query.StudentID = &actor.ID
	case actor != nil && actor.Role == models.RoleAdmin:
		if filters.Status != "" {
			if !models.AllowedPaymentStatuses[filters.Status] {
				return nil, apperrors.NewBadRequestError("Invalid status filter supplied")
			}
			status := filters.Status
			query.Status = &status
		}
		if filters.AcademicYearID != "" {
			academicYearID, err := parsePositiveInt64(filters.AcademicYearID, "academic_year_id filter")
			if err != nil {
				return nil, err
			}
			query.AcademicYearID = &academicYearID
		}
		if filters.StudentID != "" {
			studentID, err := parsePositiveInt64(filters.StudentID, "student_id filter")
			if err != nil {
				return nil, err
			}
			query.StudentID = &studentID
		}
	default:
		return nil, apperrors.NewForbiddenError("Insufficient permissions to view payments")
	}

	return s.feeRepo.ListPayments(ctx, query)
}

// CreatePayment records a student's pending fee payment for a year. The
// amount always comes from the policy. A declined payment is reset in place;
// any other existing payment blocks resubmission.
func (s *schoolFeeServiceImpl) CreatePayment(ctx context.Context, actor *models.User, req *dto.CreatePaymentRequest) (*models.SchoolFeePayment, error) {
	if actor == nil || actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("Only students can create school fee payments")
	}
	if _, err := s.profileRepo.GetByUserID(ctx, actor.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("Complete your student profile before paying fees")
		}
		return nil, err
	}
	if req.AcademicYearID <= 0 {
		return nil, apperrors.NewBadRequestError("academic_year_id must be a positive integer")
	}
	if _, err := s.academicYearRepo.GetByID(ctx, req.AcademicYearID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Academic year not found")
		}
		return nil, err
	}

	policy, err := s.feeRepo.GetPolicyByYear(ctx, req.AcademicYearID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("School fee amount has not been set for this academic year")
		}
		return nil, err
	}

	reference := strings.TrimSpace(req.PaymentReference)
	if reference == "" {
		reference = strings.TrimSpace(req.Reference)
	}
	if reference == "" {
		reference = "SFP-" + uuid.NewString()
	}
	var notes *string
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = &trimmed
	}

	existing, err := s.feeRepo.GetPaymentByStudentYear(ctx, actor.ID, req.AcademicYearID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status != models.PaymentStatusDeclined {
			return nil, apperrors.NewBadRequestError("A payment already exists for this academic year")
		}
		if err := s.feeRepo.ResetDeclinedPayment(ctx, existing.ID, policy.Amount, &reference, notes); err != nil {
			return nil, err
		}
		logger.Info().Int64("paymentID", existing.ID).Int64("studentID", actor.ID).Msg("Declined payment resubmitted")
		return s.feeRepo.GetPaymentByID(ctx, existing.ID)
	}

	payment := &models.SchoolFeePayment{
		StudentID:        actor.ID,
		AcademicYearID:   req.AcademicYearID,
		Amount:           policy.Amount,
		PaymentReference: &reference,
		Notes:            notes,
	}
	if err := s.feeRepo.CreatePayment(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race against a concurrent payment for the same year.
			return nil, apperrors.NewBadRequestError("A payment already exists for this academic year")
		}
		return nil, err
	}
	return s.feeRepo.GetPaymentByID(ctx, payment.ID)
}

// ApprovePayment marks a pending payment approved and records the decision.
func (s *schoolFeeServiceImpl) ApprovePayment(ctx context.Context, actor *models.User, paymentID int64) (*models.SchoolFeePayment, error) {
	payment, err := s.feeRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Payment not found")
		}
		return nil, err
	}
	switch payment.Status {
	case models.PaymentStatusApproved:
		return nil, apperrors.NewBadRequestError("Payment is already approved")
	case models.PaymentStatusDeclined:
		return nil, apperrors.NewBadRequestError("Declined payments cannot be approved. Ask the student to resubmit.")
	}

	if err := s.feeRepo.ApprovePayment(ctx, paymentID, actor.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if auditErr := s.auditRepo.Record(ctx, actor.ID, models.AuditActionPaymentApproved, map[string]interface{}{
		"payment_id": paymentID,
		"student_id": payment.StudentID,
	}); auditErr != nil {
		logger.Warn().Err(auditErr).Int64("paymentID", paymentID).Msg("Failed to record payment approval audit entry")
	}

	return s.feeRepo.GetPaymentByID(ctx, paymentID)
}

// DeclinePayment marks a pending payment declined with a reason and records
// the decision.
func (s *schoolFeeServiceImpl) DeclinePayment(ctx context.Context, actor *models.User, paymentID int64, req *dto.DeclinePaymentRequest) (*models.SchoolFeePayment, error) {
	payment, err := s.feeRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Payment not found")
		}
		return nil, err
	}
	switch payment.Status {
	case models.PaymentStatusDeclined:
		return nil, apperrors.NewBadRequestError("Payment is already declined")
	case models.PaymentStatusApproved:
		return nil, apperrors.NewBadRequestError("Approved payments cannot be declined")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = strings.TrimSpace(req.DeclineReason)
	}
	if reason == "" {
		return nil, apperrors.NewBadRequestError("Provide a reason when declining a payment")
	}

	if err := s.feeRepo.DeclinePayment(ctx, paymentID, actor.ID, reason, time.Now().UTC()); err != nil {
		return nil, err
	}

	if auditErr := s.auditRepo.Record(ctx, actor.ID, models.AuditActionPaymentDeclined, map[string]interface{}{
		"payment_id": paymentID,
		"student_id": payment.StudentID,
		"reason":     reason,
	}); auditErr != nil {
		logger.Warn().Err(auditErr).Int64("paymentID", paymentID).Msg("Failed to record payment decline audit entry")
	}

	return s.feeRepo.GetPaymentByID(ctx, paymentID)
}
