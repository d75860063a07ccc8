package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/pkg/dberrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// SchoolFeeRepository handles fee policy and payment database operations
type SchoolFeeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSchoolFeeRepository creates a new SchoolFeeRepository
func NewSchoolFeeRepository(db *pgxpool.Pool) *SchoolFeeRepository {
	return &SchoolFeeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var policyJoinedColumns = []string{
	"p.id", "p.academic_year_id", "p.amount", "p.created_by", "p.updated_by", "p.created_at", "p.updated_at",
	"ay.name",
}

func scanPolicy(row pgx.Row) (*models.SchoolFeePolicy, error) {
	p := &models.SchoolFeePolicy{}
	err := row.Scan(&p.ID, &p.AcademicYearID, &p.Amount, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt, &p.AcademicYearName)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPolicies retrieves all policies joined with their year name, ordered by
// year name descending.
func (r *SchoolFeeRepository) ListPolicies(ctx context.Context) ([]*models.SchoolFeePolicy, error) {
	sql, args, err := r.sb.Select(policyJoinedColumns...).
		From("school_fee_policies p").
		Join("academic_years ay ON ay.id = p.academic_year_id").
		OrderBy("ay.name DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list policies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list policies query")
		return nil, fmt.Errorf("error querying fee policies: %w", err)
	}
	defer rows.Close()

	policies := []*models.SchoolFeePolicy{}
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning fee policy row: %w", err)
		}
		policies = append(policies, policy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee policy rows: %w", err)
	}
	return policies, nil
}

// GetPolicyByID retrieves a policy by ID joined with its year name.
func (r *SchoolFeeRepository) GetPolicyByID(ctx context.Context, id int64) (*models.SchoolFeePolicy, error) {
	sql, args, err := r.sb.Select(policyJoinedColumns...).
		From("school_fee_policies p").
		Join("academic_years ay ON ay.id = p.academic_year_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get policy query: %w", err)
	}

	policy, err := scanPolicy(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("policyID", id).Msg("Error scanning fee policy row")
		return nil, fmt.Errorf("error getting fee policy by ID: %w", err)
	}
	return policy, nil
}

// GetPolicyByYear retrieves the policy for an academic year.
func (r *SchoolFeeRepository) GetPolicyByYear(ctx context.Context, academicYearID int64) (*models.SchoolFeePolicy, error) {
	sql, args, err := r.sb.Select("id", "academic_year_id", "amount", "created_by", "updated_by", "created_at", "updated_at").
		From("school_fee_policies").
		Where(squirrel.Eq{"academic_year_id": academicYearID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get policy by year query: %w", err)
	}

	p := &models.SchoolFeePolicy{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.AcademicYearID, &p.Amount, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("academicYearID", academicYearID).Msg("Error scanning fee policy row")
		return nil, fmt.Errorf("error getting fee policy by year: %w", err)
	}
	return p, nil
}

// CreatePolicy inserts a new policy and fills in the generated ID and
// timestamps.
func (r *SchoolFeeRepository) CreatePolicy(ctx context.Context, policy *models.SchoolFeePolicy) error {
	sql, args, err := r.sb.Insert("school_fee_policies").
		Columns("academic_year_id", "amount", "created_by", "updated_by").
		Values(policy.AcademicYearID, policy.Amount, policy.CreatedBy, policy.UpdatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create policy query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create policy query")
		return fmt.Errorf("error creating fee policy: %w", err)
	}
	return nil
}

// UpdatePolicyAmount updates an existing policy's amount, stamping the
// updater and update time.
func (r *SchoolFeeRepository) UpdatePolicyAmount(ctx context.Context, id, amount int64, updatedBy *int64) error {
	sql, args, err := r.sb.Update("school_fee_policies").
		Set("amount", amount).
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update policy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("policyID", id).Msg("Error executing update policy query")
		return fmt.Errorf("error updating fee policy: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var paymentJoinedColumns = []string{
	"p.id", "p.student_id", "p.academic_year_id", "p.amount", "p.status",
	"p.payment_reference", "p.notes",
	"p.approved_by", "p.approved_at",
	"p.declined_by", "p.declined_at", "p.declined_reason",
	"p.created_at", "p.updated_at",
	"ay.name",
	"student.full_name", "student.email",
	"approver.full_name", "approver.email",
	"decliner.full_name", "decliner.email",
}

func scanJoinedPayment(row pgx.Row) (*models.SchoolFeePayment, error) {
	p := &models.SchoolFeePayment{}
	var studentName, studentEmail string
	var approverName, approverEmail, declinerName, declinerEmail *string
	err := row.Scan(
		&p.ID, &p.StudentID, &p.AcademicYearID, &p.Amount, &p.Status,
		&p.PaymentReference, &p.Notes,
		&p.ApprovedBy, &p.ApprovedAt,
		&p.DeclinedBy, &p.DeclinedAt, &p.DeclinedReason,
		&p.CreatedAt, &p.UpdatedAt,
		&p.AcademicYearName,
		&studentName, &studentEmail,
		&approverName, &approverEmail,
		&declinerName, &declinerEmail,
	)
	if err != nil {
		return nil, err
	}
	p.Student = &models.UserRef{ID: p.StudentID, FullName: studentName, Email: studentEmail}
	if p.ApprovedBy != nil && approverName != nil && approverEmail != nil {
		p.ApprovedByUser = &models.UserRef{ID: *p.ApprovedBy, FullName: *approverName, Email: *approverEmail}
	}
	if p.DeclinedBy != nil && declinerName != nil && declinerEmail != nil {
		p.DeclinedByUser = &models.UserRef{ID: *p.DeclinedBy, FullName: *declinerName, Email: *declinerEmail}
	}
	return p, nil
}

func (r *SchoolFeeRepository) joinedPaymentBuilder() squirrel.SelectBuilder {
	return r.sb.Select(paymentJoinedColumns...).
		From("school_fee_payments p").
		Join("academic_years ay ON ay.id = p.academic_year_id").
		Join("users student ON student.id = p.student_id").
		LeftJoin("users approver ON approver.id = p.approved_by").
		LeftJoin("users decliner ON decliner.id = p.declined_by")
}

// GetPaymentByID retrieves a payment by ID joined with year and reviewer
// references.
func (r *SchoolFeeRepository) GetPaymentByID(ctx context.Context, id int64) (*models.SchoolFeePayment, error) {
	sql, args, err := r.joinedPaymentBuilder().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	payment, err := scanJoinedPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by ID: %w", err)
	}
	return payment, nil
}

// GetPaymentByStudentYear retrieves the single payment row for a student and
// academic year without joins.
func (r *SchoolFeeRepository) GetPaymentByStudentYear(ctx context.Context, studentID, academicYearID int64) (*models.SchoolFeePayment, error) {
	sql, args, err := r.sb.Select(
		"id", "student_id", "academic_year_id", "amount", "status",
		"payment_reference", "notes",
		"approved_by", "approved_at",
		"declined_by", "declined_at", "declined_reason",
		"created_at", "updated_at",
	).
		From("school_fee_payments").
		Where(squirrel.Eq{"student_id": studentID, "academic_year_id": academicYearID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment by student query: %w", err)
	}

	p := &models.SchoolFeePayment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.StudentID, &p.AcademicYearID, &p.Amount, &p.Status,
		&p.PaymentReference, &p.Notes,
		&p.ApprovedBy, &p.ApprovedAt,
		&p.DeclinedBy, &p.DeclinedAt, &p.DeclinedReason,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by student and year: %w", err)
	}
	return p, nil
}

// GetPaymentStatus retrieves just the status of a student's payment for a
// year, for the registration fee gate.
func (r *SchoolFeeRepository) GetPaymentStatus(ctx context.Context, studentID, academicYearID int64) (string, error) {
	sql, args, err := r.sb.Select("status").
		From("school_fee_payments").
		Where(squirrel.Eq{"student_id": studentID, "academic_year_id": academicYearID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build payment status query: %w", err)
	}

	var status string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning payment status")
		return "", fmt.Errorf("error getting payment status: %w", err)
	}
	return status, nil
}

// PaymentQuery filters the payment listing. Nil fields are not applied.
type PaymentQuery struct {
	StudentID      *int64
	AcademicYearID *int64
	Status         *string
}

// ListPayments retrieves payments matching the query, newest first.
func (r *SchoolFeeRepository) ListPayments(ctx context.Context, query *PaymentQuery) ([]*models.SchoolFeePayment, error) {
	builder := r.joinedPaymentBuilder().
		OrderBy("p.created_at DESC")

	if query != nil {
		if query.StudentID != nil {
			builder = builder.Where(squirrel.Eq{"p.student_id": *query.StudentID})
		}
		if query.AcademicYearID != nil {
			builder = builder.Where(squirrel.Eq{"p.academic_year_id": *query.AcademicYearID})
		}
		if query.Status != nil {
			builder = builder.Where(squirrel.Eq{"p.status": *query.Status})
		}
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list payments query")
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.SchoolFeePayment{}
	for rows.Next() {
		payment, err := scanJoinedPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// CreatePayment inserts a pending payment and fills in the generated ID and
// timestamps. A concurrent duplicate for the same student and year surfaces
// as ErrDuplicate via the unique constraint.
func (r *SchoolFeeRepository) CreatePayment(ctx context.Context, payment *models.SchoolFeePayment) error {
	sql, args, err := r.sb.Insert("school_fee_payments").
		Columns("student_id", "academic_year_id", "amount", "status", "payment_reference", "notes").
		Values(payment.StudentID, payment.AcademicYearID, payment.Amount, models.PaymentStatusPending, payment.PaymentReference, payment.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create payment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create payment query")
		return fmt.Errorf("error creating payment: %w", err)
	}
	payment.Status = models.PaymentStatusPending
	return nil
}

// ResetDeclinedPayment flips a declined payment back to pending with fresh
// values, clearing every reviewer field.
func (r *SchoolFeeRepository) ResetDeclinedPayment(ctx context.Context, id, amount int64, reference *string, notes *string) error {
	sql, args, err := r.sb.Update("school_fee_payments").
		SetMap(map[string]interface{}{
			"amount":            amount,
			"status":            models.PaymentStatusPending,
			"payment_reference": reference,
			"notes":             notes,
			"approved_by":       nil,
			"approved_at":       nil,
			"declined_by":       nil,
			"declined_at":       nil,
			"declined_reason":   nil,
			"updated_at":        squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reset payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error executing reset payment query")
		return fmt.Errorf("error resetting payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ApprovePayment marks a payment approved, clearing any decline fields.
func (r *SchoolFeeRepository) ApprovePayment(ctx context.Context, id, adminID int64, decidedAt time.Time) error {
	sql, args, err := r.sb.Update("school_fee_payments").
		SetMap(map[string]interface{}{
			"status":          models.PaymentStatusApproved,
			"approved_by":     adminID,
			"approved_at":     decidedAt,
			"declined_by":     nil,
			"declined_at":     nil,
			"declined_reason": nil,
			"updated_at":      decidedAt,
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error executing approve payment query")
		return fmt.Errorf("error approving payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeclinePayment marks a payment declined with a reason, clearing any
// approval fields.
func (r *SchoolFeeRepository) DeclinePayment(ctx context.Context, id, adminID int64, reason string, decidedAt time.Time) error {
	sql, args, err := r.sb.Update("school_fee_payments").
		SetMap(map[string]interface{}{
			"status":          models.PaymentStatusDeclined,
			"declined_by":     adminID,
			"declined_at":     decidedAt,
			"declined_reason": reason,
			"approved_by":     nil,
			"approved_at":     nil,
			"updated_at":      decidedAt,
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build decline payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error executing decline payment query")
		return fmt.Errorf("error declining payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
