package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/pkg/dberrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// RegistrationRepository handles course registration database operations
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var registrationColumns = []string{"id", "student_id", "academic_year_id", "submitted", "submitted_at", "created_at"}

var registrationItemColumns = []string{"id", "registration_id", "course_id", "course_code_snapshot", "course_name_snapshot", "status", "removed_at", "created_at"}

func scanRegistration(row pgx.Row) (*models.CourseRegistration, error) {
	reg := &models.CourseRegistration{}
	err := row.Scan(&reg.ID, &reg.StudentID, &reg.AcademicYearID, &reg.Submitted, &reg.SubmittedAt, &reg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func scanRegistrationItem(row pgx.Row) (*models.RegistrationItem, error) {
	item := &models.RegistrationItem{}
	err := row.Scan(&item.ID, &item.RegistrationID, &item.CourseID, &item.CourseCodeSnapshot, &item.CourseNameSnapshot, &item.Status, &item.RemovedAt, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create inserts an unsubmitted registration and fills in the generated ID
// and timestamp.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.CourseRegistration) error {
	sql, args, err := r.sb.Insert("course_registrations").
		Columns("student_id", "academic_year_id", "submitted", "submitted_at").
		Values(registration.StudentID, registration.AcademicYearID, false, nil).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create registration query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&registration.ID, &registration.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create registration query")
		return fmt.Errorf("error creating registration: %w", err)
	}
	return nil
}

// GetByID retrieves a registration by ID without its items.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.CourseRegistration, error) {
	sql, args, err := r.sb.Select(registrationColumns...).
		From("course_registrations").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get registration query: %w", err)
	}

	registration, err := scanRegistration(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("registrationID", id).Msg("Error scanning registration row")
		return nil, fmt.Errorf("error getting registration by ID: %w", err)
	}
	return registration, nil
}

// ExistsForStudentYear reports whether the student already has a registration
// for the academic year.
func (r *RegistrationRepository) ExistsForStudentYear(ctx context.Context, studentID, academicYearID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("course_registrations").
		Where(squirrel.Eq{"student_id": studentID, "academic_year_id": academicYearID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build registration existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking registration existence")
		return false, fmt.Errorf("error checking registration existence: %w", err)
	}
	return exists, nil
}

// ListByStudent retrieves a student's registrations ordered by creation time.
func (r *RegistrationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.CourseRegistration, error) {
	sql, args, err := r.sb.Select(registrationColumns...).
		From("course_registrations").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list registrations query")
		return nil, fmt.Errorf("error querying registrations: %w", err)
	}
	defer rows.Close()

	registrations := []*models.CourseRegistration{}
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		registrations = append(registrations, registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return registrations, nil
}

// LatestForStudent retrieves the student's most recently created
// registration, or ErrNotFound when none exists.
func (r *RegistrationRepository) LatestForStudent(ctx context.Context, studentID int64) (*models.CourseRegistration, error) {
	sql, args, err := r.sb.Select(registrationColumns...).
		From("course_registrations").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest registration query: %w", err)
	}

	registration, err := scanRegistration(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning latest registration row")
		return nil, fmt.Errorf("error getting latest registration: %w", err)
	}
	return registration, nil
}

// SetSubmitted flips the submitted flag. submittedAt must be nil when
// submitted is false.
func (r *RegistrationRepository) SetSubmitted(ctx context.Context, id int64, submitted bool, submittedAt *time.Time) error {
	sql, args, err := r.sb.Update("course_registrations").
		Set("submitted", submitted).
		Set("submitted_at", submittedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build submit registration query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("registrationID", id).Msg("Error executing submit registration query")
		return fmt.Errorf("error submitting registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListItems retrieves a registration's items ordered by creation time.
func (r *RegistrationRepository) ListItems(ctx context.Context, registrationID int64) ([]*models.RegistrationItem, error) {
	sql, args, err := r.sb.Select(registrationItemColumns...).
		From("course_registration_items").
		Where(squirrel.Eq{"registration_id": registrationID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list items query")
		return nil, fmt.Errorf("error querying registration items: %w", err)
	}
	defer rows.Close()

	items := []*models.RegistrationItem{}
	for rows.Next() {
		item, err := scanRegistrationItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration item rows: %w", err)
	}
	return items, nil
}

// GetItemByID retrieves a registration item by ID
func (r *RegistrationRepository) GetItemByID(ctx context.Context, itemID int64) (*models.RegistrationItem, error) {
	sql, args, err := r.sb.Select(registrationItemColumns...).
		From("course_registration_items").
		Where(squirrel.Eq{"id": itemID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get item query: %w", err)
	}

	item, err := scanRegistrationItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("itemID", itemID).Msg("Error scanning registration item row")
		return nil, fmt.Errorf("error getting registration item by ID: %w", err)
	}
	return item, nil
}

// HasActiveItem reports whether the registration already carries the course
// as an active item.
func (r *RegistrationRepository) HasActiveItem(ctx context.Context, registrationID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("course_registration_items").
		Where(squirrel.Eq{
			"registration_id": registrationID,
			"course_id":       courseID,
			"status":          models.RegistrationItemStatusActive,
		}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build active item existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking active item existence")
		return false, fmt.Errorf("error checking active item existence: %w", err)
	}
	return exists, nil
}

// CreateItem inserts an active snapshot item and fills in the generated ID
// and timestamp.
func (r *RegistrationRepository) CreateItem(ctx context.Context, item *models.RegistrationItem) error {
	sql, args, err := r.sb.Insert("course_registration_items").
		Columns("registration_id", "course_id", "course_code_snapshot", "course_name_snapshot", "status", "removed_at").
		Values(item.RegistrationID, item.CourseID, item.CourseCodeSnapshot, item.CourseNameSnapshot, models.RegistrationItemStatusActive, nil).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create item query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create item query")
		return fmt.Errorf("error creating registration item: %w", err)
	}
	item.Status = models.RegistrationItemStatusActive
	return nil
}

// MarkItemRemoved soft-deletes an item and returns the updated row.
func (r *RegistrationRepository) MarkItemRemoved(ctx context.Context, itemID int64, removedAt time.Time) (*models.RegistrationItem, error) {
	sql, args, err := r.sb.Update("course_registration_items").
		Set("status", models.RegistrationItemStatusRemoved).
		Set("removed_at", removedAt).
		Where(squirrel.Eq{"id": itemID}).
		Suffix("RETURNING " + strings.Join(registrationItemColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build remove item query: %w", err)
	}

	item, err := scanRegistrationItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("itemID", itemID).Msg("Error executing remove item query")
		return nil, fmt.Errorf("error removing registration item: %w", err)
	}
	return item, nil
}

// CountActiveItems counts a registration's active, non-removed items.
func (r *RegistrationRepository) CountActiveItems(ctx context.Context, registrationID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("course_registration_items").
		Where(squirrel.Eq{
			"registration_id": registrationID,
			"status":          models.RegistrationItemStatusActive,
		}).
		Where("removed_at IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count items query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("registrationID", registrationID).Msg("Error counting active items")
		return 0, fmt.Errorf("error counting active items: %w", err)
	}
	return count, nil
}

// ListSubmitted retrieves the admin review rows for submitted registrations,
// newest submissions first, then by student name.
func (r *RegistrationRepository) ListSubmitted(ctx context.Context, academicYearID *int64) ([]*models.SubmittedRegistration, error) {
	builder := r.sb.Select(
		"cr.id",
		"cr.academic_year_id",
		"ay.name",
		"cr.submitted_at",
		"u.id",
		"u.full_name",
		"u.email",
		"sp.matric_no",
		"sp.level",
		"COUNT(cri.id)",
	).
		From("course_registrations cr").
		Join("users u ON u.id = cr.student_id").
		LeftJoin("student_profiles sp ON sp.user_id = cr.student_id").
		LeftJoin("academic_years ay ON ay.id = cr.academic_year_id").
		LeftJoin("course_registration_items cri ON cri.registration_id = cr.id AND cri.status = 'active'").
		Where(squirrel.Eq{"cr.submitted": true}).
		Where("cr.submitted_at IS NOT NULL").
		GroupBy("cr.id", "ay.name", "u.id", "sp.matric_no", "sp.level").
		OrderBy("cr.submitted_at DESC", "u.full_name ASC")

	if academicYearID != nil {
		builder = builder.Where(squirrel.Eq{"cr.academic_year_id": *academicYearID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list submitted query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list submitted query")
		return nil, fmt.Errorf("error querying submitted registrations: %w", err)
	}
	defer rows.Close()

	results := []*models.SubmittedRegistration{}
	for rows.Next() {
		row := &models.SubmittedRegistration{}
		err := rows.Scan(
			&row.RegistrationID,
			&row.AcademicYearID,
			&row.AcademicYearName,
			&row.SubmittedAt,
			&row.StudentID,
			&row.StudentFullName,
			&row.StudentEmail,
			&row.MatricNo,
			&row.Level,
			&row.CourseCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning submitted registration row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submitted registration rows: %w", err)
	}
	return results, nil
}
