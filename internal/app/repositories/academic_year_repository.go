package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/pkg/dberrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// AcademicYearRepository handles academic year database operations
type AcademicYearRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAcademicYearRepository creates a new AcademicYearRepository
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var academicYearColumns = []string{"id", "name", "is_current", "created_at"}

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	y := &models.AcademicYear{}
	if err := row.Scan(&y.ID, &y.Name, &y.IsCurrent, &y.CreatedAt); err != nil {
		return nil, err
	}
	return y, nil
}

// Create inserts a new academic year and fills in the generated ID and timestamp.
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	sql, args, err := r.sb.Insert("academic_years").
		Columns("name", "is_current").
		Values(year.Name, year.IsCurrent).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create academic year query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&year.ID, &year.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create academic year query")
		return fmt.Errorf("error creating academic year: %w", err)
	}
	return nil
}

// GetByID retrieves an academic year by ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns...).
		From("academic_years").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get academic year query: %w", err)
	}

	year, err := scanAcademicYear(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("academicYearID", id).Msg("Error scanning academic year row")
		return nil, fmt.Errorf("error getting academic year by ID: %w", err)
	}
	return year, nil
}

// List retrieves all academic years, newest first.
func (r *AcademicYearRepository) List(ctx context.Context) ([]*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns...).
		From("academic_years").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list academic years query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list academic years query")
		return nil, fmt.Errorf("error querying academic years: %w", err)
	}
	defer rows.Close()

	years := []*models.AcademicYear{}
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning academic year row: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic year rows: %w", err)
	}
	return years, nil
}

// NameExists reports whether an academic year with the name already exists.
func (r *AcademicYearRepository) NameExists(ctx context.Context, name string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("academic_years").
		Where(squirrel.Eq{"name": name}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build academic year existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("name", name).Msg("Error checking academic year existence")
		return false, fmt.Errorf("error checking academic year existence: %w", err)
	}
	return exists, nil
}

// ClearCurrentExcept drops the is_current flag on every other row. Runs as a
// separate statement after the insert, so a crash in between can briefly
// leave two current years.
func (r *AcademicYearRepository) ClearCurrentExcept(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("academic_years").
		Set("is_current", false).
		Where(squirrel.NotEq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear current query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("academicYearID", id).Msg("Error clearing current academic year flag")
		return fmt.Errorf("error clearing current academic year flag: %w", err)
	}
	return nil
}
