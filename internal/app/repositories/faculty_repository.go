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

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var facultyColumns = []string{"id", "name", "code", "created_at"}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	f := &models.Faculty{}
	if err := row.Scan(&f.ID, &f.Name, &f.Code, &f.CreatedAt); err != nil {
		return nil, err
	}
	return f, nil
}

// Create inserts a new faculty and fills in the generated ID and timestamp.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "code").
		Values(faculty.Name, faculty.Code).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&faculty.ID, &faculty.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return fmt.Errorf("error creating faculty: %w", err)
	}
	return nil
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	return faculty, nil
}

// List retrieves all faculties ordered by name, case-insensitively.
func (r *FacultyRepository) List(ctx context.Context) ([]*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		OrderBy("LOWER(name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}
	return faculties, nil
}

// Update applies a partial field update.
func (r *FacultyRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	sql, args, err := r.sb.Update("faculties").
		SetMap(updates).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing update faculty query")
		return fmt.Errorf("error updating faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a faculty by ID
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing delete faculty query")
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NameExists reports whether another faculty already uses the name.
func (r *FacultyRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.fieldExists(ctx, "name", name, excludeID)
}

// CodeExists reports whether another faculty already uses the code.
func (r *FacultyRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	return r.fieldExists(ctx, "code", code, excludeID)
}

func (r *FacultyRepository) fieldExists(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	builder := r.sb.Select("1").
		From("faculties").
		Where(squirrel.Eq{field: value})
	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}
	sql, args, err := builder.
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build faculty existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str(field, value).Msg("Error checking faculty existence")
		return false, fmt.Errorf("error checking faculty existence: %w", err)
	}
	return exists, nil
}
